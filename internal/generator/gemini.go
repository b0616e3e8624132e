package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrGeneration wraps any provider-side failure: network, non-200 status or
// an undecodable response. Callers are not given a finer classification and
// nothing is retried.
var ErrGeneration = errors.New("content generation failed")

// Stored in place of provider output when a successful call carries no
// usable text, so persistence always has something to parse.
const noTextFallback = "No text could be generated"

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	maxTitleChars = 255
)

// Generator produces a (title, body) article pair from a free-text idea.
type Generator interface {
	Generate(ctx context.Context, idea string) (title string, body string, err error)
}

// GeminiClient calls the Gemini generateContent REST endpoint.
type GeminiClient struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewGeminiClient creates a client for the given model. An empty baseURL
// selects the public Gemini API endpoint.
func NewGeminiClient(baseURL, apiKey, model string) *GeminiClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &GeminiClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
		httpClient: &http.Client{
			Timeout: 30 * time.Second, // bound the wait on the provider
		},
	}
}

type generateContentRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (r *generateContentResponse) text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String()
}

// Generate wraps the caller's idea in a fixed article prompt, calls the
// provider synchronously and splits the result into title and body.
func (c *GeminiClient) Generate(ctx context.Context, idea string) (string, string, error) {
	prompt := fmt.Sprintf(
		"Write a complete article based on this idea: %s. Include a title and a body. Only the article.",
		idea,
	)

	payload := generateContentRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return "", "", fmt.Errorf("%w: provider returned %d: %s",
			ErrGeneration, resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out generateContentResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	text := out.text()
	if strings.TrimSpace(text) == "" {
		text = noTextFallback
	}

	title, body := splitArticle(text)
	return title, body, nil
}

// splitArticle treats the first line as the title, capped at 255 characters,
// and the remaining lines, rejoined and trimmed, as the body. Single-line
// provider output yields an empty body.
func splitArticle(text string) (string, string) {
	lines := strings.Split(text, "\n")
	title := lines[0]
	if runes := []rune(title); len(runes) > maxTitleChars {
		title = string(runes[:maxTitleChars])
	}
	body := strings.TrimSpace(strings.Join(lines[1:], "\n"))
	return title, body
}
