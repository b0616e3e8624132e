package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/inkgen/ai-blog/backend/internal/auth"
	"github.com/inkgen/ai-blog/backend/internal/handlers"
	appmiddleware "github.com/inkgen/ai-blog/backend/internal/middleware"
	"github.com/inkgen/ai-blog/backend/internal/models"
	"github.com/inkgen/ai-blog/backend/validators"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// fakeUserRepo is an in-memory repositories.UserRepository.
type fakeUserRepo struct {
	nextID uint
	users  []*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1}
}

func (f *fakeUserRepo) CreateUser(user *models.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return errors.New(`duplicate key value violates unique constraint "idx_users_email"`)
		}
	}
	user.ID = f.nextID
	f.nextID++
	user.CreatedAt = time.Now()
	f.users = append(f.users, user)
	return nil
}

func (f *fakeUserRepo) GetUserByID(id uint) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetUserByEmail(email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// fakePostRepo is an in-memory repositories.PostRepository.
type fakePostRepo struct {
	nextID      uint
	posts       []*models.Post
	createCalls int
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{nextID: 1}
}

func (f *fakePostRepo) CreatePost(post *models.Post) error {
	f.createCalls++
	post.ID = f.nextID
	f.nextID++
	post.CreatedAt = time.Now()
	f.posts = append(f.posts, post)
	return nil
}

func (f *fakePostRepo) GetPostByID(id uint) (*models.Post, error) {
	for _, p := range f.posts {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePostRepo) GetAllPosts() ([]models.Post, error) {
	out := make([]models.Post, 0, len(f.posts))
	for _, p := range f.posts {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakePostRepo) DeletePost(id uint) error {
	for i, p := range f.posts {
		if p.ID == id {
			f.posts = append(f.posts[:i], f.posts[i+1:]...)
			return nil
		}
	}
	return nil
}

// fakeGenerator is a canned generator.Generator.
type fakeGenerator struct {
	title      string
	body       string
	err        error
	calls      int
	lastPrompt string
}

func (f *fakeGenerator) Generate(_ context.Context, idea string) (string, string, error) {
	f.calls++
	f.lastPrompt = idea
	if f.err != nil {
		return "", "", f.err
	}
	return f.title, f.body, nil
}

type testApp struct {
	echo   *echo.Echo
	users  *fakeUserRepo
	posts  *fakePostRepo
	gen    *fakeGenerator
	tokens *auth.TokenService
}

// newTestApp wires handlers and middleware the way the router does, with
// in-memory repositories instead of a database.
func newTestApp() *testApp {
	e := echo.New()
	e.Validator = validators.NewValidator()

	users := newFakeUserRepo()
	posts := newFakePostRepo()
	gen := &fakeGenerator{title: "Generated Title", body: "Generated body."}
	tokens := auth.NewTokenService("handler-test-secret", time.Hour)
	logger := zap.NewNop()

	authHandler := handlers.NewAuthHandler(users, tokens, logger)
	authHandler.RegisterAuthRoutes(e)

	postHandler := handlers.NewPostHandler(posts, gen, logger)
	postHandler.RegisterPublicRoutes(e)

	protected := e.Group("")
	protected.Use(appmiddleware.AuthMiddleware(tokens, users))
	postHandler.RegisterProtectedRoutes(protected)

	return &testApp{echo: e, users: users, posts: posts, gen: gen, tokens: tokens}
}

func (a *testApp) request(t *testing.T, method, path string, body interface{}, authHeader string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}

	rec := httptest.NewRecorder()
	a.echo.ServeHTTP(rec, req)
	return rec
}

// seedUser persists a user directly and returns it with a valid token.
func (a *testApp) seedUser(t *testing.T, email, password string) (*models.User, string) {
	t.Helper()

	hash, err := auth.HashPassword(password)
	require.NoError(t, err)

	user := &models.User{Email: email, PasswordHash: hash}
	require.NoError(t, a.users.CreateUser(user))

	token, err := a.tokens.Issue(user.Email)
	require.NoError(t, err)
	return user, token
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func bearer(token string) string {
	return fmt.Sprintf("Bearer %s", token)
}
