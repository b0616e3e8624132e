package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/inkgen/ai-blog/backend/internal/generator"
	"github.com/inkgen/ai-blog/backend/internal/middleware"
	"github.com/inkgen/ai-blog/backend/internal/models"
	"github.com/inkgen/ai-blog/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PostHandler handles listing, generation and deletion of posts
type PostHandler struct {
	postRepository repositories.PostRepository
	generator      generator.Generator
	logger         *zap.Logger
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, gen generator.Generator, logger *zap.Logger) *PostHandler {
	return &PostHandler{
		postRepository: postRepo,
		generator:      gen,
		logger:         logger,
	}
}

// RegisterPublicRoutes registers the routes that need no credential
func (h *PostHandler) RegisterPublicRoutes(e *echo.Echo) {
	e.GET("/posts", h.ListPosts)
}

// RegisterProtectedRoutes registers the routes behind the auth middleware
func (h *PostHandler) RegisterProtectedRoutes(g *echo.Group) {
	g.POST("/generate-post", h.GeneratePost)
	g.DELETE("/posts/:id", h.DeletePost)
}

// ListPosts returns every post in store order
func (h *PostHandler) ListPosts(c echo.Context) error {
	posts, err := h.postRepository.GetAllPosts()
	if err != nil {
		h.logger.Error("listing posts", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list posts")
	}

	views := make([]models.PostView, 0, len(posts))
	for _, p := range posts {
		views = append(views, models.PostView{
			Title:     p.Title,
			Body:      p.Body,
			AuthorID:  p.AuthorID,
			CreatedAt: p.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, views)
}

// GeneratePost asks the generation provider for an article based on the
// caller's prompt and persists it under the authenticated user
func (h *PostHandler) GeneratePost(c echo.Context) error {
	user := middleware.CurrentUser(c)

	var req models.GeneratePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	title, body, err := h.generator.Generate(c.Request().Context(), req.Prompt)
	if err != nil {
		h.logger.Error("generating content", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	post := &models.Post{
		Title:    title,
		Body:     body,
		AuthorID: user.ID,
	}
	if err := h.postRepository.CreatePost(post); err != nil {
		h.logger.Error("persisting generated post", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to save post")
	}

	return c.JSON(http.StatusOK, models.GeneratePostResponse{
		Message: "Post generated successfully",
		Title:   title,
		Body:    body,
	})
}

// DeletePost removes a post if the authenticated user owns it
func (h *PostHandler) DeletePost(c echo.Context) error {
	user := middleware.CurrentUser(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}

	post, err := h.postRepository.GetPostByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		h.logger.Error("loading post", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load post")
	}

	if post.AuthorID != user.ID {
		return echo.NewHTTPError(http.StatusForbidden, "You do not have permission")
	}

	if err := h.postRepository.DeletePost(post.ID); err != nil {
		h.logger.Error("deleting post", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete post")
	}

	return c.JSON(http.StatusOK, models.MessageResponse{Message: "Post deleted successfully"})
}
