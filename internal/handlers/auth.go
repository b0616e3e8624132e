package handlers

import (
	"net/http"

	"github.com/inkgen/ai-blog/backend/internal/auth"
	"github.com/inkgen/ai-blog/backend/internal/models"
	"github.com/inkgen/ai-blog/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AuthHandler handles registration and token issuance
type AuthHandler struct {
	userRepository repositories.UserRepository
	tokens         *auth.TokenService
	logger         *zap.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userRepo repositories.UserRepository, tokens *auth.TokenService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		userRepository: userRepo,
		tokens:         tokens,
		logger:         logger,
	}
}

// RegisterAuthRoutes registers the public authentication routes
func (h *AuthHandler) RegisterAuthRoutes(e *echo.Echo) {
	e.POST("/register", h.Register)
	e.POST("/token", h.Token)
}

// Register creates a new user from an email and password
func (h *AuthHandler) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	// Advisory check; the unique index on email is the real constraint.
	if _, err := h.userRepository.GetUserByEmail(req.Email); err == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "User already exists")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
	}
	if err := h.userRepository.CreateUser(user); err != nil {
		h.logger.Error("creating user", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Could not register user")
	}

	return c.JSON(http.StatusOK, models.RegisterResponse{
		Message: "User created",
		UserID:  user.ID,
	})
}

// Token authenticates email/password credentials and issues an access token
func (h *AuthHandler) Token(c echo.Context) error {
	var req models.TokenRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	// Same response for unknown email and bad password.
	user, err := h.userRepository.GetUserByEmail(req.Email)
	if err != nil || !auth.CheckPassword(req.Password, user.PasswordHash) {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid credentials")
	}

	token, err := h.tokens.Issue(user.Email)
	if err != nil {
		h.logger.Error("issuing token", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token")
	}

	return c.JSON(http.StatusOK, models.TokenResponse{AccessToken: token})
}
