package router

import (
	"fmt"

	"github.com/inkgen/ai-blog/backend/internal/auth"
	"github.com/inkgen/ai-blog/backend/internal/generator"
	"github.com/inkgen/ai-blog/backend/internal/handlers"
	appmiddleware "github.com/inkgen/ai-blog/backend/internal/middleware"
	"github.com/inkgen/ai-blog/backend/internal/models"
	"github.com/inkgen/ai-blog/backend/internal/repositories"
	"github.com/inkgen/ai-blog/backend/pkg/config"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo, cfg *config.Config) {
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowCredentials: true,
	}))
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, gen generator.Generator, tokens *auth.TokenService, logger *zap.Logger) error {
	if err := pgdb.AutoMigrate(&models.User{}, &models.Post{}); err != nil {
		return fmt.Errorf("auto migrating models: %w", err)
	}

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	userRepo := repositories.NewPostgresUserRepository(pgdb)
	postRepo := repositories.NewPostgresPostRepository(pgdb)

	// Public routes
	authHandler := handlers.NewAuthHandler(userRepo, tokens, logger)
	authHandler.RegisterAuthRoutes(e)

	postHandler := handlers.NewPostHandler(postRepo, gen, logger)
	postHandler.RegisterPublicRoutes(e)

	// Protected routes (require a bearer credential)
	protected := e.Group("")
	protected.Use(appmiddleware.AuthMiddleware(tokens, userRepo))
	postHandler.RegisterProtectedRoutes(protected)

	logger.Info("routes configured")
	return nil
}
