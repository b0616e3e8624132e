package main

import (
	"log"

	"github.com/inkgen/ai-blog/backend/internal/auth"
	"github.com/inkgen/ai-blog/backend/internal/generator"
	"github.com/inkgen/ai-blog/backend/internal/router"
	"github.com/inkgen/ai-blog/backend/pkg/config"
	"github.com/inkgen/ai-blog/backend/pkg/logger"
	"github.com/inkgen/ai-blog/backend/validators"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog := logger.NewLogger(cfg.Env)
	defer zlog.Sync()

	// Initialize database connection
	db, err := config.InitDB(cfg.PostgresConnStr, zlog)
	if err != nil {
		zlog.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.CloseDB() // Ensure database connection is closed when main exits

	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	gen := generator.NewGeminiClient("", cfg.GeminiAPIKey, cfg.GeminiModel)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true

	// Validator
	e.Validator = validators.NewValidator()

	// Setup global middleware
	router.SetupMiddleware(e, cfg)

	// Setup routes and dependencies
	if err := router.SetupRoutes(e, db.Postgres, gen, tokens, zlog); err != nil {
		zlog.Fatal("Failed to set up routes", zap.Error(err))
	}

	// Start server
	zlog.Info("starting server", zap.String("port", cfg.Port))
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
