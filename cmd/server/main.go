package main

import (
	"github.com/avdev42/go-messenger/backend/internal/router"
	"github.com/avdev42/go-messenger/backend/pkg/config"
	"github.com/avdev42/go-messenger/backend/pkg/logger"
	"github.com/avdev42/go-messenger/backend/pkg/validators"
	"github.com/labstack/echo/v4"
)

func main() {
	logger.InitLogger()

	// Load configuration
	cfg := config.Load()

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		logger.Log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB() // Ensure database connections are closed when main exits

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Validator
	e.Validator = validators.NewValidator()

	// Setup routes and dependencies
	if err := router.SetupRoutes(e, cfg, db.Postgres, db.Mongo); err != nil {
		logger.Log.Fatalf("Failed to setup routes: %v", err)
	}

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
