package router

import (
	"github.com/avdev42/go-messenger/backend/internal/handlers"
	"github.com/avdev42/go-messenger/backend/internal/middleware"
	"github.com/avdev42/go-messenger/backend/internal/models"
	"github.com/avdev42/go-messenger/backend/internal/repositories"
	"github.com/avdev42/go-messenger/backend/internal/services"
	"github.com/avdev42/go-messenger/backend/pkg/config"
	"github.com/avdev42/go-messenger/backend/pkg/logger"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
}

// SetupRoutes wires repositories, services and handlers explicitly and
// registers all application routes
func SetupRoutes(e *echo.Echo, cfg *config.Config, pgdb *gorm.DB, mgClient *mongo.Client) error {
	// AutoMigrate PostgreSQL models. Foreign-key constraint creation is
	// disabled on the connection (see config.InitDB): friend-request rows
	// accumulate per pair over time and must not be constrained away.
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.FriendRequest{},
		&models.Chat{},
	)
	if err != nil {
		return err
	}
	logger.Log.Info("PostgreSQL auto-migrations completed")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	profileRepo := repositories.NewPostgresProfileRepository(pgdb)
	friendRequestRepo := repositories.NewPostgresFriendRequestRepository(pgdb)
	chatRepo := repositories.NewPostgresChatRepository(pgdb)
	messageRepo := repositories.NewMongoMessageRepository(mgClient.Database(cfg.MongoDatabase))

	// --- Services ---
	friendService := services.NewFriendService(friendRequestRepo, userRepo)
	chatService := services.NewChatService(chatRepo, messageRepo, userRepo, profileRepo)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, profileRepo, cfg.JWTSecret)
	authHandler.RegisterAuthRoutes(authGroup)

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))

	userHandler := handlers.NewUserHandler(userRepo, profileRepo)
	userHandler.RegisterUserRoutes(api)

	friendRequestHandler := handlers.NewFriendRequestHandler(friendService)
	friendRequestHandler.RegisterFriendRequestRoutes(api)

	chatHandler := handlers.NewChatHandler(chatService)
	chatHandler.RegisterChatRoutes(api)

	logger.Log.Info("All routes configured")
	return nil
}
