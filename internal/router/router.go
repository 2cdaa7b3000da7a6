package router

import (
	"log"

	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/murmur-app/backend/internal/handlers"
	"github.com/murmur-app/backend/internal/middleware"
	"github.com/murmur-app/backend/internal/models"
	"github.com/murmur-app/backend/internal/repositories"
	"github.com/murmur-app/backend/internal/services"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Murmur{},
		&models.Follow{},
		&models.Like{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(db)
	murmurRepo := repositories.NewPostgresMurmurRepository(db)
	followRepo := repositories.NewPostgresFollowRepository(db)
	likeRepo := repositories.NewPostgresLikeRepository(db)

	// --- Initialize Services ---
	socialGraphService := services.NewSocialGraphService(followRepo, userRepo)
	engagementService := services.NewEngagementService(likeRepo, murmurRepo)
	timelineService := services.NewTimelineService(murmurRepo, userRepo, followRepo, engagementService)
	murmurService := services.NewMurmurService(murmurRepo, userRepo)
	userService := services.NewUserService(userRepo, followRepo)

	// --- Protected routes (viewer identity resolved from bearer token) ---
	api := e.Group("/api")
	api.Use(middleware.JWTAuthMiddleware())
	log.Println("JWT authentication middleware applied to /api group.")

	murmurHandler := handlers.NewMurmurHandler(murmurService)
	murmurHandler.RegisterMurmurRoutes(api)
	log.Println("Murmur routes configured.")

	timelineHandler := handlers.NewTimelineHandler(timelineService)
	timelineHandler.RegisterTimelineRoutes(api)
	log.Println("Timeline routes configured.")

	likeHandler := handlers.NewLikeHandler(engagementService)
	likeHandler.RegisterLikeRoutes(api)
	log.Println("Like routes configured.")

	userHandler := handlers.NewUserHandler(userService, murmurService)
	userHandler.RegisterUserRoutes(api)
	log.Println("User profile routes configured.")

	followHandler := handlers.NewFollowHandler(socialGraphService)
	followHandler.RegisterFollowRoutes(api)
	log.Println("Follow routes configured.")

	log.Println("All routes configured.")
}
