package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/storepulse/storepulse-api/internal/application/service"
	"github.com/storepulse/storepulse-api/internal/config"
	"github.com/storepulse/storepulse-api/internal/infrastructure/cache"
	"github.com/storepulse/storepulse-api/internal/infrastructure/database"
	"github.com/storepulse/storepulse-api/internal/infrastructure/repository"
	"github.com/storepulse/storepulse-api/internal/presentation/http/handler"
	"github.com/storepulse/storepulse-api/internal/presentation/http/routes"
	"github.com/storepulse/storepulse-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	refundRepo := repository.NewRefundRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)

	// Initialize report cache (Redis when configured, in-memory otherwise)
	reportCache := cache.NewReportCache(cache.RedisConfig{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer reportCache.Close()

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	orderService := service.NewOrderService(orderRepo, refundRepo, reportCache)
	reportService := service.NewReportService(analyticsRepo, reportCache)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:   handler.NewAuthHandler(authService),
		Order:  handler.NewOrderHandler(orderService),
		Report: handler.NewReportHandler(reportService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager: jwtManager,
		Cfg:        cfg,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
