package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/storepulse/storepulse-api/internal/config"
	"github.com/storepulse/storepulse-api/internal/domain/entity"
	"github.com/storepulse/storepulse-api/internal/presentation/http/handler"
	"github.com/storepulse/storepulse-api/internal/presentation/http/middleware"
	"github.com/storepulse/storepulse-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth   *handler.AuthHandler
	Order  *handler.OrderHandler
	Report *handler.ReportHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager *utils.JWTManager
	Cfg        *config.Config
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-client rate limiter
		rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.RefreshToken)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers) {
	// Auth/Profile routes
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/profile", h.Auth.GetProfile)

	// Reports
	registerReportRoutes(protected, h)

	// Orders
	registerOrderRoutes(protected, h)
}

func registerReportRoutes(protected *gin.RouterGroup, h *Handlers) {
	reports := protected.Group("/reports")
	reports.Use(middleware.RequirePermission(entity.PermissionViewReports))
	{
		reports.GET("/stats", h.Report.GetStats)
		reports.GET("/top-products", h.Report.GetTopProducts)
		reports.GET("/revenue-trend", h.Report.GetRevenueTrend)
		reports.GET("/top-customers", h.Report.GetTopCustomers)
		reports.GET("/best-sales-days", h.Report.GetBestSalesDays)
		reports.GET("/refunds", h.Report.GetRefunds)
		reports.GET("/coupons", h.Report.GetCouponsUsed)

		// Cache refresh mutates shared state, so it needs the store
		// management permission
		reports.POST("/refresh", middleware.RequirePermission(entity.PermissionManageStore), h.Report.RefreshCache)
	}
}

func registerOrderRoutes(protected *gin.RouterGroup, h *Handlers) {
	orders := protected.Group("/orders")
	orders.Use(middleware.RequirePermission(entity.PermissionManageStore))
	{
		orders.GET("", h.Order.List)
		orders.POST("", h.Order.Create)
		orders.GET("/:id", h.Order.Get)
		orders.PUT("/:id/status", h.Order.UpdateStatus)
		orders.POST("/:id/refunds", h.Order.RecordRefund)
	}
}
