package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vibeburger/pos-api/internal/config"
	"github.com/vibeburger/pos-api/internal/domain/entity"
	domainRepo "github.com/vibeburger/pos-api/internal/domain/repository"
	"github.com/vibeburger/pos-api/internal/presentation/http/handler"
	"github.com/vibeburger/pos-api/internal/presentation/http/middleware"
	"github.com/vibeburger/pos-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth       *handler.AuthHandler
	Checkout   *handler.CheckoutHandler
	Product    *handler.ProductHandler
	Ingredient *handler.IngredientHandler
	Sale       *handler.SaleHandler
	Dashboard  *handler.DashboardHandler
	Settings   *handler.SettingsHandler
	Printer    *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
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
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	adminOnly := middleware.RequireRole(entity.RoleAdmin)

	// Auth/Profile routes
	protected.GET("/auth/profile", h.Auth.Profile)
	protected.POST("/auth/change-password", h.Auth.ChangePassword)
	protected.POST("/auth/register", adminOnly, h.Auth.Register)

	// Checkout, guarded by mandatory idempotency keys
	checkout := protected.Group("/checkout")
	checkout.Use(middleware.IdempotencyRequired(middleware.IdempotencyConfig{
		Repo: deps.IdempotencyRepo,
	}))
	checkout.POST("", h.Checkout.Checkout)

	// Products
	products := protected.Group("/products")
	{
		products.GET("", h.Product.List)
		products.GET("/:slug", h.Product.Get)
		products.POST("", adminOnly, h.Product.Create)
		products.PUT("/:id", adminOnly, h.Product.Update)
		products.DELETE("/:id", adminOnly, h.Product.Delete)
	}

	// Ingredients and stock
	ingredients := protected.Group("/ingredients")
	{
		ingredients.GET("", h.Ingredient.List)
		ingredients.GET("/:id", h.Ingredient.Get)
		ingredients.POST("", adminOnly, h.Ingredient.Create)
		ingredients.PUT("/:id", adminOnly, h.Ingredient.Update)
		ingredients.DELETE("/:id", adminOnly, h.Ingredient.Delete)
		ingredients.POST("/:id/receive", adminOnly, h.Ingredient.ReceiveStock)
		ingredients.POST("/:id/adjust", adminOnly, h.Ingredient.AdjustStock)
	}

	// Sales history
	sales := protected.Group("/sales")
	{
		sales.GET("", h.Sale.List)
		sales.GET("/:id", h.Sale.Get)
		sales.POST("/:id/print", h.Printer.PrintSale)
	}

	// Dashboard
	protected.GET("/dashboard", h.Dashboard.GetStats)

	// Settings
	protected.GET("/settings", h.Settings.Get)
	protected.PUT("/settings", adminOnly, h.Settings.Update)

	// Printer
	protected.GET("/printer/status", h.Printer.Status)
}
