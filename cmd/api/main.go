package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/vibeburger/pos-api/internal/application/service"
	"github.com/vibeburger/pos-api/internal/config"
	"github.com/vibeburger/pos-api/internal/infrastructure/database"
	"github.com/vibeburger/pos-api/internal/infrastructure/repository"
	"github.com/vibeburger/pos-api/internal/presentation/http/handler"
	"github.com/vibeburger/pos-api/internal/presentation/http/routes"
	"github.com/vibeburger/pos-api/pkg/printer"
	"github.com/vibeburger/pos-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

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

	// Seed the store profile and starter catalog
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
	productRepo := repository.NewProductRepository(db)
	ingredientRepo := repository.NewIngredientRepository(db)
	stockLedger := repository.NewStockLedger(db)
	saleRepo := repository.NewSaleRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	catalogService := service.NewCatalogService(productRepo, ingredientRepo)
	inventoryService := service.NewInventoryService(ingredientRepo, stockLedger)
	checkoutService := service.NewCheckoutService(productRepo, stockLedger, settingsRepo, saleRepo, cfg.Checkout.MaxRetries)
	salesService := service.NewSalesService(saleRepo)
	dashboardService := service.NewDashboardService(saleRepo, ingredientRepo)
	settingsService := service.NewSettingsService(settingsRepo)

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
	)
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		thermalPrinter = printer.NewNullPrinter()
	}
	printerService := service.NewPrinterService(thermalPrinter, saleRepo, settingsRepo, cfg.Printer.Type, cfg.Printer.PaperWidth)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		Checkout:   handler.NewCheckoutHandler(checkoutService),
		Product:    handler.NewProductHandler(catalogService),
		Ingredient: handler.NewIngredientHandler(catalogService, inventoryService),
		Sale:       handler.NewSaleHandler(salesService),
		Dashboard:  handler.NewDashboardHandler(dashboardService),
		Settings:   handler.NewSettingsHandler(settingsService),
		Printer:    handler.NewPrinterHandler(printerService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
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
