package database

import (
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/vibeburger/pos-api/internal/config"
	"github.com/vibeburger/pos-api/internal/domain/entity"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		&entity.User{},

		// Catalog entities
		&entity.Ingredient{},
		&entity.Product{},
		&entity.RecipeItem{},

		// Transaction entities
		&entity.Sale{},
		&entity.SaleLine{},

		// System entities
		&entity.StoreSettings{},
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds the database with the store profile, the starter
// burger catalog and an admin user when configured. Every insert is skipped
// if the row already exists, so re-running on boot is safe.
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	if err := seedSettings(db); err != nil {
		return err
	}

	ingredients, err := seedIngredients(db)
	if err != nil {
		return err
	}

	if err := seedProducts(db, ingredients); err != nil {
		return err
	}

	seedAdminUser(db)

	log.Println("Default data seeded successfully")
	return nil
}

func seedSettings(db *gorm.DB) error {
	var existing entity.StoreSettings
	if err := db.First(&existing).Error; err == nil {
		return nil
	}
	return db.Create(entity.DefaultStoreSettings()).Error
}

func seedIngredients(db *gorm.DB) (map[string]entity.Ingredient, error) {
	defaults := []entity.Ingredient{
		{
			Name:              "Burger Buns",
			Slug:              "burger-buns",
			Unit:              "pcs",
			CurrentStock:      decimal.NewFromInt(50),
			LowStockThreshold: decimal.NewFromInt(10),
			Cost:              decimal.NewFromFloat(5.00),
			Version:           1,
		},
		{
			Name:              "Beef Patty (100g)",
			Slug:              "beef-patty-100g",
			Unit:              "pcs",
			CurrentStock:      decimal.NewFromInt(42),
			LowStockThreshold: decimal.NewFromInt(15),
			Cost:              decimal.NewFromFloat(25.00),
			Version:           1,
		},
		{
			Name:              "Cheddar Slice",
			Slug:              "cheddar-slice",
			Unit:              "slice",
			CurrentStock:      decimal.NewFromInt(100),
			LowStockThreshold: decimal.NewFromInt(20),
			Cost:              decimal.NewFromFloat(3.50),
			Version:           1,
		},
		{
			Name:              "Iceberg Lettuce",
			Slug:              "iceberg-lettuce",
			Unit:              "grams",
			CurrentStock:      decimal.NewFromInt(500),
			LowStockThreshold: decimal.NewFromInt(100),
			Cost:              decimal.NewFromFloat(0.50),
			Version:           1,
		},
	}

	seeded := make(map[string]entity.Ingredient, len(defaults))
	for i := range defaults {
		var existing entity.Ingredient
		if err := db.Where("slug = ?", defaults[i].Slug).First(&existing).Error; err == nil {
			seeded[existing.Slug] = existing
			continue
		}
		if err := db.Create(&defaults[i]).Error; err != nil {
			return nil, fmt.Errorf("failed to seed ingredient %s: %w", defaults[i].Slug, err)
		}
		seeded[defaults[i].Slug] = defaults[i]
	}
	return seeded, nil
}

func seedProducts(db *gorm.DB, ingredients map[string]entity.Ingredient) error {
	qty := func(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

	defaults := []entity.Product{
		{
			Name:      "Classic Cheeseburger",
			Slug:      "classic-cheeseburger",
			Category:  "Burgers",
			BasePrice: decimal.NewFromFloat(150.00),
			Recipe: []entity.RecipeItem{
				{IngredientID: ingredients["burger-buns"].ID, QuantityRequired: qty(1), Position: 0},
				{IngredientID: ingredients["beef-patty-100g"].ID, QuantityRequired: qty(1), Position: 1},
				{IngredientID: ingredients["cheddar-slice"].ID, QuantityRequired: qty(1), Position: 2},
				{IngredientID: ingredients["iceberg-lettuce"].ID, QuantityRequired: qty(20), Position: 3},
			},
		},
		{
			Name:      "Double Decker",
			Slug:      "double-decker",
			Category:  "Burgers",
			BasePrice: decimal.NewFromFloat(240.00),
			Recipe: []entity.RecipeItem{
				{IngredientID: ingredients["burger-buns"].ID, QuantityRequired: qty(1), Position: 0},
				{IngredientID: ingredients["beef-patty-100g"].ID, QuantityRequired: qty(2), Position: 1},
				{IngredientID: ingredients["cheddar-slice"].ID, QuantityRequired: qty(2), Position: 2},
				{IngredientID: ingredients["iceberg-lettuce"].ID, QuantityRequired: qty(30), Position: 3},
			},
		},
	}

	for i := range defaults {
		var existing entity.Product
		if err := db.Where("slug = ?", defaults[i].Slug).First(&existing).Error; err == nil {
			continue
		}
		if err := db.Create(&defaults[i]).Error; err != nil {
			return fmt.Errorf("failed to seed product %s: %w", defaults[i].Slug, err)
		}
	}
	return nil
}

func seedAdminUser(db *gorm.DB) {
	adminEmail := viper.GetString("ADMIN_EMAIL")
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	adminName := viper.GetString("ADMIN_NAME")

	if adminEmail == "" || adminPassword == "" {
		return
	}

	var existing entity.User
	if err := db.Where("email = ?", adminEmail).First(&existing).Error; err == nil {
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Warning: failed to hash admin password: %v", err)
		return
	}

	if adminName == "" {
		adminName = "Store Admin"
	}
	admin := entity.User{
		Name:     adminName,
		Email:    adminEmail,
		Password: string(hashedPassword),
		Role:     entity.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Printf("Warning: failed to create admin user: %v", err)
	}
}
