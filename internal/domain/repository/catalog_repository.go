package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/vibeburger/pos-api/internal/domain/entity"
	"github.com/vibeburger/pos-api/pkg/pagination"
)

// ProductFilterParams holds filtering options for product listing
type ProductFilterParams struct {
	Search     string
	Category   string
	Pagination pagination.PaginationParams
}

// ProductRepository defines the read/write interface for the menu catalog.
// Checkout only uses the read side; products are immutable for the duration
// of a checkout.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Product, error)
	// GetByIDs retrieves multiple products with their recipes in a single
	// query. Missing ids are simply absent from the result.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ProductFilterParams) ([]entity.Product, int64, error)
}

// IngredientFilterParams holds filtering options for ingredient listing
type IngredientFilterParams struct {
	Search     string
	LowStock   bool
	Pagination pagination.PaginationParams
}

// IngredientRepository defines catalog-level access to ingredients. Stock
// mutation is deliberately absent here; that belongs to the StockLedger.
type IngredientRepository interface {
	Create(ctx context.Context, ingredient *entity.Ingredient) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Ingredient, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Ingredient, error)
	// Update writes name/unit/threshold/cost fields only, never stock.
	Update(ctx context.Context, ingredient *entity.Ingredient) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *IngredientFilterParams) ([]entity.Ingredient, int64, error)
	CountLowStock(ctx context.Context) (int64, error)
	// CountRecipeReferences reports how many recipe rows point at the
	// ingredient, so deletion can be refused while products depend on it.
	CountRecipeReferences(ctx context.Context, id uuid.UUID) (int64, error)
}
