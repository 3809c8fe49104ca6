package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecipeItemRequest is one ingredient line of a product recipe
type RecipeItemRequest struct {
	IngredientID     uuid.UUID       `json:"ingredient_id" binding:"required"`
	QuantityRequired decimal.Decimal `json:"quantity_required" binding:"required"`
}

// CreateProductRequest represents a product creation request
type CreateProductRequest struct {
	Name      string              `json:"name" binding:"required,min=2,max=255"`
	Category  string              `json:"category" binding:"omitempty,max=100"`
	BasePrice decimal.Decimal     `json:"base_price" binding:"required"`
	ImageURL  string              `json:"image_url" binding:"omitempty,max=512"`
	Recipe    []RecipeItemRequest `json:"recipe" binding:"dive"`
}

// UpdateProductRequest represents a product update request
type UpdateProductRequest struct {
	Name      *string              `json:"name" binding:"omitempty,min=2,max=255"`
	Category  *string              `json:"category" binding:"omitempty,max=100"`
	BasePrice *decimal.Decimal     `json:"base_price"`
	ImageURL  *string              `json:"image_url" binding:"omitempty,max=512"`
	Recipe    *[]RecipeItemRequest `json:"recipe" binding:"omitempty,dive"`
}

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	Page     int    `form:"page"`
	PerPage  int    `form:"per_page"`
}

// CreateIngredientRequest represents an ingredient creation request
type CreateIngredientRequest struct {
	Name              string          `json:"name" binding:"required,min=2,max=255"`
	Unit              string          `json:"unit" binding:"required,max=50"`
	InitialStock      decimal.Decimal `json:"initial_stock"`
	LowStockThreshold decimal.Decimal `json:"low_stock_threshold"`
	Cost              decimal.Decimal `json:"cost"`
}

// UpdateIngredientRequest represents an ingredient update request. Stock
// cannot be edited here; use the stock endpoints.
type UpdateIngredientRequest struct {
	Name              *string          `json:"name" binding:"omitempty,min=2,max=255"`
	Unit              *string          `json:"unit" binding:"omitempty,max=50"`
	LowStockThreshold *decimal.Decimal `json:"low_stock_threshold"`
	Cost              *decimal.Decimal `json:"cost"`
}

// IngredientFilterRequest represents ingredient filter parameters
type IngredientFilterRequest struct {
	Search   string `form:"search"`
	LowStock bool   `form:"low_stock"`
	Page     int    `form:"page"`
	PerPage  int    `form:"per_page"`
}

// ReceiveStockRequest represents a stock delivery
type ReceiveStockRequest struct {
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
}

// AdjustStockRequest represents a stock-take correction to an absolute count
type AdjustStockRequest struct {
	CountedQuantity decimal.Decimal `json:"counted_quantity"`
}
