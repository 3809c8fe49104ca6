package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vibeburger/pos-api/internal/domain/entity"
	"github.com/vibeburger/pos-api/internal/domain/repository"
	"github.com/vibeburger/pos-api/pkg/apperror"
	"github.com/vibeburger/pos-api/pkg/utils"
)

// CatalogService handles product and ingredient catalog operations
type CatalogService struct {
	productRepo    repository.ProductRepository
	ingredientRepo repository.IngredientRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	productRepo repository.ProductRepository,
	ingredientRepo repository.IngredientRepository,
) *CatalogService {
	return &CatalogService{
		productRepo:    productRepo,
		ingredientRepo: ingredientRepo,
	}
}

// RecipeItemInput is one ingredient line of a product recipe
type RecipeItemInput struct {
	IngredientID     uuid.UUID
	QuantityRequired decimal.Decimal
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	Name      string
	Category  string
	BasePrice decimal.Decimal
	ImageURL  string
	Recipe    []RecipeItemInput
}

// CreateProduct creates a new menu product with its recipe
func (s *CatalogService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	if input.BasePrice.IsNegative() {
		return nil, apperror.NewBadRequestError("Base price cannot be negative")
	}

	slug := utils.Slugify(input.Name)
	existing, err := s.productRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Product with this name already exists")
	}

	recipe, err := s.buildRecipe(ctx, input.Recipe)
	if err != nil {
		return nil, err
	}

	product := &entity.Product{
		Name:      input.Name,
		Slug:      slug,
		Category:  input.Category,
		BasePrice: input.BasePrice,
		ImageURL:  input.ImageURL,
		Recipe:    recipe,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return s.productRepo.GetByID(ctx, product.ID)
}

// UpdateProductInput represents the update product input. Nil fields are
// left unchanged; a non-nil Recipe replaces the whole recipe.
type UpdateProductInput struct {
	Name      *string
	Category  *string
	BasePrice *decimal.Decimal
	ImageURL  *string
	Recipe    *[]RecipeItemInput
}

// UpdateProduct updates an existing product
func (s *CatalogService) UpdateProduct(ctx context.Context, id uuid.UUID, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	if input.Name != nil && *input.Name != product.Name {
		slug := utils.Slugify(*input.Name)
		existing, err := s.productRepo.GetBySlug(ctx, slug)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != product.ID {
			return nil, apperror.NewConflictError("Product with this name already exists")
		}
		product.Name = *input.Name
		product.Slug = slug
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.BasePrice != nil {
		if input.BasePrice.IsNegative() {
			return nil, apperror.NewBadRequestError("Base price cannot be negative")
		}
		product.BasePrice = *input.BasePrice
	}
	if input.ImageURL != nil {
		product.ImageURL = *input.ImageURL
	}
	if input.Recipe != nil {
		recipe, err := s.buildRecipe(ctx, *input.Recipe)
		if err != nil {
			return nil, err
		}
		product.Recipe = recipe
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return s.productRepo.GetByID(ctx, product.ID)
}

// GetProduct retrieves a product by slug
func (s *CatalogService) GetProduct(ctx context.Context, slug string) (*entity.Product, error) {
	product, err := s.productRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// GetProductByID retrieves a product by ID
func (s *CatalogService) GetProductByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts retrieves products with filtering and pagination
func (s *CatalogService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	return s.productRepo.List(ctx, params)
}

// DeleteProduct deletes a product and its recipe
func (s *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}
	return s.productRepo.Delete(ctx, id)
}

// buildRecipe validates recipe lines and materializes them. Every referenced
// ingredient must exist, quantities must be positive, and no ingredient may
// appear twice.
func (s *CatalogService) buildRecipe(ctx context.Context, items []RecipeItemInput) ([]entity.RecipeItem, error) {
	recipe := make([]entity.RecipeItem, 0, len(items))
	seen := make(map[uuid.UUID]bool, len(items))

	for i, item := range items {
		if !item.QuantityRequired.IsPositive() {
			return nil, apperror.NewBadRequestError("Recipe quantities must be positive")
		}
		if seen[item.IngredientID] {
			return nil, apperror.NewBadRequestError("Recipe lists the same ingredient twice")
		}
		seen[item.IngredientID] = true

		ingredient, err := s.ingredientRepo.GetByID(ctx, item.IngredientID)
		if err != nil {
			return nil, err
		}
		if ingredient == nil {
			return nil, apperror.NewBadRequestError(fmt.Sprintf("Recipe references unknown ingredient %s", item.IngredientID))
		}

		recipe = append(recipe, entity.RecipeItem{
			IngredientID:     item.IngredientID,
			QuantityRequired: item.QuantityRequired,
			Position:         i,
		})
	}

	return recipe, nil
}

// CreateIngredientInput represents the create ingredient input
type CreateIngredientInput struct {
	Name              string
	Unit              string
	InitialStock      decimal.Decimal
	LowStockThreshold decimal.Decimal
	Cost              decimal.Decimal
}

// CreateIngredient creates a new stock ingredient
func (s *CatalogService) CreateIngredient(ctx context.Context, input *CreateIngredientInput) (*entity.Ingredient, error) {
	if input.InitialStock.IsNegative() {
		return nil, apperror.NewBadRequestError("Initial stock cannot be negative")
	}
	if input.LowStockThreshold.IsNegative() {
		return nil, apperror.NewBadRequestError("Low stock threshold cannot be negative")
	}

	slug := utils.Slugify(input.Name)
	existing, err := s.ingredientRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Ingredient with this name already exists")
	}

	ingredient := &entity.Ingredient{
		Name:              input.Name,
		Slug:              slug,
		Unit:              input.Unit,
		CurrentStock:      input.InitialStock,
		LowStockThreshold: input.LowStockThreshold,
		Cost:              input.Cost,
		Version:           1,
	}

	if err := s.ingredientRepo.Create(ctx, ingredient); err != nil {
		return nil, err
	}

	return ingredient, nil
}

// UpdateIngredientInput represents the update ingredient input. Stock is
// deliberately absent; stock moves only through the inventory service.
type UpdateIngredientInput struct {
	Name              *string
	Unit              *string
	LowStockThreshold *decimal.Decimal
	Cost              *decimal.Decimal
}

// UpdateIngredient updates ingredient catalog fields
func (s *CatalogService) UpdateIngredient(ctx context.Context, id uuid.UUID, input *UpdateIngredientInput) (*entity.Ingredient, error) {
	ingredient, err := s.ingredientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ingredient == nil {
		return nil, apperror.NewNotFoundError("Ingredient")
	}

	if input.Name != nil && *input.Name != ingredient.Name {
		slug := utils.Slugify(*input.Name)
		existing, err := s.ingredientRepo.GetBySlug(ctx, slug)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != ingredient.ID {
			return nil, apperror.NewConflictError("Ingredient with this name already exists")
		}
		ingredient.Name = *input.Name
		ingredient.Slug = slug
	}
	if input.Unit != nil {
		ingredient.Unit = *input.Unit
	}
	if input.LowStockThreshold != nil {
		if input.LowStockThreshold.IsNegative() {
			return nil, apperror.NewBadRequestError("Low stock threshold cannot be negative")
		}
		ingredient.LowStockThreshold = *input.LowStockThreshold
	}
	if input.Cost != nil {
		ingredient.Cost = *input.Cost
	}

	if err := s.ingredientRepo.Update(ctx, ingredient); err != nil {
		return nil, err
	}

	return ingredient, nil
}

// GetIngredientByID retrieves an ingredient by ID
func (s *CatalogService) GetIngredientByID(ctx context.Context, id uuid.UUID) (*entity.Ingredient, error) {
	ingredient, err := s.ingredientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ingredient == nil {
		return nil, apperror.NewNotFoundError("Ingredient")
	}
	return ingredient, nil
}

// ListIngredients retrieves ingredients with filtering and pagination
func (s *CatalogService) ListIngredients(ctx context.Context, params *repository.IngredientFilterParams) ([]entity.Ingredient, int64, error) {
	return s.ingredientRepo.List(ctx, params)
}

// DeleteIngredient deletes an ingredient unless a recipe still references it
func (s *CatalogService) DeleteIngredient(ctx context.Context, id uuid.UUID) error {
	ingredient, err := s.ingredientRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if ingredient == nil {
		return apperror.NewNotFoundError("Ingredient")
	}

	refs, err := s.ingredientRepo.CountRecipeReferences(ctx, id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return apperror.NewConflictError("Ingredient is used by product recipes")
	}

	return s.ingredientRepo.Delete(ctx, id)
}
