package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	infraRepo "github.com/vibeburger/pos-api/internal/infrastructure/repository"
	"github.com/vibeburger/pos-api/pkg/apperror"
)

func newCatalogService(t *testing.T) (*CatalogService, *infraRepo.MemoryInventory) {
	t.Helper()
	inv := infraRepo.NewMemoryInventory()
	return NewCatalogService(infraRepo.NewMemoryProductRepository(), inv), inv
}

func TestCreateProductValidatesRecipe(t *testing.T) {
	svc, _ := newCatalogService(t)
	ctx := context.Background()

	bun, err := svc.CreateIngredient(ctx, &CreateIngredientInput{
		Name:         "Burger Buns",
		Unit:         "pcs",
		InitialStock: decimal.NewFromInt(50),
	})
	if err != nil {
		t.Fatalf("create ingredient: %v", err)
	}

	product, err := svc.CreateProduct(ctx, &CreateProductInput{
		Name:      "Classic Cheeseburger",
		BasePrice: decimal.NewFromFloat(150.00),
		Recipe: []RecipeItemInput{
			{IngredientID: bun.ID, QuantityRequired: decimal.NewFromInt(1)},
		},
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	if product.Slug != "classic-cheeseburger" {
		t.Errorf("slug = %s, want classic-cheeseburger", product.Slug)
	}
	if len(product.Recipe) != 1 {
		t.Fatalf("recipe rows = %d, want 1", len(product.Recipe))
	}
}

func TestCreateProductRejectsUnknownIngredient(t *testing.T) {
	svc, _ := newCatalogService(t)

	_, err := svc.CreateProduct(context.Background(), &CreateProductInput{
		Name:      "Mystery Burger",
		BasePrice: decimal.NewFromFloat(99.00),
		Recipe: []RecipeItemInput{
			{IngredientID: uuid.New(), QuantityRequired: decimal.NewFromInt(1)},
		},
	})
	if err == nil {
		t.Fatal("expected error for unknown recipe ingredient")
	}
	if appErr := apperror.GetAppError(err); appErr.Code != 400 {
		t.Errorf("status = %d, want 400", appErr.Code)
	}
}

func TestCreateProductRejectsNonPositiveRecipeQuantity(t *testing.T) {
	svc, _ := newCatalogService(t)
	ctx := context.Background()

	bun, err := svc.CreateIngredient(ctx, &CreateIngredientInput{Name: "Buns", Unit: "pcs"})
	if err != nil {
		t.Fatalf("create ingredient: %v", err)
	}

	_, err = svc.CreateProduct(ctx, &CreateProductInput{
		Name:      "Zero Burger",
		BasePrice: decimal.NewFromFloat(10.00),
		Recipe: []RecipeItemInput{
			{IngredientID: bun.ID, QuantityRequired: decimal.Zero},
		},
	})
	if err == nil {
		t.Fatal("expected error for zero recipe quantity")
	}
}

func TestCreateProductRejectsDuplicateName(t *testing.T) {
	svc, _ := newCatalogService(t)
	ctx := context.Background()

	input := &CreateProductInput{Name: "Classic Cheeseburger", BasePrice: decimal.NewFromFloat(150.00)}
	if _, err := svc.CreateProduct(ctx, input); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := svc.CreateProduct(ctx, input)
	if err == nil {
		t.Fatal("expected conflict for duplicate product name")
	}
	if appErr := apperror.GetAppError(err); appErr.Code != 409 {
		t.Errorf("status = %d, want 409", appErr.Code)
	}
}

func TestCreateIngredientRejectsNegativeStock(t *testing.T) {
	svc, _ := newCatalogService(t)

	_, err := svc.CreateIngredient(context.Background(), &CreateIngredientInput{
		Name:         "Buns",
		Unit:         "pcs",
		InitialStock: decimal.NewFromInt(-5),
	})
	if err == nil {
		t.Fatal("expected error for negative initial stock")
	}
}
