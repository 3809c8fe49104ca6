package service

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vibeburger/pos-api/internal/domain/entity"
)

func TestAggregateDemandSumsSharedIngredients(t *testing.T) {
	bun := uuid.New()
	patty := uuid.New()

	cheeseburger := uuid.New()
	doubleDecker := uuid.New()
	products := map[uuid.UUID]*entity.Product{
		cheeseburger: {
			ID: cheeseburger,
			Recipe: []entity.RecipeItem{
				{IngredientID: bun, QuantityRequired: decimal.NewFromInt(1)},
				{IngredientID: patty, QuantityRequired: decimal.NewFromInt(1)},
			},
		},
		doubleDecker: {
			ID: doubleDecker,
			Recipe: []entity.RecipeItem{
				{IngredientID: bun, QuantityRequired: decimal.NewFromInt(1)},
				{IngredientID: patty, QuantityRequired: decimal.NewFromInt(2)},
			},
		},
	}

	// 2 cheeseburgers + 1 double decker: buns 3, patties 4
	cart := entity.NewCart()
	cart.AddLine(cheeseburger, 2)
	cart.AddLine(doubleDecker, 1)

	demand, err := AggregateDemand(cart, products)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(demand) != 2 {
		t.Fatalf("expected demand for 2 ingredients, got %d", len(demand))
	}
	if !demand[bun].Equal(decimal.NewFromInt(3)) {
		t.Errorf("bun demand = %s, want 3", demand[bun])
	}
	if !demand[patty].Equal(decimal.NewFromInt(4)) {
		t.Errorf("patty demand = %s, want 4", demand[patty])
	}
}

func TestAggregateDemandUnknownProduct(t *testing.T) {
	missing := uuid.New()
	cart := entity.NewCart()
	cart.AddLine(missing, 1)

	_, err := AggregateDemand(cart, map[uuid.UUID]*entity.Product{})

	var unknown *UnknownProductError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownProductError, got %v", err)
	}
	if unknown.ProductID != missing {
		t.Errorf("error names product %s, want %s", unknown.ProductID, missing)
	}
}

func TestAggregateDemandStockFreeProduct(t *testing.T) {
	soda := uuid.New()
	products := map[uuid.UUID]*entity.Product{
		soda: {ID: soda}, // no recipe rows
	}

	cart := entity.NewCart()
	cart.AddLine(soda, 5)

	demand, err := AggregateDemand(cart, products)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(demand) != 0 {
		t.Errorf("stock-free product should contribute no demand, got %v", demand)
	}
}

func TestAggregateDemandFractionalQuantities(t *testing.T) {
	lettuce := uuid.New()
	salad := uuid.New()
	products := map[uuid.UUID]*entity.Product{
		salad: {
			ID: salad,
			Recipe: []entity.RecipeItem{
				{IngredientID: lettuce, QuantityRequired: decimal.NewFromFloat(20.5)},
			},
		},
	}

	cart := entity.NewCart()
	cart.AddLine(salad, 2)

	demand, err := AggregateDemand(cart, products)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !demand[lettuce].Equal(decimal.NewFromFloat(41)) {
		t.Errorf("lettuce demand = %s, want 41", demand[lettuce])
	}
}
