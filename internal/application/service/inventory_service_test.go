package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vibeburger/pos-api/internal/domain/entity"
	"github.com/vibeburger/pos-api/internal/domain/enum"
	"github.com/vibeburger/pos-api/internal/domain/repository"
	infraRepo "github.com/vibeburger/pos-api/internal/infrastructure/repository"
	"github.com/vibeburger/pos-api/pkg/pagination"
)

func newInventoryFixture(t *testing.T, stock, threshold int64) (*InventoryService, uuid.UUID) {
	t.Helper()
	inv := infraRepo.NewMemoryInventory()
	ing := &entity.Ingredient{
		Name:              "Beef Patty",
		Slug:              "beef-patty",
		Unit:              "pcs",
		CurrentStock:      decimal.NewFromInt(stock),
		LowStockThreshold: decimal.NewFromInt(threshold),
	}
	if err := inv.Create(context.Background(), ing); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return NewInventoryService(inv, inv), ing.ID
}

func TestReceiveStockAdds(t *testing.T) {
	svc, id := newInventoryFixture(t, 10, 5)

	ing, err := svc.ReceiveStock(context.Background(), id, decimal.NewFromInt(32))
	if err != nil {
		t.Fatalf("receive: %v", err)
	}
	if !ing.CurrentStock.Equal(decimal.NewFromInt(42)) {
		t.Errorf("stock = %s, want 42", ing.CurrentStock)
	}
}

func TestReceiveStockRejectsNonPositive(t *testing.T) {
	svc, id := newInventoryFixture(t, 10, 5)

	if _, err := svc.ReceiveStock(context.Background(), id, decimal.Zero); err == nil {
		t.Error("expected error for zero quantity")
	}
	if _, err := svc.ReceiveStock(context.Background(), id, decimal.NewFromInt(-3)); err == nil {
		t.Error("expected error for negative quantity")
	}
}

func TestAdjustStockToCountedQuantity(t *testing.T) {
	cases := []struct {
		name    string
		start   int64
		counted int64
	}{
		{"down after stock take", 42, 38},
		{"up after stock take", 42, 45},
		{"unchanged", 42, 42},
		{"to zero", 42, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, id := newInventoryFixture(t, tc.start, 5)

			ing, err := svc.AdjustStock(context.Background(), id, decimal.NewFromInt(tc.counted))
			if err != nil {
				t.Fatalf("adjust: %v", err)
			}
			if !ing.CurrentStock.Equal(decimal.NewFromInt(tc.counted)) {
				t.Errorf("stock = %s, want %d", ing.CurrentStock, tc.counted)
			}
		})
	}
}

func TestAdjustStockRejectsNegativeCount(t *testing.T) {
	svc, id := newInventoryFixture(t, 10, 5)

	if _, err := svc.AdjustStock(context.Background(), id, decimal.NewFromInt(-1)); err == nil {
		t.Error("expected error for negative counted quantity")
	}
}

func TestListStockLevelsBuckets(t *testing.T) {
	inv := infraRepo.NewMemoryInventory()
	ctx := context.Background()

	rows := []struct {
		name      string
		stock     int64
		threshold int64
		want      enum.StockStatus
	}{
		{"buns", 50, 10, enum.StockStatusInStock},
		{"patties", 10, 15, enum.StockStatusLow},
		{"cheese", 0, 20, enum.StockStatusOutOfStock},
	}
	for _, r := range rows {
		ing := &entity.Ingredient{
			Name:              r.name,
			Slug:              r.name,
			Unit:              "pcs",
			CurrentStock:      decimal.NewFromInt(r.stock),
			LowStockThreshold: decimal.NewFromInt(r.threshold),
		}
		if err := inv.Create(ctx, ing); err != nil {
			t.Fatalf("seed %s: %v", r.name, err)
		}
	}

	svc := NewInventoryService(inv, inv)
	params := &repository.IngredientFilterParams{
		Pagination: pagination.PaginationParams{Page: 1, PerPage: 10},
	}
	levels, total, err := svc.ListStockLevels(ctx, params)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 3 {
		t.Fatalf("total = %d, want 3", total)
	}

	byName := make(map[string]enum.StockStatus, len(levels))
	for _, level := range levels {
		byName[level.Ingredient.Name] = level.Status
	}
	for _, r := range rows {
		if byName[r.name] != r.want {
			t.Errorf("%s status = %s, want %s", r.name, byName[r.name], r.want)
		}
	}
}
