package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vibeburger/pos-api/internal/domain/entity"
	domainRepo "github.com/vibeburger/pos-api/internal/domain/repository"
)

func seedIngredient(t *testing.T, inv *MemoryInventory, name string, stock int64) uuid.UUID {
	t.Helper()
	ing := &entity.Ingredient{
		Name:         name,
		Slug:         name,
		Unit:         "pcs",
		CurrentStock: decimal.NewFromInt(stock),
	}
	if err := inv.Create(context.Background(), ing); err != nil {
		t.Fatalf("seed %s: %v", name, err)
	}
	return ing.ID
}

func TestMemoryLedgerSnapshotVersions(t *testing.T) {
	inv := NewMemoryInventory()
	ctx := context.Background()
	id := seedIngredient(t, inv, "buns", 50)

	snaps, err := inv.Snapshot(ctx, []uuid.UUID{id})
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	snap := snaps[id]
	if !snap.Stock.Equal(decimal.NewFromInt(50)) || snap.Version != 1 {
		t.Errorf("snapshot = %+v, want stock 50 version 1", snap)
	}

	if err := inv.ApplyIncrement(ctx, id, decimal.NewFromInt(10)); err != nil {
		t.Fatalf("increment: %v", err)
	}

	snaps, _ = inv.Snapshot(ctx, []uuid.UUID{id})
	snap = snaps[id]
	if !snap.Stock.Equal(decimal.NewFromInt(60)) || snap.Version != 2 {
		t.Errorf("snapshot after increment = %+v, want stock 60 version 2", snap)
	}
}

func TestMemoryLedgerSnapshotUnknownIngredient(t *testing.T) {
	inv := NewMemoryInventory()
	missing := uuid.New()

	_, err := inv.Snapshot(context.Background(), []uuid.UUID{missing})

	var notFound *domainRepo.IngredientNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected IngredientNotFoundError, got %v", err)
	}
}

func TestMemoryLedgerDecrementAllOrNothing(t *testing.T) {
	inv := NewMemoryInventory()
	ctx := context.Background()
	buns := seedIngredient(t, inv, "buns", 50)
	patties := seedIngredient(t, inv, "patties", 1)

	snaps, _ := inv.Snapshot(ctx, []uuid.UUID{buns, patties})
	err := inv.ApplyDecrements(ctx, map[uuid.UUID]domainRepo.StockDecrement{
		buns:    {Quantity: decimal.NewFromInt(2), Version: snaps[buns].Version},
		patties: {Quantity: decimal.NewFromInt(2), Version: snaps[patties].Version},
	})

	var outOfStock *domainRepo.OutOfStockError
	if !errors.As(err, &outOfStock) {
		t.Fatalf("expected OutOfStockError, got %v", err)
	}
	if outOfStock.IngredientID != patties {
		t.Errorf("error names %s, want patties %s", outOfStock.IngredientID, patties)
	}

	// The passing decrement must not have been applied.
	after, _ := inv.Snapshot(ctx, []uuid.UUID{buns})
	if !after[buns].Stock.Equal(decimal.NewFromInt(50)) {
		t.Errorf("bun stock = %s, want 50 untouched", after[buns].Stock)
	}
	if after[buns].Version != 1 {
		t.Errorf("bun version = %d, want 1 untouched", after[buns].Version)
	}
}

func TestMemoryLedgerVersionConflict(t *testing.T) {
	inv := NewMemoryInventory()
	ctx := context.Background()
	id := seedIngredient(t, inv, "buns", 50)

	snaps, _ := inv.Snapshot(ctx, []uuid.UUID{id})
	stale := snaps[id].Version

	// Another writer commits between snapshot and write.
	if err := inv.ApplyIncrement(ctx, id, decimal.NewFromInt(5)); err != nil {
		t.Fatalf("increment: %v", err)
	}

	err := inv.ApplyDecrements(ctx, map[uuid.UUID]domainRepo.StockDecrement{
		id: {Quantity: decimal.NewFromInt(1), Version: stale},
	})

	var conflict *domainRepo.VersionConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected VersionConflictError, got %v", err)
	}
}

func TestMemoryLedgerDecrementSucceedsAtExactStock(t *testing.T) {
	inv := NewMemoryInventory()
	ctx := context.Background()
	id := seedIngredient(t, inv, "buns", 3)

	snaps, _ := inv.Snapshot(ctx, []uuid.UUID{id})
	err := inv.ApplyDecrements(ctx, map[uuid.UUID]domainRepo.StockDecrement{
		id: {Quantity: decimal.NewFromInt(3), Version: snaps[id].Version},
	})
	if err != nil {
		t.Fatalf("decrement to zero should succeed: %v", err)
	}

	after, _ := inv.Snapshot(ctx, []uuid.UUID{id})
	if !after[id].Stock.IsZero() {
		t.Errorf("stock = %s, want 0", after[id].Stock)
	}
}

func TestMemoryInventoryLowStock(t *testing.T) {
	inv := NewMemoryInventory()
	ctx := context.Background()

	low := &entity.Ingredient{
		Name:              "lettuce",
		Slug:              "lettuce",
		Unit:              "grams",
		CurrentStock:      decimal.NewFromInt(50),
		LowStockThreshold: decimal.NewFromInt(100),
	}
	ok := &entity.Ingredient{
		Name:              "buns",
		Slug:              "buns",
		Unit:              "pcs",
		CurrentStock:      decimal.NewFromInt(50),
		LowStockThreshold: decimal.NewFromInt(10),
	}
	for _, ing := range []*entity.Ingredient{low, ok} {
		if err := inv.Create(ctx, ing); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	count, err := inv.CountLowStock(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("low stock count = %d, want 1", count)
	}
}
