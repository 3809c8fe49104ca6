package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockSnapshot is a versioned read of one ingredient's stock level.
type StockSnapshot struct {
	IngredientID uuid.UUID
	Name         string
	Stock        decimal.Decimal
	Version      int64
}

// StockDecrement asks the ledger to subtract Quantity from an ingredient,
// conditional on its version still being the one read in the snapshot.
type StockDecrement struct {
	Quantity decimal.Decimal
	Version  int64
}

// StockLedger owns the authoritative stock value per ingredient. It is the
// only writer of ingredient stock and the atomicity boundary for checkout:
// ApplyDecrements commits every listed decrement or none of them.
type StockLedger interface {
	// Snapshot reads (stock, version) for each requested ingredient.
	// Returns IngredientNotFoundError if any id is unknown.
	Snapshot(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]StockSnapshot, error)

	// ApplyDecrements applies the whole batch in a single atomic commit.
	// Each decrement succeeds only if the ingredient's version still equals
	// the version it carries and the remaining stock covers the quantity.
	// On failure no partial write is observable and the error identifies the
	// offending ingredient: VersionConflictError if another writer committed
	// since the snapshot, OutOfStockError if the version matched but stock
	// is insufficient, IngredientNotFoundError if the row is gone.
	ApplyDecrements(ctx context.Context, decrements map[uuid.UUID]StockDecrement) error

	// ApplyIncrement adds quantity to an ingredient's stock (restock or
	// manual adjustment), bumping its version.
	ApplyIncrement(ctx context.Context, id uuid.UUID, quantity decimal.Decimal) error
}

// OutOfStockError reports that an ingredient cannot cover the demanded
// quantity. Needed and Available give the operator an actionable message.
type OutOfStockError struct {
	IngredientID uuid.UUID
	Name         string
	Needed       decimal.Decimal
	Available    decimal.Decimal
}

func (e *OutOfStockError) Error() string {
	name := e.Name
	if name == "" {
		name = e.IngredientID.String()
	}
	return fmt.Sprintf("insufficient stock for %s: need %s, have %s",
		name, e.Needed.String(), e.Available.String())
}

// VersionConflictError reports that another writer changed an ingredient
// between the snapshot read and the conditional write. It is retried inside
// the checkout coordinator and never reaches API callers directly.
type VersionConflictError struct {
	IngredientID uuid.UUID
}

func (e *VersionConflictError) Error() string {
	return fmt.Sprintf("stock version conflict on ingredient %s", e.IngredientID)
}

// IngredientNotFoundError reports a recipe referencing an ingredient that no
// longer exists. This is a data-integrity failure, not a stock condition.
type IngredientNotFoundError struct {
	IngredientID uuid.UUID
}

func (e *IngredientNotFoundError) Error() string {
	return fmt.Sprintf("ingredient %s not found", e.IngredientID)
}
