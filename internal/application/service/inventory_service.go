package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vibeburger/pos-api/internal/domain/entity"
	"github.com/vibeburger/pos-api/internal/domain/enum"
	"github.com/vibeburger/pos-api/internal/domain/repository"
	"github.com/vibeburger/pos-api/pkg/apperror"
)

// adjustRetries bounds the conditional-write loop for downward stock
// adjustments, which contend with concurrent checkouts.
const adjustRetries = 3

// InventoryService handles stock movement and stock-level reporting. Every
// write goes through the stock ledger so checkout and manual adjustments
// serialize on the same version column.
type InventoryService struct {
	ingredientRepo repository.IngredientRepository
	ledger         repository.StockLedger
}

// NewInventoryService creates a new inventory service
func NewInventoryService(
	ingredientRepo repository.IngredientRepository,
	ledger repository.StockLedger,
) *InventoryService {
	return &InventoryService{
		ingredientRepo: ingredientRepo,
		ledger:         ledger,
	}
}

// ReceiveStock records a delivery, adding quantity to the ingredient's stock
func (s *InventoryService) ReceiveStock(ctx context.Context, id uuid.UUID, quantity decimal.Decimal) (*entity.Ingredient, error) {
	if !quantity.IsPositive() {
		return nil, apperror.NewBadRequestError("Received quantity must be positive")
	}

	ingredient, err := s.ingredientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ingredient == nil {
		return nil, apperror.NewNotFoundError("Ingredient")
	}

	if err := s.ledger.ApplyIncrement(ctx, id, quantity); err != nil {
		return nil, err
	}

	return s.ingredientRepo.GetByID(ctx, id)
}

// AdjustStock sets an ingredient's stock to an absolute counted quantity,
// e.g. after a physical stock take. Downward adjustments go through the
// ledger's conditional write so they cannot race a checkout into negative
// stock.
func (s *InventoryService) AdjustStock(ctx context.Context, id uuid.UUID, counted decimal.Decimal) (*entity.Ingredient, error) {
	if counted.IsNegative() {
		return nil, apperror.NewBadRequestError("Counted quantity cannot be negative")
	}

	for attempt := 0; attempt < adjustRetries; attempt++ {
		snapshots, err := s.ledger.Snapshot(ctx, []uuid.UUID{id})
		if err != nil {
			var notFound *repository.IngredientNotFoundError
			if errors.As(err, &notFound) {
				return nil, apperror.NewNotFoundError("Ingredient")
			}
			return nil, err
		}
		snap := snapshots[id]

		delta := counted.Sub(snap.Stock)
		switch {
		case delta.IsZero():
			return s.ingredientRepo.GetByID(ctx, id)
		case delta.IsPositive():
			if err := s.ledger.ApplyIncrement(ctx, id, delta); err != nil {
				return nil, err
			}
			return s.ingredientRepo.GetByID(ctx, id)
		}

		err = s.ledger.ApplyDecrements(ctx, map[uuid.UUID]repository.StockDecrement{
			id: {Quantity: delta.Neg(), Version: snap.Version},
		})
		if err == nil {
			return s.ingredientRepo.GetByID(ctx, id)
		}

		var conflict *repository.VersionConflictError
		if errors.As(err, &conflict) {
			continue // a checkout moved the stock; re-read and re-compute
		}
		var outOfStock *repository.OutOfStockError
		if errors.As(err, &outOfStock) {
			continue // stock dropped below the old count mid-adjust
		}
		return nil, err
	}

	return nil, apperror.NewConflictError("Stock is changing too quickly, retry the adjustment")
}

// StockLevel is one ingredient's stock position for inventory views
type StockLevel struct {
	Ingredient entity.Ingredient `json:"ingredient"`
	Status     enum.StockStatus  `json:"status"`
}

// ListStockLevels returns ingredients with their stock status buckets
func (s *InventoryService) ListStockLevels(ctx context.Context, params *repository.IngredientFilterParams) ([]StockLevel, int64, error) {
	ingredients, total, err := s.ingredientRepo.List(ctx, params)
	if err != nil {
		return nil, 0, err
	}

	levels := make([]StockLevel, 0, len(ingredients))
	for _, ing := range ingredients {
		levels = append(levels, StockLevel{
			Ingredient: ing,
			Status:     enum.StockStatusFor(ing.CurrentStock, ing.LowStockThreshold),
		})
	}
	return levels, total, nil
}

// CountLowStock reports how many ingredients sit at or below their threshold
func (s *InventoryService) CountLowStock(ctx context.Context) (int64, error) {
	return s.ingredientRepo.CountLowStock(ctx)
}
