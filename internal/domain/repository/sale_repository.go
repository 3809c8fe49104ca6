package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vibeburger/pos-api/internal/domain/entity"
	"github.com/vibeburger/pos-api/pkg/pagination"
)

// SaleFilterParams holds filtering options for sale listing
type SaleFilterParams struct {
	From       *time.Time
	To         *time.Time
	Pagination pagination.PaginationParams
}

// SaleRepository is the receipt sink: it persists completed sales and serves
// the sales history. Persist is invoked only after a successful checkout.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	List(ctx context.Context, params *SaleFilterParams) ([]entity.Sale, int64, error)
	// ListRecent returns the newest sales first, for the dashboard feed.
	ListRecent(ctx context.Context, limit int) ([]entity.Sale, error)
	// TotalsSince sums grand totals and counts sales on or after the cutoff.
	TotalsSince(ctx context.Context, since time.Time) (decimal.Decimal, int64, error)
}
