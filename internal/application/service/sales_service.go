package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/vibeburger/pos-api/internal/domain/entity"
	"github.com/vibeburger/pos-api/internal/domain/repository"
	"github.com/vibeburger/pos-api/pkg/apperror"
)

// SalesService serves the sales history. Sales are immutable once written;
// there is deliberately no update or delete here.
type SalesService struct {
	saleRepo repository.SaleRepository
}

// NewSalesService creates a new sales service
func NewSalesService(saleRepo repository.SaleRepository) *SalesService {
	return &SalesService{saleRepo: saleRepo}
}

// GetSale retrieves a sale with its lines
func (s *SalesService) GetSale(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// ListSales retrieves sales with date filtering and pagination
func (s *SalesService) ListSales(ctx context.Context, params *repository.SaleFilterParams) ([]entity.Sale, int64, error) {
	return s.saleRepo.List(ctx, params)
}
