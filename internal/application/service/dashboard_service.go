package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vibeburger/pos-api/internal/domain/entity"
	"github.com/vibeburger/pos-api/internal/domain/repository"
)

// recentSalesLimit caps the dashboard's recent-sales feed.
const recentSalesLimit = 10

// DashboardService provides the storefront overview: today's takings,
// low-stock alerts and the latest receipts.
type DashboardService struct {
	saleRepo       repository.SaleRepository
	ingredientRepo repository.IngredientRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	saleRepo repository.SaleRepository,
	ingredientRepo repository.IngredientRepository,
) *DashboardService {
	return &DashboardService{
		saleRepo:       saleRepo,
		ingredientRepo: ingredientRepo,
	}
}

// DashboardStats represents dashboard statistics
type DashboardStats struct {
	TodayRevenue  decimal.Decimal `json:"today_revenue"`
	TodaySales    int64           `json:"today_sales"`
	LowStockCount int64           `json:"low_stock_count"`
	RecentSales   []entity.Sale   `json:"recent_sales"`
}

// GetDashboardStats returns dashboard statistics
func (s *DashboardService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	revenue, count, err := s.saleRepo.TotalsSince(ctx, startOfDay)
	if err != nil {
		return nil, err
	}

	lowStock, err := s.ingredientRepo.CountLowStock(ctx)
	if err != nil {
		return nil, err
	}

	recent, err := s.saleRepo.ListRecent(ctx, recentSalesLimit)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		TodayRevenue:  revenue,
		TodaySales:    count,
		LowStockCount: lowStock,
		RecentSales:   recent,
	}, nil
}
