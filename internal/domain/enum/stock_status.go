package enum

import "github.com/shopspring/decimal"

// StockStatus buckets an ingredient's stock level for the inventory screen
type StockStatus string

const (
	StockStatusInStock    StockStatus = "in_stock"
	StockStatusLow        StockStatus = "low"
	StockStatusOutOfStock StockStatus = "out_of_stock"
)

// StockStatusFor classifies a stock level against its alert threshold.
func StockStatusFor(currentStock, lowStockThreshold decimal.Decimal) StockStatus {
	switch {
	case currentStock.IsZero() || currentStock.IsNegative():
		return StockStatusOutOfStock
	case currentStock.LessThanOrEqual(lowStockThreshold):
		return StockStatusLow
	default:
		return StockStatusInStock
	}
}
