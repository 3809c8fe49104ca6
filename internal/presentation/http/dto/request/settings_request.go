package request

import "github.com/shopspring/decimal"

// UpdateSettingsRequest represents a store settings update request
type UpdateSettingsRequest struct {
	StoreName         *string          `json:"store_name" binding:"omitempty,min=1,max=255"`
	Currency          *string          `json:"currency" binding:"omitempty,min=1,max=10"`
	EnableTax         *bool            `json:"enable_tax"`
	VatRate           *decimal.Decimal `json:"vat_rate"`
	ServiceChargeRate *decimal.Decimal `json:"service_charge_rate"`
	IsVatInclusive    *bool            `json:"is_vat_inclusive"`
}
