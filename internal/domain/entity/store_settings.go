package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// StoreSettings holds the store profile and tax policy. A single row exists;
// each checkout reads it once at the start and prices against that snapshot,
// so a mid-checkout policy change only affects subsequent checkouts.
//
// IsVatInclusive is stored for receipt disclosure but the pricing engine
// only implements inclusive pricing; the flag is never branched on.
type StoreSettings struct {
	ID                uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	StoreName         string          `gorm:"size:255;not null" json:"store_name"`
	Currency          string          `gorm:"size:10;not null;default:'PHP'" json:"currency"`
	EnableTax         bool            `gorm:"not null;default:true" json:"enable_tax"`
	VatRate           decimal.Decimal `gorm:"type:numeric(6,4);not null" json:"vat_rate"`
	ServiceChargeRate decimal.Decimal `gorm:"type:numeric(6,4);not null" json:"service_charge_rate"`
	IsVatInclusive    bool            `gorm:"not null;default:true" json:"is_vat_inclusive"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating new settings
func (s *StoreSettings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the StoreSettings model
func (StoreSettings) TableName() string {
	return "store_settings"
}

// DefaultStoreSettings returns the settings used when no row exists yet:
// Philippine 12% inclusive VAT with a 10% service charge.
func DefaultStoreSettings() *StoreSettings {
	return &StoreSettings{
		StoreName:         "Vibe Burger Joint",
		Currency:          "PHP",
		EnableTax:         true,
		VatRate:           decimal.NewFromFloat(0.12),
		ServiceChargeRate: decimal.NewFromFloat(0.10),
		IsVatInclusive:    true,
	}
}
