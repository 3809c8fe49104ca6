package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Ingredient represents a raw stock item consumed by product recipes.
// CurrentStock is never written directly by services; all stock movement
// goes through the StockLedger so the version column stays authoritative.
type Ingredient struct {
	ID                uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Name              string          `gorm:"size:255;not null" json:"name"`
	Slug              string          `gorm:"size:255;unique;not null" json:"slug"`
	Unit              string          `gorm:"size:50;not null" json:"unit"` // display unit, e.g. "pcs", "grams"
	CurrentStock      decimal.Decimal `gorm:"type:numeric(14,4);not null;default:0" json:"current_stock"`
	LowStockThreshold decimal.Decimal `gorm:"type:numeric(14,4);not null;default:0" json:"low_stock_threshold"`
	Cost              decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"cost"`
	Version           int64           `gorm:"not null;default:1" json:"version"` // optimistic lock marker, bumped on every stock write
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
	DeletedAt         gorm.DeletedAt  `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new ingredient
func (i *Ingredient) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Ingredient model
func (Ingredient) TableName() string {
	return "ingredients"
}

// IsLowStock reports whether the stock level is at or below the alert threshold.
func (i *Ingredient) IsLowStock() bool {
	return i.CurrentStock.LessThanOrEqual(i.LowStockThreshold)
}
