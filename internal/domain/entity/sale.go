package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/vibeburger/pos-api/internal/domain/enum"
)

// Sale is the persisted receipt record of a completed checkout. It is
// immutable once created; amounts are stored rounded to 2 decimal places.
type Sale struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceNo     string          `gorm:"size:100;unique;not null" json:"invoice_no"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	Status        enum.SaleStatus `gorm:"default:0" json:"status"`
	Subtotal      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"subtotal"`
	VatableSales  decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"vatable_sales"`
	VatAmount     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"vat_amount"`
	ServiceCharge decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"service_charge"`
	GrandTotal    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"grand_total"`
	SaleDate      time.Time       `gorm:"not null;index" json:"sale_date"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Lines []SaleLine `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE" json:"lines"`
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// SaleLine is a line item on a persisted receipt. ProductName and UnitPrice
// are copied from the catalog at sale time so later menu edits do not
// rewrite history.
type SaleLine struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"-"`
	SaleID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"-"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	ProductName string          `gorm:"size:255;not null" json:"product_name"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price"`
	LineTotal   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"line_total"`
}

// BeforeCreate generates a UUID before creating a new sale line
func (l *SaleLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleLine model
func (SaleLine) TableName() string {
	return "sale_lines"
}
