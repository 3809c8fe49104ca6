package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents a menu item. BasePrice is VAT-inclusive; the pricing
// breakdown discloses the VAT portion without adding it again.
type Product struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Name      string          `gorm:"size:255;not null" json:"name"`
	Slug      string          `gorm:"size:255;unique;not null" json:"slug"`
	Category  string          `gorm:"size:100" json:"category"`
	BasePrice decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"base_price"`
	ImageURL  string          `gorm:"size:512" json:"image_url,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	DeletedAt gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Recipe []RecipeItem `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"recipe"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// RecipeItem is one ingredient-quantity pair consumed when a unit of the
// product is sold. Quantities are always positive; a product with no recipe
// rows is a stock-free item and is still sellable.
type RecipeItem struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key" json:"-"`
	ProductID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"-"`
	IngredientID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"ingredient_id"`
	QuantityRequired decimal.Decimal `gorm:"type:numeric(14,4);not null" json:"quantity_required"`
	Position         int             `gorm:"not null;default:0" json:"-"` // preserves authoring order

	// Relationships
	Ingredient Ingredient `gorm:"foreignKey:IngredientID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new recipe item
func (r *RecipeItem) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the RecipeItem model
func (RecipeItem) TableName() string {
	return "recipe_items"
}
