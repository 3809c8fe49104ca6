package entity

import "github.com/google/uuid"

// CartLine is one product-quantity entry in a cart. Quantity is always a
// positive integer.
type CartLine struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

// Cart is an ordered sequence of cart lines with at most one line per
// product. It is a value held by the calling terminal; checkout never
// mutates it, so the operator can adjust and resubmit after a failure.
type Cart struct {
	Lines []CartLine `json:"lines"`
}

// NewCart creates an empty cart.
func NewCart() *Cart {
	return &Cart{}
}

// AddLine adds quantity of a product to the cart. Repeated additions of the
// same product increment the existing line instead of appending a duplicate.
func (c *Cart) AddLine(productID uuid.UUID, quantity int) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines[i].Quantity += quantity
			return
		}
	}
	c.Lines = append(c.Lines, CartLine{ProductID: productID, Quantity: quantity})
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// ProductIDs returns the distinct product ids in cart order.
func (c *Cart) ProductIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(c.Lines))
	for i, line := range c.Lines {
		ids[i] = line.ProductID
	}
	return ids
}
