package request

import "github.com/google/uuid"

// CheckoutLineRequest is one product-quantity pair in a checkout cart
type CheckoutLineRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// CheckoutRequest represents a checkout request. The Idempotency-Key header
// accompanies it so retried submissions replay the original response.
type CheckoutRequest struct {
	Lines []CheckoutLineRequest `json:"lines" binding:"required,dive"`
}
