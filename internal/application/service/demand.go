package service

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vibeburger/pos-api/internal/domain/entity"
)

// UnknownProductError reports a cart line referencing a product missing from
// the catalog. The checkout is aborted before any stock is touched.
type UnknownProductError struct {
	ProductID uuid.UUID
}

func (e *UnknownProductError) Error() string {
	return fmt.Sprintf("product %s not found in catalog", e.ProductID)
}

// AggregateDemand consolidates a cart into total ingredient quantities
// required, summing across all lines and products that share an ingredient.
// products must contain every product the cart references; a missing entry
// fails with UnknownProductError. Products with an empty recipe contribute
// nothing — stock-free items are legal and the checkout still succeeds.
//
// The result never contains zero quantities. Pure and side-effect free: the
// stock ledger is not consulted here.
func AggregateDemand(cart *entity.Cart, products map[uuid.UUID]*entity.Product) (map[uuid.UUID]decimal.Decimal, error) {
	demand := make(map[uuid.UUID]decimal.Decimal)

	for _, line := range cart.Lines {
		product, ok := products[line.ProductID]
		if !ok {
			return nil, &UnknownProductError{ProductID: line.ProductID}
		}

		lineQty := decimal.NewFromInt(int64(line.Quantity))
		for _, item := range product.Recipe {
			needed := item.QuantityRequired.Mul(lineQty)
			if needed.IsZero() {
				continue
			}
			demand[item.IngredientID] = demand[item.IngredientID].Add(needed)
		}
	}

	return demand, nil
}
