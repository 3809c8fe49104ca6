package service

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vibeburger/pos-api/internal/domain/entity"
)

// PriceBreakdown is the tax/service-charge decomposition of a cart. All
// amounts are unrounded; callers round to 2 decimal places only when
// building the receipt so rounding error never compounds across lines.
//
// VatAmount discloses the VAT portion already contained in Subtotal
// (inclusive pricing); it is not added again into GrandTotal.
type PriceBreakdown struct {
	Subtotal      decimal.Decimal
	VatableSales  decimal.Decimal
	VatAmount     decimal.Decimal
	ServiceCharge decimal.Decimal
	GrandTotal    decimal.Decimal
}

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// PriceCart computes the price breakdown for a cart under the given tax
// policy. Pure and total: identical inputs always yield identical output.
// Every product the cart references must be present in products; callers
// validate the cart upstream.
//
//	subtotal      = Σ basePrice × qty
//	vatableSales  = enableTax ? subtotal / (1 + vatRate) : subtotal
//	vatAmount     = enableTax ? vatableSales × vatRate : 0
//	serviceCharge = serviceChargeRate × subtotal
//	grandTotal    = subtotal + serviceCharge
func PriceCart(cart *entity.Cart, products map[uuid.UUID]*entity.Product, policy *entity.StoreSettings) PriceBreakdown {
	subtotal := decimal.Zero
	for _, line := range cart.Lines {
		product := products[line.ProductID]
		subtotal = subtotal.Add(product.BasePrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	vatableSales := subtotal
	vatAmount := decimal.Zero
	if policy.EnableTax {
		vatableSales = subtotal.Div(one.Add(policy.VatRate))
		vatAmount = vatableSales.Mul(policy.VatRate)
	}

	serviceCharge := policy.ServiceChargeRate.Mul(subtotal)

	return PriceBreakdown{
		Subtotal:      subtotal,
		VatableSales:  vatableSales,
		VatAmount:     vatAmount,
		ServiceCharge: serviceCharge,
		GrandTotal:    subtotal.Add(serviceCharge),
	}
}
