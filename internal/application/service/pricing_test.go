package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vibeburger/pos-api/internal/domain/entity"
)

func philippinePolicy() *entity.StoreSettings {
	return &entity.StoreSettings{
		StoreName:         "Vibe Burger Joint",
		Currency:          "PHP",
		EnableTax:         true,
		VatRate:           decimal.NewFromFloat(0.12),
		ServiceChargeRate: decimal.NewFromFloat(0.10),
		IsVatInclusive:    true,
	}
}

func priceFixture(price float64) (uuid.UUID, map[uuid.UUID]*entity.Product) {
	id := uuid.New()
	return id, map[uuid.UUID]*entity.Product{
		id: {ID: id, Name: "Item", BasePrice: decimal.NewFromFloat(price)},
	}
}

func TestPriceCartInclusiveVAT(t *testing.T) {
	// 1000.00 with 12% inclusive VAT and 10% service charge.
	id, products := priceFixture(500)
	cart := entity.NewCart()
	cart.AddLine(id, 2)

	got := PriceCart(cart, products, philippinePolicy())

	cases := []struct {
		name  string
		value decimal.Decimal
		want  string
	}{
		{"subtotal", got.Subtotal, "1000.00"},
		{"vatable sales", got.VatableSales, "892.86"},
		{"vat amount", got.VatAmount, "107.14"},
		{"service charge", got.ServiceCharge, "100.00"},
		{"grand total", got.GrandTotal, "1100.00"},
	}
	for _, tc := range cases {
		if s := tc.value.Round(2).StringFixed(2); s != tc.want {
			t.Errorf("%s = %s, want %s", tc.name, s, tc.want)
		}
	}
}

func TestPriceCartVATDisclosureNotAdded(t *testing.T) {
	// Inclusive pricing: grand total must not contain the VAT twice.
	id, products := priceFixture(150)
	cart := entity.NewCart()
	cart.AddLine(id, 1)

	got := PriceCart(cart, products, philippinePolicy())

	wantTotal := got.Subtotal.Add(got.ServiceCharge)
	if !got.GrandTotal.Equal(wantTotal) {
		t.Errorf("grand total = %s, want subtotal+service = %s", got.GrandTotal, wantTotal)
	}
	// vatableSales + vatAmount reconstructs the subtotal
	if !got.VatableSales.Add(got.VatAmount).Round(2).Equal(got.Subtotal.Round(2)) {
		t.Errorf("vatable %s + vat %s does not reconstruct subtotal %s",
			got.VatableSales, got.VatAmount, got.Subtotal)
	}
}

func TestPriceCartTaxDisabled(t *testing.T) {
	id, products := priceFixture(150)
	cart := entity.NewCart()
	cart.AddLine(id, 2)

	policy := philippinePolicy()
	policy.EnableTax = false

	got := PriceCart(cart, products, policy)

	if !got.VatableSales.Equal(got.Subtotal) {
		t.Errorf("vatable sales = %s, want subtotal %s", got.VatableSales, got.Subtotal)
	}
	if !got.VatAmount.IsZero() {
		t.Errorf("vat amount = %s, want 0", got.VatAmount)
	}
	if s := got.ServiceCharge.StringFixed(2); s != "30.00" {
		t.Errorf("service charge = %s, want 30.00", s)
	}
	if s := got.GrandTotal.StringFixed(2); s != "330.00" {
		t.Errorf("grand total = %s, want 330.00", s)
	}
}

func TestPriceCartMultipleLines(t *testing.T) {
	cheeseburger := uuid.New()
	doubleDecker := uuid.New()
	products := map[uuid.UUID]*entity.Product{
		cheeseburger: {ID: cheeseburger, BasePrice: decimal.NewFromFloat(150.00)},
		doubleDecker: {ID: doubleDecker, BasePrice: decimal.NewFromFloat(240.00)},
	}

	cart := entity.NewCart()
	cart.AddLine(cheeseburger, 2)
	cart.AddLine(doubleDecker, 1)

	got := PriceCart(cart, products, philippinePolicy())

	if s := got.Subtotal.StringFixed(2); s != "540.00" {
		t.Errorf("subtotal = %s, want 540.00", s)
	}
	if s := got.GrandTotal.Round(2).StringFixed(2); s != "594.00" {
		t.Errorf("grand total = %s, want 594.00", s)
	}
}

func TestPriceCartDeterministic(t *testing.T) {
	id, products := priceFixture(240)
	cart := entity.NewCart()
	cart.AddLine(id, 3)
	policy := philippinePolicy()

	first := PriceCart(cart, products, policy)
	for i := 0; i < 10; i++ {
		again := PriceCart(cart, products, policy)
		if !again.GrandTotal.Equal(first.GrandTotal) || !again.VatAmount.Equal(first.VatAmount) {
			t.Fatalf("run %d produced a different breakdown: %+v vs %+v", i, again, first)
		}
	}
}
