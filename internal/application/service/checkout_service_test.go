package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vibeburger/pos-api/internal/domain/entity"
	"github.com/vibeburger/pos-api/internal/domain/enum"
	"github.com/vibeburger/pos-api/internal/domain/repository"
	infraRepo "github.com/vibeburger/pos-api/internal/infrastructure/repository"
)

// checkoutFixture wires a checkout service against in-memory stores seeded
// with the starter burger catalog.
type checkoutFixture struct {
	service   *CheckoutService
	inventory *infraRepo.MemoryInventory
	products  *infraRepo.MemoryProductRepository
	sales     *infraRepo.MemorySaleRepository

	bun, patty, cheese, lettuce uuid.UUID
	cheeseburger, doubleDecker  uuid.UUID
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()
	ctx := context.Background()

	f := &checkoutFixture{
		inventory: infraRepo.NewMemoryInventory(),
		products:  infraRepo.NewMemoryProductRepository(),
		sales:     infraRepo.NewMemorySaleRepository(),
	}

	seed := func(name, unit string, stock int64) uuid.UUID {
		ing := &entity.Ingredient{
			Name:         name,
			Slug:         name,
			Unit:         unit,
			CurrentStock: decimal.NewFromInt(stock),
		}
		if err := f.inventory.Create(ctx, ing); err != nil {
			t.Fatalf("seed ingredient %s: %v", name, err)
		}
		return ing.ID
	}
	f.bun = seed("burger-buns", "pcs", 50)
	f.patty = seed("beef-patty", "pcs", 42)
	f.cheese = seed("cheddar-slice", "slice", 100)
	f.lettuce = seed("iceberg-lettuce", "grams", 500)

	qty := func(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

	cheeseburger := &entity.Product{
		Name:      "Classic Cheeseburger",
		Slug:      "classic-cheeseburger",
		BasePrice: decimal.NewFromFloat(150.00),
		Recipe: []entity.RecipeItem{
			{IngredientID: f.bun, QuantityRequired: qty(1)},
			{IngredientID: f.patty, QuantityRequired: qty(1)},
			{IngredientID: f.cheese, QuantityRequired: qty(1)},
			{IngredientID: f.lettuce, QuantityRequired: qty(20)},
		},
	}
	doubleDecker := &entity.Product{
		Name:      "Double Decker",
		Slug:      "double-decker",
		BasePrice: decimal.NewFromFloat(240.00),
		Recipe: []entity.RecipeItem{
			{IngredientID: f.bun, QuantityRequired: qty(1)},
			{IngredientID: f.patty, QuantityRequired: qty(2)},
			{IngredientID: f.cheese, QuantityRequired: qty(2)},
			{IngredientID: f.lettuce, QuantityRequired: qty(30)},
		},
	}
	for _, p := range []*entity.Product{cheeseburger, doubleDecker} {
		if err := f.products.Create(ctx, p); err != nil {
			t.Fatalf("seed product %s: %v", p.Slug, err)
		}
	}
	f.cheeseburger = cheeseburger.ID
	f.doubleDecker = doubleDecker.ID

	settings := infraRepo.NewMemorySettingsRepository(entity.DefaultStoreSettings())
	f.service = NewCheckoutService(f.products, f.inventory, settings, f.sales, 3)
	return f
}

func (f *checkoutFixture) stock(t *testing.T, id uuid.UUID) decimal.Decimal {
	t.Helper()
	ing, err := f.inventory.GetByID(context.Background(), id)
	if err != nil || ing == nil {
		t.Fatalf("read stock: %v", err)
	}
	return ing.CurrentStock
}

func (f *checkoutFixture) setStock(t *testing.T, id uuid.UUID, stock int64) {
	t.Helper()
	ctx := context.Background()
	current := f.stock(t, id)
	delta := decimal.NewFromInt(stock).Sub(current)
	if delta.IsZero() {
		return
	}
	if err := f.inventory.ApplyIncrement(ctx, id, delta); err != nil {
		t.Fatalf("set stock: %v", err)
	}
}

func TestCheckoutDecrementsExactDemandAndPersistsSale(t *testing.T) {
	f := newCheckoutFixture(t)
	cart := entity.NewCart()
	cart.AddLine(f.cheeseburger, 2)

	sale, err := f.service.Checkout(context.Background(), uuid.New(), cart)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Conservation: exactly the aggregated demand left the ledger.
	checks := []struct {
		name string
		id   uuid.UUID
		want int64
	}{
		{"bun", f.bun, 48},
		{"patty", f.patty, 40},
		{"cheese", f.cheese, 98},
		{"lettuce", f.lettuce, 460},
	}
	for _, c := range checks {
		if got := f.stock(t, c.id); !got.Equal(decimal.NewFromInt(c.want)) {
			t.Errorf("%s stock = %s, want %d", c.name, got, c.want)
		}
	}

	if sale.Status != enum.SaleStatusCompleted {
		t.Errorf("sale status = %v, want completed", sale.Status)
	}
	if sale.InvoiceNo == "" {
		t.Error("sale has no invoice number")
	}
	if s := sale.Subtotal.StringFixed(2); s != "300.00" {
		t.Errorf("subtotal = %s, want 300.00", s)
	}
	if s := sale.VatableSales.StringFixed(2); s != "267.86" {
		t.Errorf("vatable sales = %s, want 267.86", s)
	}
	if s := sale.VatAmount.StringFixed(2); s != "32.14" {
		t.Errorf("vat amount = %s, want 32.14", s)
	}
	if s := sale.ServiceCharge.StringFixed(2); s != "30.00" {
		t.Errorf("service charge = %s, want 30.00", s)
	}
	if s := sale.GrandTotal.StringFixed(2); s != "330.00" {
		t.Errorf("grand total = %s, want 330.00", s)
	}
	if len(sale.Lines) != 1 || sale.Lines[0].Quantity != 2 {
		t.Errorf("unexpected sale lines: %+v", sale.Lines)
	}

	persisted, err := f.sales.GetByID(context.Background(), sale.ID)
	if err != nil || persisted == nil {
		t.Fatalf("sale was not persisted: %v", err)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	f := newCheckoutFixture(t)

	if _, err := f.service.Checkout(context.Background(), uuid.New(), entity.NewCart()); !errors.Is(err, ErrEmptyCart) {
		t.Errorf("empty cart: got %v, want ErrEmptyCart", err)
	}
	if _, err := f.service.Checkout(context.Background(), uuid.New(), nil); !errors.Is(err, ErrEmptyCart) {
		t.Errorf("nil cart: got %v, want ErrEmptyCart", err)
	}
}

func TestCheckoutUnknownProduct(t *testing.T) {
	f := newCheckoutFixture(t)
	cart := entity.NewCart()
	cart.AddLine(uuid.New(), 1)

	_, err := f.service.Checkout(context.Background(), uuid.New(), cart)

	var unknown *UnknownProductError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownProductError, got %v", err)
	}
}

func TestCheckoutInsufficientStockLeavesEverythingUntouched(t *testing.T) {
	f := newCheckoutFixture(t)
	f.setStock(t, f.patty, 2)

	// 1 cheeseburger + 1 double decker needs 3 patties; only 2 remain.
	cart := entity.NewCart()
	cart.AddLine(f.cheeseburger, 1)
	cart.AddLine(f.doubleDecker, 1)

	_, err := f.service.Checkout(context.Background(), uuid.New(), cart)

	var outOfStock *repository.OutOfStockError
	if !errors.As(err, &outOfStock) {
		t.Fatalf("expected OutOfStockError, got %v", err)
	}
	if outOfStock.IngredientID != f.patty {
		t.Errorf("error names ingredient %s, want patty %s", outOfStock.IngredientID, f.patty)
	}
	if !outOfStock.Needed.Equal(decimal.NewFromInt(3)) || !outOfStock.Available.Equal(decimal.NewFromInt(2)) {
		t.Errorf("needed/available = %s/%s, want 3/2", outOfStock.Needed, outOfStock.Available)
	}

	// All-or-nothing: even the sufficient ingredients stay untouched.
	if got := f.stock(t, f.bun); !got.Equal(decimal.NewFromInt(50)) {
		t.Errorf("bun stock = %s, want 50", got)
	}
	if got := f.stock(t, f.patty); !got.Equal(decimal.NewFromInt(2)) {
		t.Errorf("patty stock = %s, want 2", got)
	}

	// No receipt on failure.
	if _, total, _ := f.sales.List(context.Background(), &repository.SaleFilterParams{}); total != 0 {
		t.Errorf("expected no persisted sales, got %d", total)
	}
}

// conflictingLedger injects version conflicts into the first N ApplyDecrements
// calls, then delegates.
type conflictingLedger struct {
	repository.StockLedger
	mu        sync.Mutex
	conflicts int
	calls     int
}

func (l *conflictingLedger) ApplyDecrements(ctx context.Context, decrements map[uuid.UUID]repository.StockDecrement) error {
	l.mu.Lock()
	l.calls++
	inject := l.conflicts > 0
	if inject {
		l.conflicts--
	}
	l.mu.Unlock()

	if inject {
		for id := range decrements {
			return &repository.VersionConflictError{IngredientID: id}
		}
	}
	return l.StockLedger.ApplyDecrements(ctx, decrements)
}

func TestCheckoutRetriesVersionConflict(t *testing.T) {
	f := newCheckoutFixture(t)
	ledger := &conflictingLedger{StockLedger: f.inventory, conflicts: 1}
	settings := infraRepo.NewMemorySettingsRepository(entity.DefaultStoreSettings())
	svc := NewCheckoutService(f.products, ledger, settings, f.sales, 3)

	cart := entity.NewCart()
	cart.AddLine(f.cheeseburger, 1)

	sale, err := svc.Checkout(context.Background(), uuid.New(), cart)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sale == nil {
		t.Fatal("expected a sale after retry")
	}
	if ledger.calls != 2 {
		t.Errorf("ledger write attempts = %d, want 2", ledger.calls)
	}
	if got := f.stock(t, f.patty); !got.Equal(decimal.NewFromInt(41)) {
		t.Errorf("patty stock = %s, want 41", got)
	}
}

func TestCheckoutConflictExhausted(t *testing.T) {
	f := newCheckoutFixture(t)
	ledger := &conflictingLedger{StockLedger: f.inventory, conflicts: 1000}
	settings := infraRepo.NewMemorySettingsRepository(entity.DefaultStoreSettings())
	svc := NewCheckoutService(f.products, ledger, settings, f.sales, 3)

	cart := entity.NewCart()
	cart.AddLine(f.cheeseburger, 1)

	_, err := svc.Checkout(context.Background(), uuid.New(), cart)
	if !errors.Is(err, ErrConflictExhausted) {
		t.Fatalf("got %v, want ErrConflictExhausted", err)
	}
	if ledger.calls != 3 {
		t.Errorf("ledger write attempts = %d, want 3", ledger.calls)
	}
	if got := f.stock(t, f.patty); !got.Equal(decimal.NewFromInt(42)) {
		t.Errorf("patty stock = %s, want 42 untouched", got)
	}
	if _, total, _ := f.sales.List(context.Background(), &repository.SaleFilterParams{}); total != 0 {
		t.Errorf("expected no persisted sales, got %d", total)
	}
}

// racingLedger simulates another terminal winning the race: the write-time
// check reports the shortage even though the snapshot looked fine.
type racingLedger struct {
	repository.StockLedger
	mu    sync.Mutex
	calls int
	loser uuid.UUID
}

func (l *racingLedger) ApplyDecrements(ctx context.Context, decrements map[uuid.UUID]repository.StockDecrement) error {
	l.mu.Lock()
	l.calls++
	l.mu.Unlock()
	return &repository.OutOfStockError{
		IngredientID: l.loser,
		Needed:       decimal.NewFromInt(2),
		Available:    decimal.NewFromInt(1),
	}
}

func TestCheckoutWriteTimeOutOfStockNotRetried(t *testing.T) {
	f := newCheckoutFixture(t)
	ledger := &racingLedger{StockLedger: f.inventory, loser: f.patty}
	settings := infraRepo.NewMemorySettingsRepository(entity.DefaultStoreSettings())
	svc := NewCheckoutService(f.products, ledger, settings, f.sales, 3)

	cart := entity.NewCart()
	cart.AddLine(f.doubleDecker, 1)

	_, err := svc.Checkout(context.Background(), uuid.New(), cart)

	var outOfStock *repository.OutOfStockError
	if !errors.As(err, &outOfStock) {
		t.Fatalf("expected OutOfStockError, got %v", err)
	}
	if ledger.calls != 1 {
		t.Errorf("ledger write attempts = %d, want 1 (no retry on shortage)", ledger.calls)
	}
}

func TestCheckoutConcurrentNeverOversells(t *testing.T) {
	f := newCheckoutFixture(t)
	settings := infraRepo.NewMemorySettingsRepository(entity.DefaultStoreSettings())
	// Generous retry limit so contention alone does not starve terminals.
	svc := NewCheckoutService(f.products, f.inventory, settings, f.sales, 50)

	// 42 patties; each double decker takes 2, so at most 21 can sell.
	const terminals = 30
	var wg sync.WaitGroup
	var mu sync.Mutex
	successes := 0

	for i := 0; i < terminals; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cart := entity.NewCart()
			cart.AddLine(f.doubleDecker, 1)
			if _, err := svc.Checkout(context.Background(), uuid.New(), cart); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if successes > 21 {
		t.Fatalf("%d checkouts succeeded; only 21 possible", successes)
	}

	pattyLeft := f.stock(t, f.patty)
	if pattyLeft.IsNegative() {
		t.Fatalf("patty stock went negative: %s", pattyLeft)
	}
	wantLeft := decimal.NewFromInt(42 - int64(successes)*2)
	if !pattyLeft.Equal(wantLeft) {
		t.Errorf("patty stock = %s, want %s for %d sales", pattyLeft, wantLeft, successes)
	}

	if _, total, _ := f.sales.List(context.Background(), &repository.SaleFilterParams{}); total != int64(successes) {
		t.Errorf("persisted sales = %d, want %d", total, successes)
	}
}
