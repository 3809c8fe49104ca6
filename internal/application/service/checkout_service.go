package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vibeburger/pos-api/internal/domain/entity"
	"github.com/vibeburger/pos-api/internal/domain/enum"
	"github.com/vibeburger/pos-api/internal/domain/repository"
	"github.com/vibeburger/pos-api/pkg/utils"
)

// DefaultCheckoutRetries bounds the optimistic retry loop when no explicit
// configuration is given.
const DefaultCheckoutRetries = 3

var (
	// ErrEmptyCart is returned when checkout is called with no cart lines.
	ErrEmptyCart = errors.New("cart has no lines")

	// ErrConflictExhausted is returned when version conflicts persisted
	// through every retry attempt. The cart is untouched; the caller may
	// simply resubmit.
	ErrConflictExhausted = errors.New("checkout aborted: stock contention persisted through all retries")

	// ErrLedgerUnavailable wraps transport/storage failures from the stock
	// ledger. Transient; the caller may resubmit.
	ErrLedgerUnavailable = errors.New("stock ledger unavailable")
)

// CheckoutService coordinates cart checkout: it aggregates ingredient
// demand, applies an all-or-nothing stock decrement under optimistic
// concurrency, prices the cart against the tax policy in effect, and
// persists the receipt. All collaborators are injected; there is no shared
// singleton state, so any number of terminals may check out concurrently.
type CheckoutService struct {
	productRepo  repository.ProductRepository
	ledger       repository.StockLedger
	settingsRepo repository.SettingsRepository
	saleRepo     repository.SaleRepository
	maxRetries   int
}

// NewCheckoutService creates a new checkout service. maxRetries bounds the
// version-conflict retry loop; values < 1 fall back to DefaultCheckoutRetries.
func NewCheckoutService(
	productRepo repository.ProductRepository,
	ledger repository.StockLedger,
	settingsRepo repository.SettingsRepository,
	saleRepo repository.SaleRepository,
	maxRetries int,
) *CheckoutService {
	if maxRetries < 1 {
		maxRetries = DefaultCheckoutRetries
	}
	return &CheckoutService{
		productRepo:  productRepo,
		ledger:       ledger,
		settingsRepo: settingsRepo,
		saleRepo:     saleRepo,
		maxRetries:   maxRetries,
	}
}

// Checkout validates and fulfills a cart. On success every required
// ingredient has been decremented by exactly its aggregated demand, a
// Completed sale record is persisted, and the receipt is returned. On any
// failure nothing is decremented, no receipt is persisted, and the cart is
// left untouched so the operator can adjust quantities and resubmit.
func (s *CheckoutService) Checkout(ctx context.Context, userID uuid.UUID, cart *entity.Cart) (*entity.Sale, error) {
	if cart == nil || cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	// Tax policy snapshot: the policy in effect now prices this checkout
	// even if settings change while we retry.
	policy, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLedgerUnavailable, err)
	}
	if policy == nil {
		policy = entity.DefaultStoreSettings()
	}

	products, err := s.fetchProducts(ctx, cart)
	if err != nil {
		return nil, err
	}

	demand, err := AggregateDemand(cart, products)
	if err != nil {
		return nil, err
	}

	if err := s.reserveStock(ctx, demand); err != nil {
		return nil, err
	}

	breakdown := PriceCart(cart, products, policy)
	sale := buildSale(userID, cart, products, breakdown)

	if err := s.saleRepo.Create(ctx, sale); err != nil {
		// Stock was already decremented; restore it so the ledger stays
		// consistent with the absence of a receipt.
		s.restoreStock(ctx, demand)
		return nil, fmt.Errorf("failed to persist sale: %w", err)
	}

	return sale, nil
}

// fetchProducts batch-loads every product the cart references in one query.
func (s *CheckoutService) fetchProducts(ctx context.Context, cart *entity.Cart) (map[uuid.UUID]*entity.Product, error) {
	products, err := s.productRepo.GetByIDs(ctx, cart.ProductIDs())
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	productMap := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		productMap[products[i].ID] = &products[i]
	}
	return productMap, nil
}

// reserveStock runs the read/pre-check/write cycle against the ledger,
// retrying version conflicts up to the configured bound. The demand mapping
// is computed once and never changes across attempts; only the reads are
// fresh. A write-time OutOfStock means another checkout won the race and is
// not retried — the caller must re-enter with fresh cart intent.
func (s *CheckoutService) reserveStock(ctx context.Context, demand map[uuid.UUID]decimal.Decimal) error {
	if len(demand) == 0 {
		return nil // cart of stock-free items
	}

	ids := make([]uuid.UUID, 0, len(demand))
	for id := range demand {
		ids = append(ids, id)
	}

	for attempt := 0; attempt < s.maxRetries; attempt++ {
		snapshots, err := s.ledger.Snapshot(ctx, ids)
		if err != nil {
			var notFound *repository.IngredientNotFoundError
			if errors.As(err, &notFound) {
				return err
			}
			return fmt.Errorf("%w: %v", ErrLedgerUnavailable, err)
		}

		// Fail fast before contending for the write when the snapshot
		// already shows a shortage.
		decrements := make(map[uuid.UUID]repository.StockDecrement, len(demand))
		for id, needed := range demand {
			snap := snapshots[id]
			if needed.GreaterThan(snap.Stock) {
				return &repository.OutOfStockError{
					IngredientID: id,
					Name:         snap.Name,
					Needed:       needed,
					Available:    snap.Stock,
				}
			}
			decrements[id] = repository.StockDecrement{Quantity: needed, Version: snap.Version}
		}

		err = s.ledger.ApplyDecrements(ctx, decrements)
		if err == nil {
			return nil
		}

		var conflict *repository.VersionConflictError
		if errors.As(err, &conflict) {
			continue // re-read and re-validate with the same demand
		}

		var outOfStock *repository.OutOfStockError
		var notFound *repository.IngredientNotFoundError
		if errors.As(err, &outOfStock) || errors.As(err, &notFound) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrLedgerUnavailable, err)
	}

	return ErrConflictExhausted
}

// restoreStock compensates a committed decrement when receipt persistence
// fails afterwards. Best effort: a failure here is logged by the caller's
// error path, not retried.
func (s *CheckoutService) restoreStock(ctx context.Context, demand map[uuid.UUID]decimal.Decimal) {
	for id, qty := range demand {
		_ = s.ledger.ApplyIncrement(ctx, id, qty)
	}
}

// buildSale materializes the immutable receipt record, rounding every amount
// to 2 decimal places at this final step only.
func buildSale(userID uuid.UUID, cart *entity.Cart, products map[uuid.UUID]*entity.Product, breakdown PriceBreakdown) *entity.Sale {
	lines := make([]entity.SaleLine, 0, len(cart.Lines))
	for _, cartLine := range cart.Lines {
		product := products[cartLine.ProductID]
		lineTotal := product.BasePrice.Mul(decimal.NewFromInt(int64(cartLine.Quantity)))
		lines = append(lines, entity.SaleLine{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    cartLine.Quantity,
			UnitPrice:   product.BasePrice.Round(2),
			LineTotal:   lineTotal.Round(2),
		})
	}

	return &entity.Sale{
		InvoiceNo:     utils.GenerateInvoiceNo(),
		UserID:        userID,
		Status:        enum.SaleStatusCompleted,
		Subtotal:      breakdown.Subtotal.Round(2),
		VatableSales:  breakdown.VatableSales.Round(2),
		VatAmount:     breakdown.VatAmount.Round(2),
		ServiceCharge: breakdown.ServiceCharge.Round(2),
		GrandTotal:    breakdown.GrandTotal.Round(2),
		SaleDate:      time.Now(),
		Lines:         lines,
	}
}
