package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vibeburger/pos-api/internal/domain/entity"
	domainRepo "github.com/vibeburger/pos-api/internal/domain/repository"
)

// MemoryInventory is an in-memory ingredient store implementing both the
// catalog repository and the stock ledger over the same rows, mirroring the
// postgres layout. Used by tests and local development without a database.
type MemoryInventory struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*entity.Ingredient
}

// NewMemoryInventory creates an empty in-memory inventory
func NewMemoryInventory() *MemoryInventory {
	return &MemoryInventory{rows: make(map[uuid.UUID]*entity.Ingredient)}
}

var (
	_ domainRepo.IngredientRepository = (*MemoryInventory)(nil)
	_ domainRepo.StockLedger          = (*MemoryInventory)(nil)
)

func (m *MemoryInventory) Create(ctx context.Context, ingredient *entity.Ingredient) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ingredient.ID == uuid.Nil {
		ingredient.ID = uuid.New()
	}
	if ingredient.Version == 0 {
		ingredient.Version = 1
	}
	cp := *ingredient
	m.rows[cp.ID] = &cp
	return nil
}

func (m *MemoryInventory) GetByID(ctx context.Context, id uuid.UUID) (*entity.Ingredient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *row
	return &cp, nil
}

func (m *MemoryInventory) GetBySlug(ctx context.Context, slug string) (*entity.Ingredient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if row.Slug == slug {
			cp := *row
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *MemoryInventory) Update(ctx context.Context, ingredient *entity.Ingredient) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[ingredient.ID]
	if !ok {
		return nil
	}
	row.Name = ingredient.Name
	row.Slug = ingredient.Slug
	row.Unit = ingredient.Unit
	row.LowStockThreshold = ingredient.LowStockThreshold
	row.Cost = ingredient.Cost
	return nil
}

func (m *MemoryInventory) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rows, id)
	return nil
}

func (m *MemoryInventory) List(ctx context.Context, params *domainRepo.IngredientFilterParams) ([]entity.Ingredient, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	matched := make([]entity.Ingredient, 0, len(m.rows))
	for _, row := range m.rows {
		if params.Search != "" && !strings.Contains(strings.ToLower(row.Name), strings.ToLower(params.Search)) {
			continue
		}
		if params.LowStock && !row.IsLowStock() {
			continue
		}
		matched = append(matched, *row)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })

	total := int64(len(matched))
	params.Pagination.Validate()
	start := params.Pagination.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + params.Pagination.PerPage
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (m *MemoryInventory) CountLowStock(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, row := range m.rows {
		if row.IsLowStock() {
			count++
		}
	}
	return count, nil
}

func (m *MemoryInventory) CountRecipeReferences(ctx context.Context, id uuid.UUID) (int64, error) {
	return 0, nil // recipe rows live in the product store
}

func (m *MemoryInventory) Snapshot(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domainRepo.StockSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshots := make(map[uuid.UUID]domainRepo.StockSnapshot, len(ids))
	for _, id := range ids {
		row, ok := m.rows[id]
		if !ok {
			return nil, &domainRepo.IngredientNotFoundError{IngredientID: id}
		}
		snapshots[id] = domainRepo.StockSnapshot{
			IngredientID: id,
			Name:         row.Name,
			Stock:        row.CurrentStock,
			Version:      row.Version,
		}
	}
	return snapshots, nil
}

// ApplyDecrements validates the whole batch under the lock before mutating
// anything, so a rejected decrement leaves every balance untouched.
func (m *MemoryInventory) ApplyDecrements(ctx context.Context, decrements map[uuid.UUID]domainRepo.StockDecrement) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, dec := range decrements {
		row, ok := m.rows[id]
		if !ok {
			return &domainRepo.IngredientNotFoundError{IngredientID: id}
		}
		if row.Version != dec.Version {
			return &domainRepo.VersionConflictError{IngredientID: id}
		}
		if row.CurrentStock.LessThan(dec.Quantity) {
			return &domainRepo.OutOfStockError{
				IngredientID: id,
				Name:         row.Name,
				Needed:       dec.Quantity,
				Available:    row.CurrentStock,
			}
		}
	}

	for id, dec := range decrements {
		row := m.rows[id]
		row.CurrentStock = row.CurrentStock.Sub(dec.Quantity)
		row.Version++
	}
	return nil
}

func (m *MemoryInventory) ApplyIncrement(ctx context.Context, id uuid.UUID, quantity decimal.Decimal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[id]
	if !ok {
		return &domainRepo.IngredientNotFoundError{IngredientID: id}
	}
	row.CurrentStock = row.CurrentStock.Add(quantity)
	row.Version++
	return nil
}

// MemoryProductRepository is an in-memory product store for tests and local
// development.
type MemoryProductRepository struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*entity.Product
}

// NewMemoryProductRepository creates an empty in-memory product repository
func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{rows: make(map[uuid.UUID]*entity.Product)}
}

var _ domainRepo.ProductRepository = (*MemoryProductRepository)(nil)

func (m *MemoryProductRepository) Create(ctx context.Context, product *entity.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	cp := *product
	m.rows[cp.ID] = &cp
	return nil
}

func (m *MemoryProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *row
	return &cp, nil
}

func (m *MemoryProductRepository) GetBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if row.Slug == slug {
			cp := *row
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *MemoryProductRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	products := make([]entity.Product, 0, len(ids))
	for _, id := range ids {
		if row, ok := m.rows[id]; ok {
			products = append(products, *row)
		}
	}
	return products, nil
}

func (m *MemoryProductRepository) Update(ctx context.Context, product *entity.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[product.ID]; !ok {
		return nil
	}
	cp := *product
	m.rows[cp.ID] = &cp
	return nil
}

func (m *MemoryProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rows, id)
	return nil
}

func (m *MemoryProductRepository) List(ctx context.Context, params *domainRepo.ProductFilterParams) ([]entity.Product, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	matched := make([]entity.Product, 0, len(m.rows))
	for _, row := range m.rows {
		if params.Search != "" && !strings.Contains(strings.ToLower(row.Name), strings.ToLower(params.Search)) {
			continue
		}
		if params.Category != "" && row.Category != params.Category {
			continue
		}
		matched = append(matched, *row)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })

	total := int64(len(matched))
	params.Pagination.Validate()
	start := params.Pagination.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + params.Pagination.PerPage
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

// MemorySaleRepository is an in-memory receipt store for tests.
type MemorySaleRepository struct {
	mu    sync.Mutex
	sales []entity.Sale
}

// NewMemorySaleRepository creates an empty in-memory sale repository
func NewMemorySaleRepository() *MemorySaleRepository {
	return &MemorySaleRepository{}
}

var _ domainRepo.SaleRepository = (*MemorySaleRepository)(nil)

func (m *MemorySaleRepository) Create(ctx context.Context, sale *entity.Sale) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	m.sales = append(m.sales, *sale)
	return nil
}

func (m *MemorySaleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.sales {
		if m.sales[i].ID == id {
			cp := m.sales[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *MemorySaleRepository) List(ctx context.Context, params *domainRepo.SaleFilterParams) ([]entity.Sale, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	matched := make([]entity.Sale, 0, len(m.sales))
	for _, sale := range m.sales {
		if params.From != nil && sale.SaleDate.Before(*params.From) {
			continue
		}
		if params.To != nil && sale.SaleDate.After(*params.To) {
			continue
		}
		matched = append(matched, sale)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].SaleDate.After(matched[j].SaleDate) })

	total := int64(len(matched))
	params.Pagination.Validate()
	start := params.Pagination.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + params.Pagination.PerPage
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (m *MemorySaleRepository) ListRecent(ctx context.Context, limit int) ([]entity.Sale, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sorted := make([]entity.Sale, len(m.sales))
	copy(sorted, m.sales)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].SaleDate.After(sorted[j].SaleDate) })
	if limit < len(sorted) {
		sorted = sorted[:limit]
	}
	return sorted, nil
}

func (m *MemorySaleRepository) TotalsSince(ctx context.Context, since time.Time) (decimal.Decimal, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	total := decimal.Zero
	var count int64
	for _, sale := range m.sales {
		if sale.SaleDate.Before(since) {
			continue
		}
		total = total.Add(sale.GrandTotal)
		count++
	}
	return total, count, nil
}

// MemorySettingsRepository is an in-memory settings store for tests.
type MemorySettingsRepository struct {
	mu       sync.Mutex
	settings *entity.StoreSettings
}

// NewMemorySettingsRepository creates an in-memory settings repository,
// optionally pre-populated.
func NewMemorySettingsRepository(settings *entity.StoreSettings) *MemorySettingsRepository {
	return &MemorySettingsRepository{settings: settings}
}

var _ domainRepo.SettingsRepository = (*MemorySettingsRepository)(nil)

func (m *MemorySettingsRepository) Get(ctx context.Context) (*entity.StoreSettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.settings == nil {
		return nil, nil
	}
	cp := *m.settings
	return &cp, nil
}

func (m *MemorySettingsRepository) Create(ctx context.Context, settings *entity.StoreSettings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *settings
	m.settings = &cp
	return nil
}

func (m *MemorySettingsRepository) Update(ctx context.Context, settings *entity.StoreSettings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *settings
	m.settings = &cp
	return nil
}
