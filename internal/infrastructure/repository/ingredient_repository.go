package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/vibeburger/pos-api/internal/domain/entity"
	domainRepo "github.com/vibeburger/pos-api/internal/domain/repository"
)

type ingredientRepository struct {
	db *gorm.DB
}

// NewIngredientRepository creates a new ingredient repository
func NewIngredientRepository(db *gorm.DB) domainRepo.IngredientRepository {
	return &ingredientRepository{db: db}
}

// NewStockLedger exposes the same postgres rows through the stock ledger
// contract. Catalog reads and stock writes share one table; the version
// column arbitrates between them.
func NewStockLedger(db *gorm.DB) domainRepo.StockLedger {
	return &ingredientRepository{db: db}
}

func (r *ingredientRepository) Create(ctx context.Context, ingredient *entity.Ingredient) error {
	return r.db.WithContext(ctx).Create(ingredient).Error
}

func (r *ingredientRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Ingredient, error) {
	var ingredient entity.Ingredient
	err := r.db.WithContext(ctx).First(&ingredient, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ingredient, nil
}

func (r *ingredientRepository) GetBySlug(ctx context.Context, slug string) (*entity.Ingredient, error) {
	var ingredient entity.Ingredient
	err := r.db.WithContext(ctx).First(&ingredient, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ingredient, nil
}

// Update writes catalog fields only. Stock and version stay untouched so a
// concurrent checkout never loses its optimistic guard to a catalog edit.
func (r *ingredientRepository) Update(ctx context.Context, ingredient *entity.Ingredient) error {
	return r.db.WithContext(ctx).
		Model(&entity.Ingredient{}).
		Where("id = ?", ingredient.ID).
		Updates(map[string]interface{}{
			"name":                ingredient.Name,
			"slug":                ingredient.Slug,
			"unit":                ingredient.Unit,
			"low_stock_threshold": ingredient.LowStockThreshold,
			"cost":                ingredient.Cost,
		}).Error
}

func (r *ingredientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Ingredient{}, "id = ?", id).Error
}

func (r *ingredientRepository) List(ctx context.Context, params *domainRepo.IngredientFilterParams) ([]entity.Ingredient, int64, error) {
	var ingredients []entity.Ingredient
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Ingredient{})

	if params.Search != "" {
		query = query.Where("name ILIKE ?", "%"+params.Search+"%")
	}
	if params.LowStock {
		query = query.Where("current_stock <= low_stock_threshold")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.
		Order("name ASC").
		Offset(params.Pagination.Offset()).
		Limit(params.Pagination.PerPage).
		Find(&ingredients).Error

	return ingredients, total, err
}

func (r *ingredientRepository) CountLowStock(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Ingredient{}).
		Where("current_stock <= low_stock_threshold").
		Count(&count).Error
	return count, err
}

func (r *ingredientRepository) CountRecipeReferences(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.RecipeItem{}).
		Where("ingredient_id = ?", id).
		Count(&count).Error
	return count, err
}

// Snapshot reads (stock, version) for each requested ingredient in one query.
func (r *ingredientRepository) Snapshot(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domainRepo.StockSnapshot, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]domainRepo.StockSnapshot{}, nil
	}

	var rows []entity.Ingredient
	err := r.db.WithContext(ctx).
		Select("id", "name", "current_stock", "version").
		Where("id IN ?", ids).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	snapshots := make(map[uuid.UUID]domainRepo.StockSnapshot, len(rows))
	for _, row := range rows {
		snapshots[row.ID] = domainRepo.StockSnapshot{
			IngredientID: row.ID,
			Name:         row.Name,
			Stock:        row.CurrentStock,
			Version:      row.Version,
		}
	}

	for _, id := range ids {
		if _, ok := snapshots[id]; !ok {
			return nil, &domainRepo.IngredientNotFoundError{IngredientID: id}
		}
	}

	return snapshots, nil
}

// ApplyDecrements commits every decrement inside a single transaction using
// conditional UPDATEs. The version guard detects writers that committed since
// the snapshot; the stock guard keeps the balance from ever going negative at
// the database level. Any guard failure rolls back the whole batch.
func (r *ingredientRepository) ApplyDecrements(ctx context.Context, decrements map[uuid.UUID]domainRepo.StockDecrement) error {
	if len(decrements) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for id, dec := range decrements {
			result := tx.Model(&entity.Ingredient{}).
				Where("id = ? AND version = ? AND current_stock >= ?", id, dec.Version, dec.Quantity).
				Updates(map[string]interface{}{
					"current_stock": gorm.Expr("current_stock - ?", dec.Quantity),
					"version":       gorm.Expr("version + 1"),
				})

			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return r.classifyFailure(tx, id, dec)
			}
		}
		return nil
	})
}

// classifyFailure re-reads the row a conditional UPDATE refused to decide
// which guard rejected it. Runs inside the transaction, so the returned error
// also rolls back any decrements already applied in this batch.
func (r *ingredientRepository) classifyFailure(tx *gorm.DB, id uuid.UUID, dec domainRepo.StockDecrement) error {
	var row entity.Ingredient
	err := tx.Select("id", "name", "current_stock", "version").
		First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &domainRepo.IngredientNotFoundError{IngredientID: id}
	}
	if err != nil {
		return err
	}

	if row.Version != dec.Version {
		return &domainRepo.VersionConflictError{IngredientID: id}
	}
	return &domainRepo.OutOfStockError{
		IngredientID: id,
		Name:         row.Name,
		Needed:       dec.Quantity,
		Available:    row.CurrentStock,
	}
}

// ApplyIncrement adds quantity to one ingredient's stock, bumping its version
// so in-flight snapshot readers re-validate.
func (r *ingredientRepository) ApplyIncrement(ctx context.Context, id uuid.UUID, quantity decimal.Decimal) error {
	result := r.db.WithContext(ctx).Model(&entity.Ingredient{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"current_stock": gorm.Expr("current_stock + ?", quantity),
			"version":       gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return &domainRepo.IngredientNotFoundError{IngredientID: id}
	}
	return nil
}
