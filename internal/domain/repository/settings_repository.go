package repository

import (
	"context"

	"github.com/vibeburger/pos-api/internal/domain/entity"
)

// SettingsRepository defines the interface for store settings data access.
// Get returns nil when no row exists yet; callers fall back to defaults.
type SettingsRepository interface {
	Get(ctx context.Context) (*entity.StoreSettings, error)
	Create(ctx context.Context, settings *entity.StoreSettings) error
	Update(ctx context.Context, settings *entity.StoreSettings) error
}
