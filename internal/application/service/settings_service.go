package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/vibeburger/pos-api/internal/domain/entity"
	"github.com/vibeburger/pos-api/internal/domain/repository"
	"github.com/vibeburger/pos-api/pkg/apperror"
)

// SettingsService handles store profile and tax policy operations
type SettingsService struct {
	settingsRepo repository.SettingsRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo repository.SettingsRepository) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo}
}

// GetSettings returns the store settings, falling back to defaults when no
// row has been written yet
func (s *SettingsService) GetSettings(ctx context.Context) (*entity.StoreSettings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return entity.DefaultStoreSettings(), nil
	}
	return settings, nil
}

// UpdateSettingsInput represents the update settings input
type UpdateSettingsInput struct {
	StoreName         *string
	Currency          *string
	EnableTax         *bool
	VatRate           *decimal.Decimal
	ServiceChargeRate *decimal.Decimal
	IsVatInclusive    *bool
}

// UpdateSettings updates the store settings, creating the row on first write.
// A checkout already in flight keeps pricing against the policy it read.
func (s *SettingsService) UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*entity.StoreSettings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	created := false
	if settings == nil {
		settings = entity.DefaultStoreSettings()
		created = true
	}

	if input.StoreName != nil {
		settings.StoreName = *input.StoreName
	}
	if input.Currency != nil {
		settings.Currency = *input.Currency
	}
	if input.EnableTax != nil {
		settings.EnableTax = *input.EnableTax
	}
	if input.VatRate != nil {
		if input.VatRate.IsNegative() || input.VatRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
			return nil, apperror.NewBadRequestError("VAT rate must be in [0, 1)")
		}
		settings.VatRate = *input.VatRate
	}
	if input.ServiceChargeRate != nil {
		if input.ServiceChargeRate.IsNegative() {
			return nil, apperror.NewBadRequestError("Service charge rate cannot be negative")
		}
		settings.ServiceChargeRate = *input.ServiceChargeRate
	}
	if input.IsVatInclusive != nil {
		settings.IsVatInclusive = *input.IsVatInclusive
	}

	if created {
		err = s.settingsRepo.Create(ctx, settings)
	} else {
		err = s.settingsRepo.Update(ctx, settings)
	}
	if err != nil {
		return nil, err
	}

	return settings, nil
}
