package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/vibeburger/pos-api/internal/domain/entity"
	infraRepo "github.com/vibeburger/pos-api/internal/infrastructure/repository"
)

func TestGetSettingsFallsBackToDefaults(t *testing.T) {
	svc := NewSettingsService(infraRepo.NewMemorySettingsRepository(nil))

	settings, err := svc.GetSettings(context.Background())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defaults := entity.DefaultStoreSettings()
	if settings.StoreName != defaults.StoreName {
		t.Errorf("store name = %q, want %q", settings.StoreName, defaults.StoreName)
	}
	if !settings.VatRate.Equal(defaults.VatRate) {
		t.Errorf("vat rate = %s, want %s", settings.VatRate, defaults.VatRate)
	}
}

func TestUpdateSettingsCreatesOnFirstWrite(t *testing.T) {
	repo := infraRepo.NewMemorySettingsRepository(nil)
	svc := NewSettingsService(repo)

	name := "Vibe Burger Annex"
	rate := decimal.NewFromFloat(0.08)
	updated, err := svc.UpdateSettings(context.Background(), &UpdateSettingsInput{
		StoreName: &name,
		VatRate:   &rate,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.StoreName != name {
		t.Errorf("store name = %q, want %q", updated.StoreName, name)
	}
	if !updated.VatRate.Equal(rate) {
		t.Errorf("vat rate = %s, want %s", updated.VatRate, rate)
	}

	stored, err := repo.Get(context.Background())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored == nil {
		t.Fatal("expected settings row to be created")
	}
	// untouched fields keep their defaults
	if stored.Currency != entity.DefaultStoreSettings().Currency {
		t.Errorf("currency = %q, want default", stored.Currency)
	}
}

func TestUpdateSettingsRejectsBadRates(t *testing.T) {
	svc := NewSettingsService(infraRepo.NewMemorySettingsRepository(entity.DefaultStoreSettings()))

	negative := decimal.NewFromFloat(-0.01)
	if _, err := svc.UpdateSettings(context.Background(), &UpdateSettingsInput{VatRate: &negative}); err == nil {
		t.Error("expected error for negative VAT rate")
	}
	full := decimal.NewFromInt(1)
	if _, err := svc.UpdateSettings(context.Background(), &UpdateSettingsInput{VatRate: &full}); err == nil {
		t.Error("expected error for VAT rate of 1")
	}
	if _, err := svc.UpdateSettings(context.Background(), &UpdateSettingsInput{ServiceChargeRate: &negative}); err == nil {
		t.Error("expected error for negative service charge rate")
	}
}

func TestUpdateSettingsPatchesOnlyProvidedFields(t *testing.T) {
	repo := infraRepo.NewMemorySettingsRepository(entity.DefaultStoreSettings())
	svc := NewSettingsService(repo)

	disabled := false
	updated, err := svc.UpdateSettings(context.Background(), &UpdateSettingsInput{EnableTax: &disabled})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.EnableTax {
		t.Error("expected tax to be disabled")
	}
	defaults := entity.DefaultStoreSettings()
	if updated.StoreName != defaults.StoreName {
		t.Errorf("store name changed unexpectedly: %q", updated.StoreName)
	}
	if !updated.ServiceChargeRate.Equal(defaults.ServiceChargeRate) {
		t.Errorf("service charge changed unexpectedly: %s", updated.ServiceChargeRate)
	}
}
