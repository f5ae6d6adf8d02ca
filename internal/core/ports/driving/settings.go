package driving

import "github.com/custodia-labs/orderbot/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetCatalogSource selects where the catalog is read from.
	SetCatalogSource(source domain.CatalogSourceType) error

	// SetStrict toggles the strict order policy.
	SetStrict(strict bool) error

	// Validate checks that the configured catalog source is usable.
	Validate(settings *domain.AppSettings) error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// GetSchedulerConfig returns the warm-up schedule.
	GetSchedulerConfig() domain.SchedulerConfig
}
