package driving

import "github.com/mqmweb/catalog/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get resolves the current settings over the defaults.
	Get() (*domain.AppSettings, error)

	// Set validates and stores one setting by key.
	Set(key, value string) error

	// Keys lists the settable keys.
	Keys() []string

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// CategoryRegistry builds the registry from the default table and configured overrides.
	CategoryRegistry() (*domain.CategoryRegistry, error)
}
