package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cast"

	"github.com/mqmweb/catalog/internal/core/domain"
	"github.com/mqmweb/catalog/internal/core/ports/driven"
	"github.com/mqmweb/catalog/internal/core/ports/driving"
	"github.com/mqmweb/catalog/internal/logger"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyCatalogPath     = "catalog.path"
	keyCatalogWatch    = "catalog.watch"
	keyStrictSlugs     = "catalog.strict_slugs"
	keyReloadSchedule  = "catalog.reload_schedule"
	keySiteName        = "site.name"
	keySiteURL         = "site.url"
	keyPerPage         = "site.products_per_page"
	keyAffiliateSource = "affiliate.source"
	keyAffiliateMedium = "affiliate.medium"
	keyServerAddr      = "server.addr"
	keyRateLimit       = "server.rate_limit"
	keyLogFile         = "log.file"

	categoriesPrefix = "categories"
)

type keyKind int

const (
	kindString keyKind = iota
	kindBool
	kindInt
)

var settableKeys = map[string]keyKind{
	keyCatalogPath:     kindString,
	keyCatalogWatch:    kindBool,
	keyStrictSlugs:     kindBool,
	keyReloadSchedule:  kindString,
	keySiteName:        kindString,
	keySiteURL:         kindString,
	keyPerPage:         kindInt,
	keyAffiliateSource: kindString,
	keyAffiliateMedium: kindString,
	keyServerAddr:      kindString,
	keyRateLimit:       kindInt,
	keyLogFile:         kindString,
}

// SettingsService resolves settings from a ConfigStore.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	d := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Catalog: domain.CatalogSettings{
			Path:           s.getString(keyCatalogPath, d.Catalog.Path),
			Watch:          s.getBool(keyCatalogWatch, d.Catalog.Watch),
			StrictSlugs:    s.getBool(keyStrictSlugs, d.Catalog.StrictSlugs),
			ReloadSchedule: s.getString(keyReloadSchedule, d.Catalog.ReloadSchedule),
		},
		Site: domain.SiteSettings{
			Name:            s.getString(keySiteName, d.Site.Name),
			URL:             s.getString(keySiteURL, d.Site.URL),
			ProductsPerPage: s.getInt(keyPerPage, d.Site.ProductsPerPage),
		},
		Affiliate: domain.AffiliateSettings{
			Source: s.getString(keyAffiliateSource, d.Affiliate.Source),
			Medium: s.getString(keyAffiliateMedium, d.Affiliate.Medium),
		},
		Server: domain.ServerSettings{
			Addr:      s.getString(keyServerAddr, d.Server.Addr),
			RateLimit: s.getInt(keyRateLimit, d.Server.RateLimit),
		},
		Log: domain.LogSettings{
			File: s.getString(keyLogFile, d.Log.File),
		},
	}

	if settings.Site.ProductsPerPage <= 0 {
		return nil, fmt.Errorf("%w: %s must be positive", domain.ErrInvalidInput, keyPerPage)
	}
	if settings.Server.RateLimit < 0 {
		return nil, fmt.Errorf("%w: %s must not be negative", domain.ErrInvalidInput, keyRateLimit)
	}

	registry, err := s.CategoryRegistry()
	if err != nil {
		return nil, err
	}
	settings.Categories = registry.All()

	return settings, nil
}

// CategoryRegistry returns the default categories with configured overrides applied.
// New categories are appended in slug order.
func (s *SettingsService) CategoryRegistry() (*domain.CategoryRegistry, error) {
	registry := domain.DefaultCategoryRegistry()

	raw := s.configStore.GetMap(categoriesPrefix)
	slugs := make([]string, 0, len(raw))
	for slug := range raw {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)

	for _, slug := range slugs {
		var c domain.Category
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           &c,
			WeaklyTypedInput: true,
			ErrorUnused:      true,
		})
		if err != nil {
			return nil, fmt.Errorf("category %s: %w", slug, err)
		}
		if err := decoder.Decode(raw[slug]); err != nil {
			return nil, fmt.Errorf("%w: category %s: %w", domain.ErrInvalidInput, slug, err)
		}
		c.Slug = slug
		if err := registry.Override(c); err != nil {
			return nil, fmt.Errorf("category %s: %w", slug, err)
		}
		logger.Debug("Category override applied: %s", slug)
	}
	return registry, nil
}

// Set validates and stores one setting.
func (s *SettingsService) Set(key, value string) error {
	kind, ok := settableKeys[key]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	var typed any
	var err error
	switch kind {
	case kindBool:
		typed, err = cast.ToBoolE(value)
	case kindInt:
		typed, err = cast.ToIntE(value)
	default:
		typed = value
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrInvalidInput, key, err)
	}
	if key == keyPerPage && typed.(int) <= 0 {
		return fmt.Errorf("%w: %s must be positive", domain.ErrInvalidInput, key)
	}

	if err := s.configStore.Set(key, typed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys lists the settable keys in order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(settableKeys))
	for k := range settableKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (s *SettingsService) getString(key, def string) string {
	if v := strings.TrimSpace(s.configStore.GetString(key)); v != "" {
		return v
	}
	return def
}

func (s *SettingsService) getBool(key string, def bool) bool {
	if _, ok := s.configStore.Get(key); !ok {
		return def
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getInt(key string, def int) int {
	if _, ok := s.configStore.Get(key); !ok {
		return def
	}
	return s.configStore.GetInt(key)
}
