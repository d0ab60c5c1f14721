package domain

import "time"

// Default settings values.
const (
	DefaultCatalogPath     = "data/products.json"
	DefaultSiteName        = "MQM Web"
	DefaultSiteURL         = "https://www.mierdasquemolan.com"
	DefaultAffiliateSource = "mqm-web"
	DefaultAffiliateMedium = "affiliate"
	DefaultServerAddr      = ":8080"
	DefaultRateLimit       = 20
	DefaultWatchDebounce   = 250 * time.Millisecond

	// AffiliateDisclaimer is shown wherever tracked links are listed.
	AffiliateDisclaimer = "Este sitio contiene enlaces de afiliación. Podemos recibir una comisión " +
		"por las compras realizadas a través de estos enlaces, sin coste adicional para ti."
)

// AppSettings holds the resolved application configuration.
type AppSettings struct {
	Catalog    CatalogSettings
	Site       SiteSettings
	Affiliate  AffiliateSettings
	Server     ServerSettings
	Log        LogSettings
	Categories []Category
}

// CatalogSettings configures where the catalog comes from and how it is loaded.
type CatalogSettings struct {
	// Path is the JSON catalog file.
	Path string

	// Watch reloads the catalog when the file changes.
	Watch bool

	// StrictSlugs fails the load on duplicate slugs instead of warning.
	StrictSlugs bool

	// ReloadSchedule is a cron expression for periodic reloads in serve mode.
	ReloadSchedule string
}

// SiteSettings describes the storefront.
type SiteSettings struct {
	Name            string
	URL             string
	ProductsPerPage int
}

// AffiliateSettings holds the default tracking parameters.
type AffiliateSettings struct {
	Source string
	Medium string
}

// ServerSettings configures the HTTP API.
type ServerSettings struct {
	Addr string

	// RateLimit is requests per second per client. Zero disables limiting.
	RateLimit int
}

// LogSettings configures the process logger.
type LogSettings struct {
	// File enables a rotating JSON log file when non-empty.
	File string
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Catalog: CatalogSettings{
			Path: DefaultCatalogPath,
		},
		Site: SiteSettings{
			Name:            DefaultSiteName,
			URL:             DefaultSiteURL,
			ProductsPerPage: DefaultPerPage,
		},
		Affiliate: AffiliateSettings{
			Source: DefaultAffiliateSource,
			Medium: DefaultAffiliateMedium,
		},
		Server: ServerSettings{
			Addr:      DefaultServerAddr,
			RateLimit: DefaultRateLimit,
		},
		Categories: DefaultCategories(),
	}
}
