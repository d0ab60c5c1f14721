package main

import (
	"fmt"

	"github.com/mqmweb/catalog/internal/adapters/driven/config/file"
	"github.com/mqmweb/catalog/internal/adapters/driven/source/jsonfile"
	"github.com/mqmweb/catalog/internal/adapters/driving/cli"
	"github.com/mqmweb/catalog/internal/core/domain"
	"github.com/mqmweb/catalog/internal/core/ports/driven"
	"github.com/mqmweb/catalog/internal/core/services"
	"github.com/mqmweb/catalog/internal/logger"
	"github.com/mqmweb/catalog/internal/normalisers/markdown"
	"github.com/mqmweb/catalog/internal/normalisers/product"
)

// bootstrap wires the services from the config file and global flags.
func bootstrap(opts cli.Options) (cli.Runtime, error) {
	var (
		store *file.ConfigStore
		err   error
	)
	if opts.ConfigPath != "" {
		store, err = file.OpenConfigFile(opts.ConfigPath)
	} else {
		store, err = file.NewConfigStore("")
	}
	if err != nil {
		return cli.Runtime{}, fmt.Errorf("open config: %w", err)
	}
	logger.Debug("Config file: %s", store.Path())

	settingsService := services.NewSettingsService(store)
	app, err := settingsService.Get()
	if err != nil {
		return cli.Runtime{}, fmt.Errorf("load settings: %w", err)
	}
	if opts.CatalogPath != "" {
		app.Catalog.Path = opts.CatalogPath
	}
	logger.EnableFile(logger.FileOptions{Path: app.Log.File})

	registry, err := settingsService.CategoryRegistry()
	if err != nil {
		return cli.Runtime{}, fmt.Errorf("load categories: %w", err)
	}

	validator := product.New(
		product.WithRegistry(registry),
		product.WithStrictSlugs(app.Catalog.StrictSlugs),
	)
	catalogStore := services.NewCatalogStore(jsonfile.New(app.Catalog.Path), validator)
	catalog := services.NewCatalogService(catalogStore, registry,
		services.WithAffiliateDefaults(app.Affiliate),
		services.WithPerPage(app.Site.ProductsPerPage),
	)

	var watcher driven.SourceWatcher
	if app.Catalog.Watch {
		watcher = jsonfile.NewWatcher(app.Catalog.Path, domain.DefaultWatchDebounce)
	}

	return cli.Runtime{
		Catalog:   catalog,
		Settings:  settingsService,
		App:       app,
		Renderer:  markdown.New(),
		Validator: validator,
		Watcher:   watcher,
		OpenSource: func(path string) driven.ProductSource {
			return jsonfile.New(path)
		},
	}, nil
}
