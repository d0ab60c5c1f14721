// Package cli provides the mqm command line interface.
package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/mqmweb/catalog/internal/core/domain"
	"github.com/mqmweb/catalog/internal/core/ports/driven"
	"github.com/mqmweb/catalog/internal/core/ports/driving"
	"github.com/mqmweb/catalog/internal/logger"
)

// annotationSkipBootstrap marks commands that run without services.
const annotationSkipBootstrap = "skip-bootstrap"

var (
	version = "dev"

	configPath  string
	catalogPath string
	verbose     bool
)

// Services used by the commands. They are set by SetServices, either from
// main through the bootstrapper or directly by tests.
var (
	catalogService   driving.CatalogService
	settingsService  driving.SettingsService
	appSettings      *domain.AppSettings
	descRenderer     driven.DescriptionRenderer
	productValidator driven.ProductValidator
	catalogWatcher   driven.SourceWatcher
	openSource       func(path string) driven.ProductSource
)

var errNotConfigured = errors.New("catalog service not configured")

// Runtime bundles the services a command needs.
type Runtime struct {
	Catalog   driving.CatalogService
	Settings  driving.SettingsService
	App       *domain.AppSettings
	Renderer  driven.DescriptionRenderer
	Validator driven.ProductValidator
	// Watcher, when set, invalidates the catalog on file changes during serve and tui.
	Watcher driven.SourceWatcher
	// OpenSource opens a catalog file for validation without loading it.
	OpenSource func(path string) driven.ProductSource
}

// SetServices installs the services used by the commands.
func SetServices(rt Runtime) {
	catalogService = rt.Catalog
	settingsService = rt.Settings
	appSettings = rt.App
	descRenderer = rt.Renderer
	productValidator = rt.Validator
	catalogWatcher = rt.Watcher
	openSource = rt.OpenSource
}

// Options are the global flag values handed to the bootstrapper.
type Options struct {
	// ConfigPath is the config file; empty means the default location.
	ConfigPath string
	// CatalogPath overrides catalog.path when non-empty.
	CatalogPath string
	Verbose     bool
}

// Bootstrapper builds the runtime once flags are parsed.
type Bootstrapper func(opts Options) (Runtime, error)

var bootstrap Bootstrapper

// SetBootstrap registers the function that wires services before a command runs.
func SetBootstrap(b Bootstrapper) {
	bootstrap = b
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "mqm",
	Short: "Query and serve the MQM affiliate product catalog",
	Long: `mqm loads the storefront's product catalog and answers queries over it:
filtered listings, free-text search, related products, category counts and
tracked affiliate links. The same catalog can be served over HTTP, exposed to
AI assistants through MCP, or browsed in the terminal.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		if cmd.Annotations[annotationSkipBootstrap] == "true" || catalogService != nil || bootstrap == nil {
			return nil
		}
		rt, err := bootstrap(Options{
			ConfigPath:  configPath,
			CatalogPath: catalogPath,
			Verbose:     verbose,
		})
		if err != nil {
			return err
		}
		SetServices(rt)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.mqm/config.toml)")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "catalog JSON file (overrides catalog.path)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func requireCatalog() error {
	if catalogService == nil {
		return errNotConfigured
	}
	return nil
}

// settings returns the resolved settings, falling back to the defaults.
func settings() domain.AppSettings {
	if appSettings != nil {
		return *appSettings
	}
	return domain.DefaultAppSettings()
}
