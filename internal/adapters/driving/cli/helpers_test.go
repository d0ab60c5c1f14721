package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/mqmweb/catalog/internal/adapters/driven/config/file"
	"github.com/mqmweb/catalog/internal/adapters/driven/source/jsonfile"
	"github.com/mqmweb/catalog/internal/adapters/driven/source/memory"
	"github.com/mqmweb/catalog/internal/core/domain"
	"github.com/mqmweb/catalog/internal/core/ports/driven"
	"github.com/mqmweb/catalog/internal/core/services"
	"github.com/mqmweb/catalog/internal/normalisers/markdown"
	"github.com/mqmweb/catalog/internal/normalisers/product"
)

func testCatalog() []any {
	return []any{
		map[string]any{
			"id": "1", "title": "Taza Friki", "description": "Una **taza** enorme",
			"price": 12.99, "originalPrice": 19.99, "image": "/img/1.jpg",
			"affiliateUrl": "https://www.amazon.es/dp/1", "categories": []any{"tazas"},
			"tags": []any{"cafe"}, "isFeatured": true, "createdAt": "2024-01-04T00:00:00Z",
		},
		map[string]any{
			"id": "2", "title": "Taza Gato", "description": "Otra taza",
			"price": 9.5, "image": "/img/2.jpg", "affiliateUrl": "https://www.amazon.es/dp/2",
			"categories": []any{"tazas"}, "tags": []any{"cafe"}, "createdAt": "2024-01-03T00:00:00Z",
		},
		map[string]any{
			"id": "3", "title": "Calcetines Pizza", "description": "Calcetines",
			"price": 5, "image": "/img/3.jpg", "affiliateUrl": "https://www.amazon.es/dp/3",
			"categories": []any{"ropa"}, "createdAt": "2024-01-02T00:00:00Z",
		},
		map[string]any{
			"id": "4", "title": "Guía de regalos", "description": "Artículo",
			"price": 1, "image": "/img/4.jpg", "affiliateUrl": "https://blog.example.com/4",
			"categories": []any{"blog"}, "createdAt": "2024-01-01T00:00:00Z",
		},
	}
}

// setupTestServices wires real services over an in-memory catalog and a
// temporary config file. Everything is reset when the test ends.
func setupTestServices(t *testing.T) *memory.Source {
	t.Helper()

	store, err := file.NewConfigStore(t.TempDir())
	require.NoError(t, err)
	settingsSvc := services.NewSettingsService(store)

	src := memory.New(testCatalog())
	validator := product.New()
	catalog := services.NewCatalogService(
		services.NewCatalogStore(src, validator), nil,
		services.WithAffiliateDefaults(domain.AffiliateSettings{Source: "mqm-web", Medium: "affiliate"}),
	)
	app := domain.DefaultAppSettings()
	app.Site.ProductsPerPage = 2

	SetServices(Runtime{
		Catalog:   catalog,
		Settings:  settingsSvc,
		App:       &app,
		Renderer:  markdown.New(),
		Validator: validator,
		OpenSource: func(path string) driven.ProductSource {
			return jsonfile.New(path)
		},
	})
	t.Cleanup(func() { SetServices(Runtime{}) })
	return src
}

// execute runs the root command with args and returns everything it printed.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		resetFlags(rootCmd)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}

// resetFlags restores every flag to its default, since flag values live in
// package variables that outlive a single Execute.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
