package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mqmweb/catalog/internal/adapters/driving/httpapi"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the catalog over HTTP",
	Long: `Start the JSON HTTP API over the catalog.

The catalog file is watched for changes when catalog.watch is set, and
reloaded periodically when catalog.reload_schedule holds a cron expression
(for example "@every 10m" or "0 */6 * * *").

Endpoints:
  GET  /api/products            filtered listing (category, q, featured, include_blog,
                                sort, limit, offset, page, per_page)
  GET  /api/products/:slug      one product
  GET  /api/products/:slug/related
  GET  /api/products/:slug/link tracked affiliate link (?redirect=1 to follow)
  GET  /api/featured
  GET  /api/search?q=
  GET  /api/categories
  GET  /api/catalog             last load report
  POST /api/catalog/invalidate
  GET  /sitemap.xml
  GET  /healthz`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "listen address (default from config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if err := requireCatalog(); err != nil {
		return err
	}

	s := settings()
	addr := serveAddr
	if addr == "" {
		addr = s.Server.Addr
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stopBackground, err := startBackground(ctx, s.Catalog.ReloadSchedule)
	if err != nil {
		return err
	}
	defer stopBackground()

	server := httpapi.New(catalogService, httpapi.Options{
		SiteURL:   s.Site.URL,
		PerPage:   s.Site.ProductsPerPage,
		RateLimit: s.Server.RateLimit,
		Renderer:  descRenderer,
	})
	cmd.Printf("Serving %s on %s\n", s.Site.Name, addr)
	return server.Run(ctx, addr)
}
