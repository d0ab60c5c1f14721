package cli

import (
	"github.com/spf13/cobra"

	"github.com/mqmweb/catalog/internal/adapters/driving/httpapi"
)

var sitemapBaseURL string

var sitemapCmd = &cobra.Command{
	Use:   "sitemap",
	Short: "Write the storefront sitemap XML to stdout",
	Args:  cobra.NoArgs,
	RunE:  runSitemap,
}

func init() {
	sitemapCmd.Flags().StringVar(&sitemapBaseURL, "base-url", "", "site URL (default site.url)")
	rootCmd.AddCommand(sitemapCmd)
}

func runSitemap(cmd *cobra.Command, _ []string) error {
	if err := requireCatalog(); err != nil {
		return err
	}

	base := sitemapBaseURL
	if base == "" {
		base = settings().Site.URL
	}
	return httpapi.WriteSitemap(cmd.OutOrStdout(), catalogService.Sitemap(cmd.Context(), base))
}
