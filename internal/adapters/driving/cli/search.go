package cli

import (
	"github.com/spf13/cobra"

	"github.com/mqmweb/catalog/internal/core/services"
)

var (
	searchLimit int
	searchJSON  bool

	featuredJSON bool
)

var searchCmd = &cobra.Command{
	Use:   "search [term]",
	Short: "Search products by text",
	Long: `Case-insensitive search over titles, descriptions and tags.
Results are newest first; blog entries are not searched.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

var featuredCmd = &cobra.Command{
	Use:   "featured",
	Short: "List featured products",
	Args:  cobra.NoArgs,
	RunE:  runFeatured,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", services.DefaultSearchLimit, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	featuredCmd.Flags().BoolVar(&featuredJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(searchCmd, featuredCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if err := requireCatalog(); err != nil {
		return err
	}

	results := catalogService.SearchProducts(cmd.Context(), args[0], searchLimit)
	if searchJSON {
		return printJSON(cmd, results)
	}
	printProducts(cmd, results)
	return nil
}

func runFeatured(cmd *cobra.Command, _ []string) error {
	if err := requireCatalog(); err != nil {
		return err
	}

	products := catalogService.FeaturedProducts(cmd.Context())
	if featuredJSON {
		return printJSON(cmd, products)
	}
	printProducts(cmd, products)
	return nil
}
