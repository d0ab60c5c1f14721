package cli

import (
	"github.com/spf13/cobra"
)

var categoriesJSON bool

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List categories with products",
	Long:  `List registered categories that have at least one product, in registry order.`,
	Args:  cobra.NoArgs,
	RunE:  runCategories,
}

func init() {
	categoriesCmd.Flags().BoolVar(&categoriesJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(categoriesCmd)
}

func runCategories(cmd *cobra.Command, _ []string) error {
	if err := requireCatalog(); err != nil {
		return err
	}

	counts := catalogService.AvailableCategories(cmd.Context())
	if categoriesJSON {
		return printJSON(cmd, counts)
	}
	if len(counts) == 0 {
		cmd.Println("No categories with products.")
		return nil
	}
	for _, c := range counts {
		cmd.Printf("  %-20s %-24s %4d\n", c.Slug, c.Name, c.Count)
	}
	return nil
}
