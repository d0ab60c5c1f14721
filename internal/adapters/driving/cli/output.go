package cli

import (
	"fmt"
	"strings"

	"github.com/gocarina/gocsv"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/mqmweb/catalog/internal/core/domain"
	"github.com/mqmweb/catalog/internal/core/services"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func printCSV(cmd *cobra.Command, products []domain.Product) error {
	if err := gocsv.Marshal(products, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

func printProducts(cmd *cobra.Command, products []domain.Product) {
	if len(products) == 0 {
		cmd.Println("No products found.")
		return
	}
	for i := range products {
		printProductLine(cmd, &products[i])
	}
}

func printProductLine(cmd *cobra.Command, p *domain.Product) {
	badge := ""
	if p.IsFeatured {
		badge = " *"
	}
	cmd.Printf("  %-32s %12s  %s%s\n", p.Slug, services.FormatPrice(p.Price, p.Currency), p.Title, badge)
	if len(p.Categories) > 0 {
		cmd.Printf("  %-32s %12s  [%s]\n", "", "", strings.Join(p.Categories, ", "))
	}
}
