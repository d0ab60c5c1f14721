package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mqmweb/catalog/internal/core/domain"
	"github.com/mqmweb/catalog/internal/core/services"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect and reload the catalog",
}

var catalogStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Load the catalog and report the result",
	Args:  cobra.NoArgs,
	RunE:  runCatalogStatus,
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a catalog file without using it",
	Long: `Validate a catalog JSON file against the product schema and report
warnings. Defaults to the configured catalog file. Exits non-zero when any
record is invalid.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCatalogValidate,
}

var catalogReloadCmd = &cobra.Command{
	Use:   "reload",
	Short: "Drop the cached catalog and load it again",
	Args:  cobra.NoArgs,
	RunE:  runCatalogReload,
}

func init() {
	catalogCmd.AddCommand(catalogStatusCmd, catalogValidateCmd, catalogReloadCmd)
	rootCmd.AddCommand(catalogCmd)
}

func printReport(cmd *cobra.Command, report domain.LoadReport) {
	cmd.Printf("  Origin:    %s\n", report.Origin)
	if report.LoadID != "" {
		cmd.Printf("  Load ID:   %s\n", report.LoadID)
	}
	if report.Checksum != "" {
		cmd.Printf("  Checksum:  %s\n", report.Checksum)
	}
	if report.Loaded() {
		cmd.Printf("  Loaded at: %s\n", report.LoadedAt.Format("2006-01-02 15:04:05"))
	}
	cmd.Printf("  Products:  %d\n", report.ProductCount)
	if report.Err != nil {
		cmd.Printf("  Error:     %v\n", report.Err)
	}
	if len(report.Warnings) > 0 {
		cmd.Printf("  Warnings:  %d\n", len(report.Warnings))
		for _, w := range report.Warnings {
			id := w.ProductID
			if id == "" {
				id = fmt.Sprintf("#%d", w.Index)
			}
			cmd.Printf("    - %s %s: %s\n", id, w.Field, w.Message)
		}
	}
}

func runCatalogStatus(cmd *cobra.Command, _ []string) error {
	if err := requireCatalog(); err != nil {
		return err
	}

	// Reading forces the first load.
	catalogService.AllProducts(cmd.Context())
	report := catalogService.Status()

	cmd.Println("Catalog")
	printReport(cmd, report)
	return report.Err
}

func runCatalogValidate(cmd *cobra.Command, args []string) error {
	if openSource == nil || productValidator == nil {
		return errors.New("catalog validation not configured")
	}

	path := settings().Catalog.Path
	if len(args) == 1 {
		path = args[0]
	}

	store := services.NewCatalogStore(openSource(path), productValidator)
	report, err := store.Load(cmd.Context())

	printReport(cmd, report)
	if err != nil {
		return fmt.Errorf("catalog %s is invalid: %w", path, err)
	}
	cmd.Printf("Catalog %s is valid.\n", path)
	return nil
}

func runCatalogReload(cmd *cobra.Command, _ []string) error {
	if err := requireCatalog(); err != nil {
		return err
	}

	report, err := catalogService.Reload(cmd.Context())
	if err != nil {
		return fmt.Errorf("reload failed: %w", err)
	}
	cmd.Printf("Reloaded %d products from %s.\n", report.ProductCount, report.Origin)
	return nil
}
