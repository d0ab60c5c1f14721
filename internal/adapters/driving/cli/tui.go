package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/mqmweb/catalog/internal/adapters/driving/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse the catalog in the terminal",
	Long: `Launch the interactive catalog browser.

Controls:
  Enter    - Search / show tracked link
  ↑/k, ↓/j - Navigate products
  d        - Product details
  f        - Cycle featured filter
  s        - Cycle sort order
  r        - Reload catalog
  /        - New search
  ?        - Toggle help
  q        - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	app, err := tui.NewApp(tui.NewPorts(catalogService, descRenderer))
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	stopBackground, err := startBackground(cmd.Context(), "")
	if err != nil {
		return err
	}
	defer stopBackground()

	if err := app.WithContext(cmd.Context()).Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
