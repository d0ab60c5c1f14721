package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var errSettingsNotConfigured = errors.New("settings service not configured")

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and change configuration",
	RunE:  runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the resolved configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Long: `Set one configuration value and save the config file.

Run 'mqm config keys' for the list of settable keys. Category tables
(categories.<slug>.*) are edited in the config file directly.`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List settable configuration keys",
	Args:  cobra.NoArgs,
	RunE:  runConfigKeys,
}

func init() {
	configCmd.AddCommand(configShowCmd, configSetCmd, configKeysCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}

	s, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("[catalog]")
	cmd.Printf("  path:            %s\n", s.Catalog.Path)
	cmd.Printf("  watch:           %t\n", s.Catalog.Watch)
	cmd.Printf("  strict_slugs:    %t\n", s.Catalog.StrictSlugs)
	cmd.Printf("  reload_schedule: %s\n", orNone(s.Catalog.ReloadSchedule))
	cmd.Println()
	cmd.Println("[site]")
	cmd.Printf("  name:              %s\n", s.Site.Name)
	cmd.Printf("  url:               %s\n", s.Site.URL)
	cmd.Printf("  products_per_page: %d\n", s.Site.ProductsPerPage)
	cmd.Println()
	cmd.Println("[affiliate]")
	cmd.Printf("  source: %s\n", s.Affiliate.Source)
	cmd.Printf("  medium: %s\n", s.Affiliate.Medium)
	cmd.Println()
	cmd.Println("[server]")
	cmd.Printf("  addr:       %s\n", s.Server.Addr)
	cmd.Printf("  rate_limit: %d\n", s.Server.RateLimit)
	cmd.Println()
	cmd.Println("[log]")
	cmd.Printf("  file: %s\n", orNone(s.Log.File))
	cmd.Println()
	cmd.Println("[categories]")
	for _, c := range s.Categories {
		line := fmt.Sprintf("  %-16s %s", c.Slug, c.Name)
		if len(c.Aliases) > 0 {
			line += " (" + strings.Join(c.Aliases, ", ") + ")"
		}
		cmd.Println(line)
	}
	return nil
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}
	if err := settingsService.Set(args[0], args[1]); err != nil {
		return err
	}
	cmd.Printf("%s = %s\n", args[0], args[1])
	return nil
}

func runConfigKeys(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}
	for _, k := range settingsService.Keys() {
		cmd.Println(k)
	}
	return nil
}
