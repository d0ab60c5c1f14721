package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mqmweb/catalog/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can query the catalog.

By default the server communicates over stdio using JSON-RPC. Use --port to
serve streamable HTTP instead, for the MCP Inspector or remote access.

Tools: query_products, search_products, get_product, related_products,
list_categories, affiliate_link.
Resources: mqm://categories, mqm://products/{slug}.

Examples:
  # Stdio mode (default)
  mqm mcp serve

  # HTTP mode
  mqm mcp serve --port 8081

Assistant configuration:
  {
    "mcpServers": {
      "mqm": {
        "command": "/path/to/mqm",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Catalog:  catalogService,
		Renderer: descRenderer,
	})
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s%s\n", addr, mcp.EndpointPath)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
