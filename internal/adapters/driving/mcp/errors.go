// Package mcp provides an MCP (Model Context Protocol) server adapter for the catalog.
// It lets AI assistants query products, categories and tracked links.
package mcp

import "errors"

// ErrMissingCatalogService is returned when the catalog service is not provided.
var ErrMissingCatalogService = errors.New("mcp: catalog service is required")
