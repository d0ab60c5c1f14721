package mcp

import (
	"github.com/mqmweb/catalog/internal/core/ports/driven"
	"github.com/mqmweb/catalog/internal/core/ports/driving"
)

// Ports aggregates the interfaces required by the MCP server.
type Ports struct {
	// Catalog answers product queries.
	Catalog driving.CatalogService

	// Renderer turns descriptions into plain text for resources. Optional.
	Renderer driven.DescriptionRenderer
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Catalog == nil {
		return ErrMissingCatalogService
	}
	return nil
}
