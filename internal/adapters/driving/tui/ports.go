// Package tui provides an interactive terminal browser for the product catalog.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/mqmweb/catalog/internal/core/ports/driven"
	"github.com/mqmweb/catalog/internal/core/ports/driving"
)

// Ports aggregates the services the TUI depends on.
type Ports struct {
	// Catalog answers product queries.
	Catalog driving.CatalogService

	// Renderer flattens markdown descriptions. Optional.
	Renderer driven.DescriptionRenderer
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(catalog driving.CatalogService, renderer driven.DescriptionRenderer) *Ports {
	return &Ports{
		Catalog:  catalog,
		Renderer: renderer,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Catalog == nil {
		return ErrMissingCatalogService
	}
	return nil
}
