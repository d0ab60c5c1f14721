// Package messages defines Bubbletea message types for the TUI.
package messages

import (
	"github.com/mqmweb/catalog/internal/core/domain"
)

// ProductsLoaded carries query results back to the model.
type ProductsLoaded struct {
	Products []domain.Product
	Err      error
}

// ProductSelected is sent when a product is opened in the detail view.
type ProductSelected struct {
	Product domain.Product
}

// CatalogReloaded reports a forced catalog reload.
type CatalogReloaded struct {
	Report domain.LoadReport
	Err    error
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewBrowse is the search input and product list.
	ViewBrowse ViewType = iota
	// ViewDetail shows one product with its related products.
	ViewDetail
	// ViewHelp is the keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewBrowse:
		return "browse"
	case ViewDetail:
		return "detail"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
