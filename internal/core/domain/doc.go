// Package domain defines the core catalog entities.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Product: A validated catalog entry with an affiliate link
//   - Category: A storefront grouping, held in a CategoryRegistry
//   - QuerySpec: Filter, sort and pagination criteria
//   - Page: A paginated slice of products with its page window
//   - LoadReport: The outcome of loading one catalog snapshot
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
