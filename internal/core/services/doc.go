// Package services implements the driving port interfaces.
// Services contain the catalog logic and orchestrate
// calls to driven ports (adapters).
//
// All query work happens in memory over an immutable snapshot
// held by CatalogStore.
package services
