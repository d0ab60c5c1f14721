// Package source holds the catalog source adapters.
//
//   - jsonfile: reads the catalog from a JSON file and watches it for changes
//   - memory: serves an in-memory catalog, for tests and embedding
package source
