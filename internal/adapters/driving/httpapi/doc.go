// Package httpapi serves the catalog as a JSON API over HTTP.
//
// Routes are thin shells over driving.CatalogService. Responses carry an
// ETag derived from the loaded catalog's checksum, and each client IP is
// rate limited.
package httpapi
