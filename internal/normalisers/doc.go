// Package normalisers turns raw catalog input into domain values.
//
//   - product: validates raw catalog records into domain.Product
//   - markdown: renders product descriptions
package normalisers
