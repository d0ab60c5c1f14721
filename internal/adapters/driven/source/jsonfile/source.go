// Package jsonfile reads the product catalog from a JSON file.
package jsonfile

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/cespare/xxhash/v2"
	jsoniter "github.com/json-iterator/go"

	"github.com/mqmweb/catalog/internal/core/domain"
	"github.com/mqmweb/catalog/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.ProductSource = (*Source)(nil)

// UseNumber keeps numeric ids in their source spelling.
var decoder = jsoniter.Config{
	UseNumber:              true,
	EscapeHTML:             false,
	ValidateJsonRawMessage: true,
}.Froze()

// Source reads a catalog file on every Read.
type Source struct {
	path string
}

// New creates a source for the JSON file at path.
func New(path string) *Source {
	return &Source{path: path}
}

// Origin returns the file path.
func (s *Source) Origin() string {
	return s.path
}

// Path returns the file path.
func (s *Source) Path() string {
	return s.path
}

// Read reads and decodes the file.
func (s *Source) Read(ctx context.Context) (*domain.RawCatalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSourceUnavailable, err)
	}
	return Decode(data, s.path)
}

// Decode parses catalog bytes. origin labels the result.
func Decode(data []byte, origin string) (*domain.RawCatalog, error) {
	var doc any
	if err := decoder.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", domain.ErrSourceUnavailable, origin, err)
	}
	return &domain.RawCatalog{
		Data:     doc,
		Origin:   origin,
		Checksum: Checksum(data),
	}, nil
}

// Checksum fingerprints catalog bytes for change detection and ETags.
func Checksum(data []byte) string {
	return strconv.FormatUint(xxhash.Sum64(data), 16)
}
