// Package memory provides an in-memory catalog source.
package memory

import (
	"context"
	"strconv"
	"sync"

	"github.com/mqmweb/catalog/internal/core/domain"
	"github.com/mqmweb/catalog/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.ProductSource = (*Source)(nil)

// Source serves a catalog document held in memory.
// Each Set bumps the version, which is reported as the checksum.
type Source struct {
	mu      sync.RWMutex
	data    any
	version uint64
	err     error
	reads   int
}

// New creates a source holding data (normally a []any of records).
func New(data any) *Source {
	return &Source{data: data, version: 1}
}

// Set replaces the catalog document.
func (s *Source) Set(data any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data
	s.version++
}

// SetError makes subsequent reads fail with err. A nil err clears it.
func (s *Source) SetError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// Reads returns how many times the source has been read.
func (s *Source) Reads() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reads
}

// Origin returns a fixed label.
func (s *Source) Origin() string {
	return "memory"
}

// Read returns the held document.
func (s *Source) Read(ctx context.Context) (*domain.RawCatalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads++
	if s.err != nil {
		return nil, s.err
	}
	return &domain.RawCatalog{
		Data:     s.data,
		Origin:   "memory",
		Checksum: "v" + strconv.FormatUint(s.version, 10),
	}, nil
}
