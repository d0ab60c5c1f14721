package driven

import (
	"context"

	"github.com/mqmweb/catalog/internal/core/domain"
)

// ProductSource reads the raw catalog document.
// The catalog is read wholesale; there is no partial or incremental read.
type ProductSource interface {
	// Read returns the generic decoding of the catalog document.
	// Read errors should wrap domain.ErrSourceUnavailable.
	Read(ctx context.Context) (*domain.RawCatalog, error)

	// Origin describes where the catalog comes from (a path or a label).
	Origin() string
}

// SourceWatcher notifies when the catalog source changes.
type SourceWatcher interface {
	// Watch blocks, calling onChange after each change, until ctx is done
	// or the watcher is closed.
	Watch(ctx context.Context, onChange func()) error

	// Close stops watching and releases resources.
	Close() error
}
