package domain

import (
	"fmt"
	"strings"
)

// SortOrder selects how query results are ordered.
type SortOrder string

// Available sort orders.
const (
	// SortNewest orders by creation time, most recent first. It is the default.
	SortNewest SortOrder = "newest"

	// SortOldest orders by creation time, oldest first.
	SortOldest SortOrder = "oldest"

	// SortTitle orders alphabetically by title, case-insensitively.
	SortTitle SortOrder = "title"
)

// IsValid returns true if the sort order is recognised. The empty order is valid.
func (s SortOrder) IsValid() bool {
	switch s {
	case "", SortNewest, SortOldest, SortTitle:
		return true
	default:
		return false
	}
}

// OrDefault returns SortNewest for the empty order.
func (s SortOrder) OrDefault() SortOrder {
	if s == "" {
		return SortNewest
	}
	return s
}

// String returns the string representation.
func (s SortOrder) String() string {
	return string(s.OrDefault())
}

// ParseSortOrder parses a user-supplied sort order.
func ParseSortOrder(s string) (SortOrder, error) {
	o := SortOrder(strings.ToLower(strings.TrimSpace(s)))
	if !o.IsValid() {
		return "", fmt.Errorf("%w: unknown sort order %q (want newest, oldest or title)", ErrInvalidInput, s)
	}
	return o.OrDefault(), nil
}

// QuerySpec describes a catalog query. The zero value lists every
// non-blog product, newest first.
type QuerySpec struct {
	// Categories keeps products carrying any of these category labels.
	Categories []string

	// Search keeps products whose title, short description, description
	// or tags contain the term, case-insensitively. Blank means no filter.
	Search string

	// Featured, when set, keeps products whose featured flag equals it.
	Featured *bool

	// IncludeBlog keeps blog entries, which are excluded by default.
	IncludeBlog bool

	// SortBy orders the results. Empty means SortNewest.
	SortBy SortOrder

	// Limit caps the number of results. Zero means no limit.
	Limit int

	// Offset skips that many results after sorting.
	Offset int
}

// Validate checks the spec for values no query can satisfy.
func (q QuerySpec) Validate() error {
	if !q.SortBy.IsValid() {
		return fmt.Errorf("%w: unknown sort order %q", ErrInvalidInput, q.SortBy)
	}
	if q.Limit < 0 {
		return fmt.Errorf("%w: limit must not be negative", ErrInvalidInput)
	}
	if q.Offset < 0 {
		return fmt.Errorf("%w: offset must not be negative", ErrInvalidInput)
	}
	return nil
}

// Bool returns a pointer to b, for QuerySpec.Featured.
func Bool(b bool) *bool {
	return &b
}
