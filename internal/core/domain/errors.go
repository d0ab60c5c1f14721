package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrValidation indicates the raw catalog failed schema validation.
	// The whole batch is rejected.
	ErrValidation = errors.New("catalog validation failed")

	// ErrDuplicateSlug indicates two products normalise to the same slug.
	ErrDuplicateSlug = errors.New("duplicate slug")

	// ErrSourceUnavailable indicates the catalog source could not be read.
	ErrSourceUnavailable = errors.New("catalog source unavailable")

	// ErrDuplicateCategory indicates a category slug was registered twice.
	ErrDuplicateCategory = errors.New("duplicate category")
)

// ValidationError describes why a raw catalog was rejected.
// Index is -1 when the failure concerns the whole document.
type ValidationError struct {
	Index  int
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	switch {
	case e.Index < 0:
		return fmt.Sprintf("%s: %s", ErrValidation, e.Reason)
	case e.Field == "":
		return fmt.Sprintf("%s: product at index %d: %s", ErrValidation, e.Index, e.Reason)
	default:
		return fmt.Sprintf("%s: product at index %d: field %q: %s", ErrValidation, e.Index, e.Field, e.Reason)
	}
}

// Unwrap lets errors.Is match ErrValidation.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
