package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrValidation", ErrValidation},
		{"ErrDuplicateSlug", ErrDuplicateSlug},
		{"ErrSourceUnavailable", ErrSourceUnavailable},
		{"ErrDuplicateCategory", ErrDuplicateCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestErrNotFound_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("product %q: %w", "taza", ErrNotFound)

	assert.True(t, errors.Is(wrapped, ErrNotFound))
	assert.False(t, errors.Is(wrapped, ErrInvalidInput))
}

func TestValidationError(t *testing.T) {
	tests := []struct {
		name string
		err  *ValidationError
		want string
	}{
		{
			name: "document level",
			err:  &ValidationError{Index: -1, Reason: "products data must be an array"},
			want: "catalog validation failed: products data must be an array",
		},
		{
			name: "record level",
			err:  &ValidationError{Index: 3, Reason: "not an object"},
			want: "catalog validation failed: product at index 3: not an object",
		},
		{
			name: "field level",
			err:  &ValidationError{Index: 0, Field: "price", Reason: "missing required field"},
			want: `catalog validation failed: product at index 0: field "price": missing required field`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
			assert.ErrorIs(t, tt.err, ErrValidation)

			var ve *ValidationError
			assert.True(t, errors.As(fmt.Errorf("load: %w", tt.err), &ve))
		})
	}
}
