package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSortOrder(t *testing.T) {
	tests := []struct {
		in      string
		want    SortOrder
		wantErr bool
	}{
		{"", SortNewest, false},
		{"newest", SortNewest, false},
		{" Oldest ", SortOldest, false},
		{"TITLE", SortTitle, false},
		{"price", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSortOrder(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSortOrder_String(t *testing.T) {
	assert.Equal(t, "newest", SortOrder("").String())
	assert.Equal(t, "title", SortTitle.String())
}

func TestQuerySpec_Validate(t *testing.T) {
	assert.NoError(t, QuerySpec{}.Validate())
	assert.NoError(t, QuerySpec{SortBy: SortTitle, Limit: 5, Offset: 10}.Validate())
	assert.ErrorIs(t, QuerySpec{SortBy: "price"}.Validate(), ErrInvalidInput)
	assert.ErrorIs(t, QuerySpec{Limit: -1}.Validate(), ErrInvalidInput)
	assert.ErrorIs(t, QuerySpec{Offset: -1}.Validate(), ErrInvalidInput)
}

func TestBool(t *testing.T) {
	assert.True(t, *Bool(true))
	assert.False(t, *Bool(false))
}
