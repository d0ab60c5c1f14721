package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProduct_HasCategory(t *testing.T) {
	p := Product{Categories: []string{"tazas", "frikis"}}

	assert.True(t, p.HasCategory("tazas"))
	assert.True(t, p.HasCategory("frikis"))
	assert.False(t, p.HasCategory("blog"))
	assert.False(t, p.IsBlog())

	p.Categories = append(p.Categories, BlogCategory)
	assert.True(t, p.IsBlog())
}

func TestProduct_Clone_DoesNotAlias(t *testing.T) {
	price := 19.99
	rating := 4.5
	reviews := 12
	updated := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	original := Product{
		ID:            "1",
		Categories:    []string{"tazas"},
		Tags:          []string{"cafe"},
		OriginalPrice: &price,
		Rating:        &rating,
		ReviewCount:   &reviews,
		UpdatedAt:     &updated,
	}

	clone := original.Clone()
	clone.Categories[0] = "ropa"
	clone.Tags[0] = "te"
	*clone.OriginalPrice = 1
	*clone.Rating = 1
	*clone.ReviewCount = 1
	*clone.UpdatedAt = time.Time{}

	assert.Equal(t, "tazas", original.Categories[0])
	assert.Equal(t, "cafe", original.Tags[0])
	assert.InDelta(t, 19.99, *original.OriginalPrice, 0.0001)
	assert.InDelta(t, 4.5, *original.Rating, 0.0001)
	assert.Equal(t, 12, *original.ReviewCount)
	assert.Equal(t, updated, *original.UpdatedAt)
}

func TestCloneProducts(t *testing.T) {
	t.Run("nil yields empty slice", func(t *testing.T) {
		out := CloneProducts(nil)
		require.NotNil(t, out)
		assert.Empty(t, out)
	})

	t.Run("copies every product", func(t *testing.T) {
		in := []Product{{ID: "1", Tags: []string{"a"}}, {ID: "2"}}
		out := CloneProducts(in)
		require.Len(t, out, 2)
		out[0].Tags[0] = "b"
		assert.Equal(t, "a", in[0].Tags[0])
	})
}
