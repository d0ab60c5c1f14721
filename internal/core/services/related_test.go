package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mqmweb/catalog/internal/core/domain"
)

func TestScoreRelated(t *testing.T) {
	ref := domain.Product{ID: "ref", Categories: []string{"tazas", "frikis"}, Tags: []string{"cafe", "regalo"}, Merchant: "Amazon"}
	candidates := []domain.Product{
		ref,
		{ID: "a", Categories: []string{"tazas"}}, // 3
		{ID: "b", Categories: []string{"tazas", "frikis"}, Tags: []string{"regalo"}, Merchant: "Amazon"}, // 3+3+2+1
		{ID: "c", Categories: []string{"ropa"}},                                                          // 0
		{ID: "d", Tags: []string{"cafe"}, Merchant: "Amazon"},                                            // 2+1
		{ID: "e", Categories: []string{"frikis"}},                                                        // 3
		{ID: "f", Merchant: "amazon"},                                                                    // 0, case differs
	}

	got := ScoreRelated(ref, candidates, 0)

	require.Len(t, got, 4)
	assert.Equal(t, "b", got[0].Product.ID)
	assert.Equal(t, 9, got[0].Score)
	assert.Equal(t, "a", got[1].Product.ID)
	assert.Equal(t, "d", got[2].Product.ID, "ties keep catalog order")
	assert.Equal(t, "e", got[3].Product.ID)
	assert.Equal(t, 3, got[3].Score)

	for i, s := range got {
		assert.NotEqual(t, ref.ID, s.Product.ID)
		assert.Positive(t, s.Score)
		if i > 0 {
			assert.LessOrEqual(t, s.Score, got[i-1].Score)
		}
	}
}

func TestScoreRelated_Limit(t *testing.T) {
	ref := domain.Product{ID: "0", Categories: []string{"x"}}
	candidates := []domain.Product{
		{ID: "1", Categories: []string{"x"}},
		{ID: "2", Categories: []string{"x"}},
		{ID: "3", Categories: []string{"x"}},
	}

	assert.Len(t, ScoreRelated(ref, candidates, 2), 2)
	assert.Len(t, ScoreRelated(ref, candidates, 10), 3)
	assert.Empty(t, ScoreRelated(ref, nil, 4))
}

func TestScoreRelated_EmptyMerchantNeverMatches(t *testing.T) {
	ref := domain.Product{ID: "0"}
	got := ScoreRelated(ref, []domain.Product{{ID: "1"}}, 4)
	assert.Empty(t, got)
}

func TestScoreRelated_ResultsAreCopies(t *testing.T) {
	ref := domain.Product{ID: "0", Categories: []string{"x"}}
	candidates := []domain.Product{{ID: "1", Categories: []string{"x"}}}

	got := ScoreRelated(ref, candidates, 4)
	got[0].Product.Categories[0] = "mutated"

	assert.Equal(t, "x", candidates[0].Categories[0])
}

func TestScoreRelated_RepeatedLabelsCountOnce(t *testing.T) {
	tests := []struct {
		name      string
		ref       domain.Product
		candidate domain.Product
		want      int
	}{
		{
			name:      "tag repeated on reference",
			ref:       domain.Product{ID: "0", Tags: []string{"funny", "funny"}},
			candidate: domain.Product{ID: "1", Tags: []string{"funny"}},
			want:      SharedTagWeight,
		},
		{
			name:      "tag repeated on candidate",
			ref:       domain.Product{ID: "0", Tags: []string{"funny"}},
			candidate: domain.Product{ID: "1", Tags: []string{"funny", "funny"}},
			want:      SharedTagWeight,
		},
		{
			name:      "category repeated on reference",
			ref:       domain.Product{ID: "0", Categories: []string{"tazas", "tazas"}},
			candidate: domain.Product{ID: "1", Categories: []string{"tazas"}},
			want:      SharedCategoryWeight,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreRelated(tt.ref, []domain.Product{tt.candidate}, 0)

			require.Len(t, got, 1)
			assert.Equal(t, tt.want, got[0].Score)
		})
	}
}
