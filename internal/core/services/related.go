package services

import (
	"sort"

	"github.com/mqmweb/catalog/internal/core/domain"
)

// Relatedness weights.
const (
	SharedCategoryWeight = 3
	SharedTagWeight      = 2
	SameMerchantWeight   = 1

	DefaultRelatedLimit = 4
)

// ScoreRelated ranks candidates against ref by shared categories, shared
// tags and a common merchant. ref itself and zero scores are dropped; ties
// keep candidate order. limit <= 0 returns every scored candidate.
func ScoreRelated(ref domain.Product, candidates []domain.Product, limit int) []domain.ScoredProduct {
	scored := make([]domain.ScoredProduct, 0)
	for i := range candidates {
		c := &candidates[i]
		if c.ID == ref.ID {
			continue
		}
		if score := relatedness(&ref, c); score > 0 {
			scored = append(scored, domain.ScoredProduct{Product: c.Clone(), Score: score})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}

// relatedness counts each shared category and tag once, however often it
// repeats on either product.
func relatedness(ref, c *domain.Product) int {
	score := SharedCategoryWeight * sharedCount(ref.Categories, c.Categories)
	score += SharedTagWeight * sharedCount(ref.Tags, c.Tags)
	if ref.Merchant != "" && ref.Merchant == c.Merchant {
		score += SameMerchantWeight
	}
	return score
}

func sharedCount(a, b []string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inB := make(map[string]bool, len(b))
	for _, v := range b {
		inB[v] = true
	}
	n := 0
	for _, v := range a {
		if inB[v] {
			n++
			delete(inB, v)
		}
	}
	return n
}
