package services

import (
	"testing"
	"time"

	"github.com/mqmweb/catalog/internal/adapters/driven/source/memory"
	"github.com/mqmweb/catalog/internal/core/domain"
	"github.com/mqmweb/catalog/internal/normalisers/product"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type recordOpt func(map[string]any)

func withTags(tags ...string) recordOpt {
	return func(r map[string]any) {
		list := make([]any, len(tags))
		for i, t := range tags {
			list[i] = t
		}
		r["tags"] = list
	}
}

func withField(key string, value any) recordOpt {
	return func(r map[string]any) { r[key] = value }
}

func featured() recordOpt {
	return withField("isFeatured", true)
}

func created(day int) recordOpt {
	return withField("createdAt", time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC).Format(time.RFC3339))
}

// record builds a valid raw product.
func record(id, title string, categories []string, opts ...recordOpt) map[string]any {
	cats := make([]any, len(categories))
	for i, c := range categories {
		cats[i] = c
	}
	r := map[string]any{
		"id":           id,
		"title":        title,
		"description":  "Descripción de " + title,
		"price":        9.99,
		"image":        "/img/" + id + ".jpg",
		"affiliateUrl": "https://shop.example.com/p/" + id + "?ref=abc",
		"categories":   cats,
		"createdAt":    "2024-01-01T00:00:00Z",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func records(recs ...map[string]any) []any {
	out := make([]any, len(recs))
	for i, r := range recs {
		out[i] = r
	}
	return out
}

func newTestStore(src *memory.Source, opts ...product.Option) *CatalogStore {
	validator := product.New(append([]product.Option{product.WithClock(func() time.Time { return testNow })}, opts...)...)
	store := NewCatalogStore(src, validator)
	store.now = func() time.Time { return testNow }
	return store
}

func newTestService(t *testing.T, recs ...map[string]any) (*CatalogService, *memory.Source) {
	t.Helper()
	src := memory.New(records(recs...))
	return NewCatalogService(newTestStore(src), nil), src
}

// exampleCatalog is P1, P2 and a blog entry P3.
func exampleCatalog() []map[string]any {
	return []map[string]any{
		record("1", "P1", []string{"viral"}, withTags("funny"), created(1)),
		record("2", "P2", []string{"viral", "random"}, withTags("funny", "cheap"), created(2)),
		record("3", "P3", []string{"blog"}, created(3)),
	}
}

func ids(products []domain.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}
