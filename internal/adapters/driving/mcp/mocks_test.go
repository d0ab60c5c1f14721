package mcp

import (
	"context"
	"time"

	"github.com/mqmweb/catalog/internal/core/domain"
	"github.com/mqmweb/catalog/internal/core/ports/driving"
)

// mockCatalogService is a mock implementation of driving.CatalogService.
type mockCatalogService struct {
	products   []domain.Product
	related    []domain.ScoredProduct
	categories []domain.CategoryCount
	queryErr   error

	lastSpec   domain.QuerySpec
	lastLimit  int
	lastSource string
}

var _ driving.CatalogService = (*mockCatalogService)(nil)

func (m *mockCatalogService) AllProducts(_ context.Context) []domain.Product {
	return m.products
}

func (m *mockCatalogService) Query(_ context.Context, spec domain.QuerySpec) ([]domain.Product, error) {
	m.lastSpec = spec
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	return m.products, nil
}

func (m *mockCatalogService) Paginate(_ context.Context, _ domain.QuerySpec, page, perPage int) (domain.Page, error) {
	return domain.Page{Number: page, PerPage: perPage, Items: m.products}, nil
}

func (m *mockCatalogService) ProductBySlug(_ context.Context, slug string) (*domain.Product, error) {
	for i := range m.products {
		if m.products[i].Slug == slug {
			p := m.products[i].Clone()
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockCatalogService) ProductsByCategory(_ context.Context, _ string) []domain.Product {
	return m.products
}

func (m *mockCatalogService) FeaturedProducts(_ context.Context) []domain.Product {
	return m.products
}

func (m *mockCatalogService) SearchProducts(_ context.Context, _ string, limit int) []domain.Product {
	m.lastLimit = limit
	return m.products
}

func (m *mockCatalogService) RelatedProducts(_ context.Context, _ domain.Product, limit int) []domain.ScoredProduct {
	m.lastLimit = limit
	return m.related
}

func (m *mockCatalogService) AvailableCategories(_ context.Context) []domain.CategoryCount {
	return m.categories
}

func (m *mockCatalogService) Category(slug string) (domain.Category, error) {
	return domain.Category{}, domain.ErrNotFound
}

func (m *mockCatalogService) AffiliateURL(p domain.Product, source, _ string) string {
	m.lastSource = source
	if source == "" {
		source = "default"
	}
	return p.AffiliateURL + "?utm_source=" + source
}

func (m *mockCatalogService) Sitemap(_ context.Context, _ string) []domain.SitemapEntry {
	return nil
}

func (m *mockCatalogService) Invalidate() {}

func (m *mockCatalogService) Reload(_ context.Context) (domain.LoadReport, error) {
	return domain.LoadReport{}, nil
}

func (m *mockCatalogService) Status() domain.LoadReport {
	return domain.LoadReport{}
}

func (m *mockCatalogService) Checksum(_ context.Context) string {
	return ""
}

func sampleProducts() []domain.Product {
	old := 20.0
	return []domain.Product{
		{
			ID:               "1",
			Slug:             "taza-friki",
			Title:            "Taza Friki",
			Description:      "Una **taza** enorme",
			ShortDescription: "Una taza enorme...",
			Price:            12.99,
			OriginalPrice:    &old,
			Currency:         "EUR",
			AffiliateURL:     "https://www.amazon.es/dp/1",
			Categories:       []string{"tazas", "frikis"},
			Tags:             []string{"cafe"},
			CreatedAt:        time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:           "2",
			Slug:         "calcetines",
			Title:        "Calcetines",
			Price:        5,
			Currency:     "EUR",
			AffiliateURL: "https://www.amazon.es/dp/2",
			Categories:   []string{"ropa"},
			IsFeatured:   true,
			CreatedAt:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}
