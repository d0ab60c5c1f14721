package driving

import (
	"context"

	"github.com/mqmweb/catalog/internal/core/domain"
)

// CatalogService answers catalog queries over the current snapshot.
//
// Read operations never fail because the catalog failed to load:
// a broken catalog reads as empty and the failure shows in Status.
type CatalogService interface {
	// AllProducts returns every product, including blog entries, in catalog order.
	AllProducts(ctx context.Context) []domain.Product

	// Query filters, sorts and slices the catalog.
	// Returns domain.ErrInvalidInput for an unsatisfiable spec.
	Query(ctx context.Context, spec domain.QuerySpec) ([]domain.Product, error)

	// Paginate runs spec without its limit and offset and returns one page.
	Paginate(ctx context.Context, spec domain.QuerySpec, page, perPage int) (domain.Page, error)

	// ProductBySlug returns the product with slug or domain.ErrNotFound.
	ProductBySlug(ctx context.Context, slug string) (*domain.Product, error)

	// ProductsByCategory lists a category, newest first.
	// Blog entries are only listed for the blog category itself.
	ProductsByCategory(ctx context.Context, slug string) []domain.Product

	// FeaturedProducts lists featured non-blog products, newest first.
	FeaturedProducts(ctx context.Context) []domain.Product

	// SearchProducts is a free-text search. A blank term yields no results.
	// limit <= 0 uses the default of 10.
	SearchProducts(ctx context.Context, term string, limit int) []domain.Product

	// RelatedProducts ranks other products by shared categories, tags and merchant.
	// limit <= 0 uses the default of 4.
	RelatedProducts(ctx context.Context, product domain.Product, limit int) []domain.ScoredProduct

	// AvailableCategories lists registered categories with at least one product.
	AvailableCategories(ctx context.Context) []domain.CategoryCount

	// Category returns a registered category by slug or domain.ErrNotFound.
	Category(slug string) (domain.Category, error)

	// AffiliateURL returns the tracked outbound link for product.
	// Empty source or medium use the configured defaults.
	AffiliateURL(product domain.Product, source, medium string) string

	// Sitemap lists storefront URLs for products and non-empty categories.
	Sitemap(ctx context.Context, baseURL string) []domain.SitemapEntry

	// Invalidate drops the snapshot; the next read reloads it.
	Invalidate()

	// Reload invalidates and loads immediately, returning the load error.
	Reload(ctx context.Context) (domain.LoadReport, error)

	// Status reports the last load.
	Status() domain.LoadReport

	// Checksum identifies the snapshot reads currently see, loading it if needed.
	// Two equal checksums bracket reads of the same catalog content.
	Checksum(ctx context.Context) string
}
