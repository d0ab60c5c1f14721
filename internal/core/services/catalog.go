package services

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/mqmweb/catalog/internal/core/domain"
	"github.com/mqmweb/catalog/internal/core/ports/driving"
	"github.com/mqmweb/catalog/internal/logger"
	"github.com/mqmweb/catalog/internal/normalisers/product"
)

// Ensure CatalogService implements the interface.
var _ driving.CatalogService = (*CatalogService)(nil)

// DefaultSearchLimit caps free-text search results.
const DefaultSearchLimit = 10

// CatalogService answers queries over the snapshot held by a CatalogStore.
type CatalogService struct {
	store     *CatalogStore
	registry  *domain.CategoryRegistry
	affiliate domain.AffiliateSettings
	perPage   int

	countsMu   sync.Mutex
	countsSnap *snapshot
	counts     []domain.CategoryCount
}

// CatalogOption configures a CatalogService.
type CatalogOption func(*CatalogService)

// WithAffiliateDefaults sets the tracking source and medium used when callers pass none.
func WithAffiliateDefaults(a domain.AffiliateSettings) CatalogOption {
	return func(s *CatalogService) { s.affiliate = a }
}

// WithPerPage sets the default page size for Paginate.
func WithPerPage(n int) CatalogOption {
	return func(s *CatalogService) {
		if n > 0 {
			s.perPage = n
		}
	}
}

// NewCatalogService creates a catalog service.
// A nil registry uses the default storefront categories.
func NewCatalogService(store *CatalogStore, registry *domain.CategoryRegistry, opts ...CatalogOption) *CatalogService {
	if registry == nil {
		registry = domain.DefaultCategoryRegistry()
	}
	s := &CatalogService{
		store:    store,
		registry: registry,
		affiliate: domain.AffiliateSettings{
			Source: domain.DefaultAffiliateSource,
			Medium: domain.DefaultAffiliateMedium,
		},
		perPage: domain.DefaultPerPage,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AllProducts returns every product, blog entries included, in catalog order.
func (s *CatalogService) AllProducts(ctx context.Context) []domain.Product {
	return s.store.Products(ctx)
}

// Query filters, sorts and slices the catalog.
func (s *CatalogService) Query(ctx context.Context, spec domain.QuerySpec) ([]domain.Product, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	logger.Section("Catalog Query")

	snap := s.store.current(ctx)
	matched := s.filter(snap.products, spec)
	logger.Debug("Matched %d of %d products", len(matched), len(snap.products))

	sortProducts(matched, spec.SortBy.OrDefault())
	matched = applyPagination(matched, spec.Offset, spec.Limit)

	out := make([]domain.Product, len(matched))
	for i, p := range matched {
		out[i] = p.Clone()
	}
	return out, nil
}

// filter applies blog exclusion, categories, search and featured, in that order.
// The returned slice holds pointers into the snapshot and must not be mutated.
func (s *CatalogService) filter(products []domain.Product, spec domain.QuerySpec) []*domain.Product {
	wanted := s.categorySet(spec.Categories)
	term := strings.ToLower(strings.TrimSpace(spec.Search))

	matched := make([]*domain.Product, 0, len(products))
	for i := range products {
		p := &products[i]
		if !spec.IncludeBlog && p.IsBlog() {
			continue
		}
		if len(wanted) > 0 && !hasAny(p, wanted) {
			continue
		}
		if term != "" && !matchesTerm(p, term) {
			continue
		}
		if spec.Featured != nil && p.IsFeatured != *spec.Featured {
			continue
		}
		matched = append(matched, p)
	}
	return matched
}

// categorySet maps the requested labels the way catalog loading does. Blank labels are ignored.
func (s *CatalogService) categorySet(labels []string) map[string]bool {
	set := make(map[string]bool, len(labels))
	for _, label := range labels {
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		set[product.CategorySlug(s.registry, label)] = true
	}
	return set
}

func hasAny(p *domain.Product, wanted map[string]bool) bool {
	for _, c := range p.Categories {
		if wanted[c] {
			return true
		}
	}
	return false
}

func matchesTerm(p *domain.Product, term string) bool {
	if strings.Contains(strings.ToLower(p.Title), term) ||
		strings.Contains(strings.ToLower(p.ShortDescription), term) ||
		strings.Contains(strings.ToLower(p.Description), term) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

// sortProducts orders in place. Ties fall back to the product ID, then catalog order.
func sortProducts(products []*domain.Product, order domain.SortOrder) {
	var less func(a, b *domain.Product) int
	switch order {
	case domain.SortOldest:
		less = func(a, b *domain.Product) int { return a.CreatedAt.Compare(b.CreatedAt) }
	case domain.SortTitle:
		// Collators are not safe for concurrent use.
		col := collate.New(language.Spanish, collate.IgnoreCase)
		less = func(a, b *domain.Product) int { return col.CompareString(a.Title, b.Title) }
	default:
		less = func(a, b *domain.Product) int { return b.CreatedAt.Compare(a.CreatedAt) }
	}

	sort.SliceStable(products, func(i, j int) bool {
		if c := less(products[i], products[j]); c != 0 {
			return c < 0
		}
		return compareIDs(products[i].ID, products[j].ID) < 0
	})
}

// compareIDs compares numerically when both IDs are integers.
func compareIDs(a, b string) int {
	ai, errA := strconv.ParseInt(a, 10, 64)
	bi, errB := strconv.ParseInt(b, 10, 64)
	if errA == nil && errB == nil {
		switch {
		case ai < bi:
			return -1
		case ai > bi:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(a, b)
}

// applyPagination applies offset and limit. limit <= 0 means no limit.
func applyPagination[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return items[:0]
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}

// Paginate runs spec without its own limit and offset and returns page number page.
func (s *CatalogService) Paginate(ctx context.Context, spec domain.QuerySpec, page, perPage int) (domain.Page, error) {
	if perPage <= 0 {
		perPage = s.perPage
	}
	if page < 1 {
		page = 1
	}
	spec.Limit, spec.Offset = 0, 0
	all, err := s.Query(ctx, spec)
	if err != nil {
		return domain.Page{}, err
	}

	totalPages := domain.TotalPages(len(all), perPage)
	return domain.Page{
		Number:     page,
		PerPage:    perPage,
		TotalItems: len(all),
		TotalPages: totalPages,
		Window:     domain.PageWindow(page, totalPages, domain.PageWindowSize),
		Items:      applyPagination(all, (page-1)*perPage, perPage),
	}, nil
}

// ProductBySlug returns the first product in catalog order with slug.
func (s *CatalogService) ProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	snap := s.store.current(ctx)
	i, ok := snap.bySlug[slug]
	if !ok {
		return nil, fmt.Errorf("product %q: %w", slug, domain.ErrNotFound)
	}
	p := snap.products[i].Clone()
	return &p, nil
}

// ProductsByCategory lists a category, newest first.
func (s *CatalogService) ProductsByCategory(ctx context.Context, slug string) []domain.Product {
	return s.mustQuery(ctx, domain.QuerySpec{
		Categories:  []string{slug},
		IncludeBlog: product.CategorySlug(s.registry, slug) == domain.BlogCategory,
	})
}

// FeaturedProducts lists featured non-blog products, newest first.
func (s *CatalogService) FeaturedProducts(ctx context.Context) []domain.Product {
	return s.mustQuery(ctx, domain.QuerySpec{Featured: domain.Bool(true)})
}

// SearchProducts is a free-text search, newest first.
func (s *CatalogService) SearchProducts(ctx context.Context, term string, limit int) []domain.Product {
	if strings.TrimSpace(term) == "" {
		logger.Debug("Empty search term, returning no results")
		return []domain.Product{}
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	return s.mustQuery(ctx, domain.QuerySpec{Search: term, Limit: limit})
}

// mustQuery runs a spec built internally, which always validates.
func (s *CatalogService) mustQuery(ctx context.Context, spec domain.QuerySpec) []domain.Product {
	products, err := s.Query(ctx, spec)
	if err != nil {
		logger.Error("internal query rejected: %v", err)
		return []domain.Product{}
	}
	return products
}

// RelatedProducts ranks the catalog against p.
func (s *CatalogService) RelatedProducts(ctx context.Context, p domain.Product, limit int) []domain.ScoredProduct {
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}
	return ScoreRelated(p, s.store.current(ctx).products, limit)
}

// AvailableCategories lists registered categories that have products, in registry order.
// Counts are computed once per snapshot.
func (s *CatalogService) AvailableCategories(ctx context.Context) []domain.CategoryCount {
	snap := s.store.current(ctx)

	s.countsMu.Lock()
	defer s.countsMu.Unlock()
	if s.countsSnap != snap {
		s.counts = countCategories(s.registry, snap.products)
		s.countsSnap = snap
	}
	return append([]domain.CategoryCount{}, s.counts...)
}

func countCategories(registry *domain.CategoryRegistry, products []domain.Product) []domain.CategoryCount {
	tally := make(map[string]int)
	for i := range products {
		for _, c := range products[i].Categories {
			tally[c]++
		}
	}

	counts := make([]domain.CategoryCount, 0)
	for _, c := range registry.All() {
		if n := tally[c.Slug]; n > 0 {
			counts = append(counts, domain.CategoryCount{
				Slug:        c.Slug,
				Name:        c.Name,
				Description: c.Description,
				Count:       n,
			})
		}
	}
	return counts
}

// Category returns a registered category.
func (s *CatalogService) Category(slug string) (domain.Category, error) {
	c, ok := s.registry.Lookup(product.CategorySlug(s.registry, slug))
	if !ok {
		return domain.Category{}, fmt.Errorf("category %q: %w", slug, domain.ErrNotFound)
	}
	return c, nil
}

// AffiliateURL returns the tracked outbound link for p.
func (s *CatalogService) AffiliateURL(p domain.Product, source, medium string) string {
	if source == "" {
		source = s.affiliate.Source
	}
	if medium == "" {
		medium = s.affiliate.Medium
	}
	return BuildAffiliateURL(p, source, medium)
}

// Sitemap lists the storefront URLs: static pages, every product and
// every category that has products.
func (s *CatalogService) Sitemap(ctx context.Context, baseURL string) []domain.SitemapEntry {
	baseURL = strings.TrimRight(baseURL, "/")
	snap := s.store.current(ctx)
	now := snap.report.LoadedAt

	entries := []domain.SitemapEntry{
		{URL: baseURL, LastModified: now, ChangeFreq: domain.ChangeDaily, Priority: 1},
		{URL: baseURL + "/destacados", LastModified: now, ChangeFreq: domain.ChangeWeekly, Priority: 0.8},
		{URL: baseURL + "/legal/afiliados", LastModified: now, ChangeFreq: domain.ChangeMonthly, Priority: 0.3},
	}
	for _, p := range snap.products {
		modified := p.CreatedAt
		if p.UpdatedAt != nil {
			modified = *p.UpdatedAt
		}
		entries = append(entries, domain.SitemapEntry{
			URL:          baseURL + "/producto/" + p.Slug,
			LastModified: modified,
			ChangeFreq:   domain.ChangeWeekly,
			Priority:     0.7,
		})
	}
	for _, c := range s.AvailableCategories(ctx) {
		entries = append(entries, domain.SitemapEntry{
			URL:          baseURL + "/categoria/" + c.Slug,
			LastModified: now,
			ChangeFreq:   domain.ChangeWeekly,
			Priority:     0.6,
		})
	}
	return entries
}

// Invalidate drops the snapshot; the next read reloads it.
func (s *CatalogService) Invalidate() {
	s.store.Invalidate()
}

// Reload loads a fresh snapshot now.
func (s *CatalogService) Reload(ctx context.Context) (domain.LoadReport, error) {
	return s.store.Load(ctx)
}

// Status reports the last load.
func (s *CatalogService) Status() domain.LoadReport {
	return s.store.Report()
}

// Checksum returns the checksum of the live snapshot.
func (s *CatalogService) Checksum(ctx context.Context) string {
	return s.store.current(ctx).report.Checksum
}
