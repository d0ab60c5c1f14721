package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mqmweb/catalog/internal/adapters/driven/source/memory"
	"github.com/mqmweb/catalog/internal/core/domain"
	"github.com/mqmweb/catalog/internal/core/ports/driving"
	"github.com/mqmweb/catalog/internal/core/services"
	"github.com/mqmweb/catalog/internal/normalisers/markdown"
	"github.com/mqmweb/catalog/internal/normalisers/product"
)

func testCatalog() []any {
	return []any{
		map[string]any{
			"id": "1", "title": "Taza Friki", "description": "Una **taza** enorme",
			"price": 12.99, "image": "/img/1.jpg", "affiliateUrl": "https://www.amazon.es/dp/1",
			"categories": []any{"viral"}, "tags": []any{"funny"}, "createdAt": "2024-01-03T00:00:00Z",
		},
		map[string]any{
			"id": "2", "title": "Calcetines", "description": "Calcetines divertidos",
			"price": 5, "image": "/img/2.jpg", "affiliateUrl": "https://www.amazon.es/dp/2",
			"categories": []any{"viral"}, "tags": []any{"funny"}, "createdAt": "2024-01-02T00:00:00Z",
			"isFeatured": true,
		},
		map[string]any{
			"id": "3", "title": "Guía de regalos", "description": "Artículo",
			"price": 1, "image": "/img/3.jpg", "affiliateUrl": "https://blog.example.com/3",
			"categories": []any{"blog"}, "createdAt": "2024-01-01T00:00:00Z",
		},
	}
}

func newTestServer(t *testing.T, opts Options) (*Server, *memory.Source) {
	t.Helper()
	src := memory.New(testCatalog())
	store := services.NewCatalogStore(src, product.New())
	return New(services.NewCatalogService(store, nil), opts), src
}

func get(t *testing.T, s *Server, target string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t, Options{})

	rec := get(t, s, "/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode[map[string]any](t, rec)["status"])
}

func TestListProducts(t *testing.T) {
	s, _ := newTestServer(t, Options{})

	tests := []struct {
		name   string
		target string
		want   []string
	}{
		{"blog excluded", "/api/products", []string{"1", "2"}},
		{"include blog", "/api/products?include_blog=true", []string{"1", "2", "3"}},
		{"blog category", "/api/products?category=blog&include_blog=1", []string{"3"}},
		{"oldest", "/api/products?sort=oldest", []string{"2", "1"}},
		{"featured", "/api/products?featured=true", []string{"2"}},
		{"search", "/api/products?q=taza", []string{"1"}},
		{"limit offset", "/api/products?limit=1&offset=1", []string{"2"}},
		{"comma categories", "/api/products?category=viral,tazas", []string{"1", "2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, s, tt.target)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			body := decode[listResponse](t, rec)
			ids := make([]string, len(body.Items))
			for i, p := range body.Items {
				ids[i] = p.ID
			}
			assert.Equal(t, tt.want, ids)
			assert.Equal(t, len(tt.want), body.Count)
		})
	}
}

func TestListProducts_Paginated(t *testing.T) {
	s, _ := newTestServer(t, Options{PerPage: 1})

	rec := get(t, s, "/api/products?page=2")
	require.Equal(t, http.StatusOK, rec.Code)

	page := decode[domain.Page](t, rec)
	assert.Equal(t, 2, page.Number)
	assert.Equal(t, 1, page.PerPage)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 2, page.TotalItems)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "2", page.Items[0].ID)
}

func TestListProducts_BadInput(t *testing.T) {
	s, _ := newTestServer(t, Options{})

	for _, target := range []string{
		"/api/products?sort=price",
		"/api/products?limit=abc",
		"/api/products?limit=-1",
		"/api/products?featured=sometimes",
	} {
		t.Run(target, func(t *testing.T) {
			rec := get(t, s, target)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.NotEmpty(t, decode[errorBody](t, rec).Error)
		})
	}
}

func TestGetProduct(t *testing.T) {
	s, _ := newTestServer(t, Options{Renderer: markdown.New()})

	rec := get(t, s, "/api/products/taza-friki")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[productResponse](t, rec)
	assert.Equal(t, "1", body.ID)
	assert.Equal(t, "12,99\u00a0€", body.PriceText)
	assert.Equal(t, "amazon.es", body.Domain)
	assert.Contains(t, body.TrackedURL, "utm_source=mqm-web")
	assert.Contains(t, body.DescriptionHTML, "<strong>taza</strong>")
}

func TestGetProduct_NotFound(t *testing.T) {
	s, _ := newTestServer(t, Options{})

	rec := get(t, s, "/api/products/no-existe")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, decode[errorBody](t, rec).Error, "not found")
}

func TestRelatedProducts(t *testing.T) {
	s, _ := newTestServer(t, Options{})

	rec := get(t, s, "/api/products/taza-friki/related")
	require.Equal(t, http.StatusOK, rec.Code)

	related := decode[[]domain.ScoredProduct](t, rec)
	require.Len(t, related, 1)
	assert.Equal(t, "2", related[0].Product.ID)
	assert.Equal(t, 5, related[0].Score)
}

func TestAffiliateLink(t *testing.T) {
	s, _ := newTestServer(t, Options{})

	rec := get(t, s, "/api/products/calcetines/link?source=newsletter")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[linkResponse](t, rec)
	assert.Contains(t, body.URL, "utm_source=newsletter")
	assert.Equal(t, domain.AffiliateDisclaimer, body.Disclaimer)

	rec = get(t, s, "/api/products/calcetines/link?redirect=1")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Location"), "https://www.amazon.es/dp/2?"))
}

func TestFeaturedAndSearch(t *testing.T) {
	s, _ := newTestServer(t, Options{})

	featured := decode[listResponse](t, get(t, s, "/api/featured"))
	require.Len(t, featured.Items, 1)
	assert.Equal(t, "2", featured.Items[0].ID)

	found := decode[listResponse](t, get(t, s, "/api/search?q=calcetines"))
	require.Len(t, found.Items, 1)
	assert.Equal(t, "2", found.Items[0].ID)

	blank := decode[listResponse](t, get(t, s, "/api/search?q=+"))
	assert.Empty(t, blank.Items)
}

func TestListCategories(t *testing.T) {
	s, _ := newTestServer(t, Options{})

	rec := get(t, s, "/api/categories")
	require.Equal(t, http.StatusOK, rec.Code)

	cats := decode[[]domain.CategoryCount](t, rec)
	require.Len(t, cats, 2)
	assert.Equal(t, "viral", cats[0].Slug)
	assert.Equal(t, 2, cats[0].Count)
	assert.Equal(t, "blog", cats[1].Slug)
}

func TestETag(t *testing.T) {
	s, _ := newTestServer(t, Options{})

	first := get(t, s, "/api/products")
	tag := first.Header().Get("ETag")
	require.NotEmpty(t, tag)

	second := get(t, s, "/api/products", "If-None-Match", tag)
	assert.Equal(t, http.StatusNotModified, second.Code)

	other := get(t, s, "/api/products", "If-None-Match", `"stale"`)
	assert.Equal(t, http.StatusOK, other.Code)
}

// reloadingCatalog swaps the catalog right after serving featured products,
// as a concurrent invalidate and reload would.
type reloadingCatalog struct {
	driving.CatalogService
	src *memory.Source
}

func (r *reloadingCatalog) FeaturedProducts(ctx context.Context) []domain.Product {
	out := r.CatalogService.FeaturedProducts(ctx)
	r.src.Set(testCatalog()[:1])
	r.CatalogService.Invalidate()
	return out
}

func TestETag_OmittedWhenCatalogChangesDuringRequest(t *testing.T) {
	src := memory.New(testCatalog())
	catalog := services.NewCatalogService(services.NewCatalogStore(src, product.New()), nil)
	s := New(&reloadingCatalog{CatalogService: catalog, src: src}, Options{})

	rec := get(t, s, "/api/featured")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("ETag"))
	assert.Len(t, decode[listResponse](t, rec).Items, 1, "data from the snapshot the handler read")

	stable := get(t, s, "/api/categories")
	assert.Equal(t, `"`+catalog.Status().Checksum+`"`, stable.Header().Get("ETag"))
}

func TestCatalogStatusAndInvalidate(t *testing.T) {
	s, src := newTestServer(t, Options{})
	get(t, s, "/api/products")

	status := decode[statusResponse](t, get(t, s, "/api/catalog"))
	assert.True(t, status.OK)
	assert.Equal(t, 3, status.ProductCount)
	assert.Equal(t, "memory", status.Origin)

	req := httptest.NewRequest(http.MethodPost, "/api/catalog/invalidate", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusAccepted, rec.Code)

	before := src.Reads()
	get(t, s, "/api/products")
	assert.Equal(t, before+1, src.Reads())
}

func TestSitemap(t *testing.T) {
	s, _ := newTestServer(t, Options{SiteURL: "https://example.com/"})

	rec := get(t, s, "/sitemap.xml")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/xml")
	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(body, "<?xml"))
	assert.Contains(t, body, `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)
	assert.Contains(t, body, "<loc>https://example.com/producto/taza-friki</loc>")
	assert.Contains(t, body, "<loc>https://example.com/categoria/viral</loc>")
	assert.Contains(t, body, "<lastmod>2024-01-03</lastmod>")
}

func TestRateLimit(t *testing.T) {
	s, _ := newTestServer(t, Options{RateLimit: 1})

	assert.Equal(t, http.StatusOK, get(t, s, "/api/featured").Code)
	rec := get(t, s, "/api/featured")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	assert.Equal(t, http.StatusOK, get(t, s, "/healthz").Code, "health checks are not limited")
}
