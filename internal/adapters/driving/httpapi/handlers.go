package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mqmweb/catalog/internal/core/domain"
	"github.com/mqmweb/catalog/internal/core/services"
	"github.com/mqmweb/catalog/internal/logger"
)

// listResponse wraps an unpaginated product listing.
type listResponse struct {
	Items []domain.Product `json:"items"`
	Count int              `json:"count"`
}

// productResponse is a product with its storefront presentation.
type productResponse struct {
	domain.Product
	PriceText       string `json:"priceText"`
	DescriptionHTML string `json:"descriptionHtml,omitempty"`
	TrackedURL      string `json:"trackedUrl"`
	Domain          string `json:"domain"`
}

// linkResponse is a tracked outbound link.
type linkResponse struct {
	URL        string `json:"url"`
	Disclaimer string `json:"disclaimer"`
}

func (s *Server) health(c echo.Context) error {
	report := s.catalog.Status()
	return c.JSON(http.StatusOK, map[string]any{
		"status":   "ok",
		"loaded":   report.Loaded(),
		"products": report.ProductCount,
	})
}

func (s *Server) listProducts(c echo.Context) error {
	spec, err := parseQuerySpec(c)
	if err != nil {
		return err
	}

	if c.QueryParam("page") != "" || c.QueryParam("per_page") != "" {
		page, err := intParam(c, "page", 1)
		if err != nil {
			return err
		}
		perPage, err := intParam(c, "per_page", s.opts.PerPage)
		if err != nil {
			return err
		}
		result, err := s.catalog.Paginate(c.Request().Context(), spec, page, perPage)
		if err != nil {
			return err
		}
		return s.ok(c, result)
	}

	products, err := s.catalog.Query(c.Request().Context(), spec)
	if err != nil {
		return err
	}
	return s.ok(c, listResponse{Items: products, Count: len(products)})
}

func (s *Server) getProduct(c echo.Context) error {
	p, err := s.catalog.ProductBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}

	resp := productResponse{
		Product:    *p,
		PriceText:  services.FormatPrice(p.Price, p.Currency),
		TrackedURL: s.catalog.AffiliateURL(*p, "", ""),
		Domain:     services.DomainFromURL(p.AffiliateURL),
	}
	if s.opts.Renderer != nil {
		html, err := s.opts.Renderer.RenderHTML(p.Description)
		if err != nil {
			return err
		}
		resp.DescriptionHTML = html
	}
	return s.ok(c, resp)
}

func (s *Server) relatedProducts(c echo.Context) error {
	limit, err := intParam(c, "limit", services.DefaultRelatedLimit)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	p, err := s.catalog.ProductBySlug(ctx, c.Param("slug"))
	if err != nil {
		return err
	}
	return s.ok(c, s.catalog.RelatedProducts(ctx, *p, limit))
}

func (s *Server) affiliateLink(c echo.Context) error {
	p, err := s.catalog.ProductBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}

	link := s.catalog.AffiliateURL(*p, c.QueryParam("source"), c.QueryParam("medium"))
	if redirect, _ := strconv.ParseBool(c.QueryParam("redirect")); redirect {
		return c.Redirect(http.StatusFound, link)
	}
	return c.JSON(http.StatusOK, linkResponse{URL: link, Disclaimer: domain.AffiliateDisclaimer})
}

func (s *Server) featuredProducts(c echo.Context) error {
	products := s.catalog.FeaturedProducts(c.Request().Context())
	return s.ok(c, listResponse{Items: products, Count: len(products)})
}

func (s *Server) searchProducts(c echo.Context) error {
	limit, err := intParam(c, "limit", 0)
	if err != nil {
		return err
	}
	products := s.catalog.SearchProducts(c.Request().Context(), c.QueryParam("q"), limit)
	return s.ok(c, listResponse{Items: products, Count: len(products)})
}

func (s *Server) listCategories(c echo.Context) error {
	return s.ok(c, s.catalog.AvailableCategories(c.Request().Context()))
}

// statusResponse is the JSON view of a load report.
type statusResponse struct {
	domain.LoadReport
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

func (s *Server) catalogStatus(c echo.Context) error {
	report := s.catalog.Status()
	return c.JSON(http.StatusOK, statusResponse{
		LoadReport: report,
		OK:         report.OK(),
		Error:      report.ErrorText(),
	})
}

func (s *Server) invalidateCatalog(c echo.Context) error {
	s.catalog.Invalidate()
	return c.NoContent(http.StatusAccepted)
}

// snapshotKey holds the checksum pinned before a GET handler reads the catalog.
const snapshotKey = "catalog.checksum"

// pinSnapshot records the snapshot checksum before the handler runs so ok
// can tell whether the catalog changed while the response was built.
func (s *Server) pinSnapshot(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if c.Request().Method == http.MethodGet {
			c.Set(snapshotKey, s.catalog.Checksum(c.Request().Context()))
		}
		return next(c)
	}
}

// ok writes data as JSON with the catalog's ETag, or 304 when the client
// already holds it. The ETag is omitted when the snapshot changed while
// data was being read.
func (s *Server) ok(c echo.Context, data any) error {
	if tag := s.etag(c); tag != "" {
		c.Response().Header().Set("ETag", tag)
		if match := c.Request().Header.Get("If-None-Match"); match != "" && etagMatches(match, tag) {
			return c.NoContent(http.StatusNotModified)
		}
	}
	return c.JSON(http.StatusOK, data)
}

func (s *Server) etag(c echo.Context) string {
	pinned, _ := c.Get(snapshotKey).(string)
	if pinned == "" {
		return ""
	}
	if current := s.catalog.Checksum(c.Request().Context()); current != pinned {
		logger.Debug("Catalog changed during %s; ETag omitted", c.Request().URL.Path)
		return ""
	}
	return `"` + pinned + `"`
}

func etagMatches(header, tag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == tag {
			return true
		}
	}
	return false
}

// parseQuerySpec reads QuerySpec fields from query parameters.
// category may repeat or hold a comma-separated list.
func parseQuerySpec(c echo.Context) (domain.QuerySpec, error) {
	var spec domain.QuerySpec
	params := c.QueryParams()

	for _, v := range params["category"] {
		for _, label := range strings.Split(v, ",") {
			if label = strings.TrimSpace(label); label != "" {
				spec.Categories = append(spec.Categories, label)
			}
		}
	}

	spec.Search = params.Get("q")
	if spec.Search == "" {
		spec.Search = params.Get("search")
	}

	if raw := params.Get("featured"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return spec, invalidParam("featured", raw)
		}
		spec.Featured = domain.Bool(v)
	}
	if raw := params.Get("include_blog"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return spec, invalidParam("include_blog", raw)
		}
		spec.IncludeBlog = v
	}

	order, err := domain.ParseSortOrder(params.Get("sort"))
	if err != nil {
		return spec, err
	}
	spec.SortBy = order

	if spec.Limit, err = intParam(c, "limit", 0); err != nil {
		return spec, err
	}
	if spec.Offset, err = intParam(c, "offset", 0); err != nil {
		return spec, err
	}
	return spec, spec.Validate()
}

func intParam(c echo.Context, name string, def int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, invalidParam(name, raw)
	}
	return v, nil
}

func invalidParam(name, value string) error {
	return fmt.Errorf("%w: parameter %s: %q", domain.ErrInvalidInput, name, value)
}
