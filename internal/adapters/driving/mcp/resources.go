package mcp

import (
	"context"
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mqmweb/catalog/internal/core/domain"
	"github.com/mqmweb/catalog/internal/core/services"
)

const (
	// uriScheme is the custom URI scheme for catalog resources.
	uriScheme = "mqm://"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "categories",
		Name:        "categories",
		Description: "Categories that currently have products",
		MIMEType:    "application/json",
	}, s.handleCategoriesResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "products/{slug}",
		Name:        "product",
		Description: "A product sheet in Markdown",
		MIMEType:    "text/markdown",
	}, s.handleProductResource)
}

// handleCategoriesResource returns the available categories as JSON.
func (s *Server) handleCategoriesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(categoriesOutput(s.ports.Catalog.AvailableCategories(ctx)), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling categories: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleProductResource renders one product as Markdown.
func (s *Server) handleProductResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	slug := extractProductSlug(req.Params.URI)
	if slug == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	p, err := s.ports.Catalog.ProductBySlug(ctx, slug)
	if err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/markdown",
			Text:     s.productMarkdown(p),
		}},
	}, nil
}

func (s *Server) productMarkdown(p *domain.Product) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", p.Title)
	fmt.Fprintf(&b, "**Precio:** %s", services.FormatPrice(p.Price, p.Currency))
	if p.OriginalPrice != nil {
		fmt.Fprintf(&b, " (antes %s)", services.FormatPrice(*p.OriginalPrice, p.Currency))
	}
	b.WriteString("\n\n")
	if len(p.Categories) > 0 {
		fmt.Fprintf(&b, "**Categorías:** %s\n\n", strings.Join(p.Categories, ", "))
	}
	if len(p.Tags) > 0 {
		fmt.Fprintf(&b, "**Etiquetas:** %s\n\n", strings.Join(p.Tags, ", "))
	}

	description := p.Description
	if s.ports.Renderer != nil {
		description = s.ports.Renderer.PlainText(description)
	}
	b.WriteString(strings.TrimSpace(description))
	b.WriteString("\n\n")

	link := s.ports.Catalog.AffiliateURL(*p, "", "")
	fmt.Fprintf(&b, "[Ver en %s](%s)\n\n", services.DomainFromURL(p.AffiliateURL), link)
	fmt.Fprintf(&b, "_%s_\n", domain.AffiliateDisclaimer)
	return b.String()
}

// extractProductSlug extracts the slug from a URI like mqm://products/{slug}.
func extractProductSlug(uri string) string {
	const prefix = uriScheme + "products/"

	slug, ok := strings.CutPrefix(uri, prefix)
	if !ok || strings.Contains(slug, "/") {
		return ""
	}
	return slug
}
