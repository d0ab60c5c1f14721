package mcp

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mqmweb/catalog/internal/core/domain"
	"github.com/mqmweb/catalog/internal/core/services"
)

// QueryInput is the input schema for the query_products tool.
type QueryInput struct {
	Categories  []string `json:"categories,omitempty" jsonschema:"category slugs or names; products in any of them match"`
	Search      string   `json:"search,omitempty" jsonschema:"case-insensitive text to look for in title, descriptions and tags"`
	Featured    *bool    `json:"featured,omitempty" jsonschema:"only featured (true) or only non-featured (false) products"`
	IncludeBlog bool     `json:"include_blog,omitempty" jsonschema:"include editorial blog entries"`
	Sort        string   `json:"sort,omitempty" jsonschema:"newest (default), oldest or title"`
	Limit       int      `json:"limit,omitempty" jsonschema:"maximum number of products (0 = all)"`
	Offset      int      `json:"offset,omitempty" jsonschema:"number of products to skip"`
}

// SearchInput is the input schema for the search_products tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"the text to search for"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
}

// SlugInput identifies a product.
type SlugInput struct {
	Slug string `json:"slug" jsonschema:"the product slug"`
}

// RelatedInput is the input schema for the related_products tool.
type RelatedInput struct {
	Slug  string `json:"slug" jsonschema:"the product to find related products for"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results (default 4)"`
}

// LinkInput is the input schema for the affiliate_link tool.
type LinkInput struct {
	Slug   string `json:"slug" jsonschema:"the product slug"`
	Source string `json:"source,omitempty" jsonschema:"utm_source value (defaults to the configured source)"`
	Medium string `json:"medium,omitempty" jsonschema:"utm_medium value (defaults to the configured medium)"`
}

// CategoriesInput is the (empty) input of the list_categories tool.
type CategoriesInput struct{}

// ProductOutput is a product as exposed to assistants.
type ProductOutput struct {
	ID               string   `json:"id"`
	Slug             string   `json:"slug"`
	Title            string   `json:"title"`
	ShortDescription string   `json:"short_description"`
	Price            float64  `json:"price"`
	PriceText        string   `json:"price_text"`
	Currency         string   `json:"currency"`
	Categories       []string `json:"categories"`
	Tags             []string `json:"tags,omitempty"`
	Featured         bool     `json:"featured"`
	Merchant         string   `json:"merchant,omitempty"`
	URL              string   `json:"url"`
	CreatedAt        string   `json:"created_at"`
}

// ProductsOutput is a list of products.
type ProductsOutput struct {
	Products []ProductOutput `json:"products"`
	Count    int             `json:"count"`
}

// ProductDetailOutput is the output schema for the get_product tool.
type ProductDetailOutput struct {
	Product     ProductOutput `json:"product"`
	Description string        `json:"description"`
}

// ScoredOutput is a related product with its score.
type ScoredOutput struct {
	Product ProductOutput `json:"product"`
	Score   int           `json:"score"`
}

// RelatedOutput is the output schema for the related_products tool.
type RelatedOutput struct {
	Results []ScoredOutput `json:"results"`
	Count   int            `json:"count"`
}

// CategoryOutput is a category with its product count.
type CategoryOutput struct {
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Count       int    `json:"count"`
}

// CategoriesOutput is the output schema for the list_categories tool.
type CategoriesOutput struct {
	Categories []CategoryOutput `json:"categories"`
}

// LinkOutput is the output schema for the affiliate_link tool.
type LinkOutput struct {
	URL        string `json:"url"`
	Disclaimer string `json:"disclaimer"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "query_products",
		Description: "List catalog products filtered by category, text and featured flag, sorted and sliced",
	}, s.handleQuery)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_products",
		Description: "Free-text product search",
	}, s.handleSearch)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_product",
		Description: "Get one product by slug, including its full description",
	}, s.handleGetProduct)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "related_products",
		Description: "Products related to a given product by shared categories, tags and merchant",
	}, s.handleRelated)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_categories",
		Description: "Categories that currently have products, with counts",
	}, s.handleListCategories)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "affiliate_link",
		Description: "The tracked affiliate link for a product",
	}, s.handleAffiliateLink)
}

func (s *Server) handleQuery(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QueryInput,
) (*mcp.CallToolResult, ProductsOutput, error) {
	order, err := domain.ParseSortOrder(input.Sort)
	if err != nil {
		return nil, ProductsOutput{}, err
	}

	products, err := s.ports.Catalog.Query(ctx, domain.QuerySpec{
		Categories:  input.Categories,
		Search:      input.Search,
		Featured:    input.Featured,
		IncludeBlog: input.IncludeBlog,
		SortBy:      order,
		Limit:       input.Limit,
		Offset:      input.Offset,
	})
	if err != nil {
		return nil, ProductsOutput{}, err
	}
	return nil, s.productsOutput(products), nil
}

func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, ProductsOutput, error) {
	products := s.ports.Catalog.SearchProducts(ctx, input.Query, input.Limit)
	return nil, s.productsOutput(products), nil
}

func (s *Server) handleGetProduct(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SlugInput,
) (*mcp.CallToolResult, ProductDetailOutput, error) {
	p, err := s.ports.Catalog.ProductBySlug(ctx, input.Slug)
	if err != nil {
		return nil, ProductDetailOutput{}, err
	}
	return nil, ProductDetailOutput{
		Product:     s.productOutput(p),
		Description: p.Description,
	}, nil
}

func (s *Server) handleRelated(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RelatedInput,
) (*mcp.CallToolResult, RelatedOutput, error) {
	p, err := s.ports.Catalog.ProductBySlug(ctx, input.Slug)
	if err != nil {
		return nil, RelatedOutput{}, err
	}

	related := s.ports.Catalog.RelatedProducts(ctx, *p, input.Limit)
	output := RelatedOutput{
		Results: make([]ScoredOutput, len(related)),
		Count:   len(related),
	}
	for i := range related {
		output.Results[i] = ScoredOutput{
			Product: s.productOutput(&related[i].Product),
			Score:   related[i].Score,
		}
	}
	return nil, output, nil
}

func (s *Server) handleListCategories(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ CategoriesInput,
) (*mcp.CallToolResult, CategoriesOutput, error) {
	return nil, CategoriesOutput{Categories: categoriesOutput(s.ports.Catalog.AvailableCategories(ctx))}, nil
}

func (s *Server) handleAffiliateLink(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input LinkInput,
) (*mcp.CallToolResult, LinkOutput, error) {
	p, err := s.ports.Catalog.ProductBySlug(ctx, input.Slug)
	if err != nil {
		return nil, LinkOutput{}, err
	}
	return nil, LinkOutput{
		URL:        s.ports.Catalog.AffiliateURL(*p, input.Source, input.Medium),
		Disclaimer: domain.AffiliateDisclaimer,
	}, nil
}

func (s *Server) productsOutput(products []domain.Product) ProductsOutput {
	out := ProductsOutput{
		Products: make([]ProductOutput, len(products)),
		Count:    len(products),
	}
	for i := range products {
		out.Products[i] = s.productOutput(&products[i])
	}
	return out
}

func (s *Server) productOutput(p *domain.Product) ProductOutput {
	return ProductOutput{
		ID:               p.ID,
		Slug:             p.Slug,
		Title:            p.Title,
		ShortDescription: p.ShortDescription,
		Price:            p.Price,
		PriceText:        services.FormatPrice(p.Price, p.Currency),
		Currency:         p.Currency,
		Categories:       p.Categories,
		Tags:             p.Tags,
		Featured:         p.IsFeatured,
		Merchant:         p.Merchant,
		URL:              s.ports.Catalog.AffiliateURL(*p, "", ""),
		CreatedAt:        p.CreatedAt.Format(time.RFC3339),
	}
}

func categoriesOutput(counts []domain.CategoryCount) []CategoryOutput {
	out := make([]CategoryOutput, len(counts))
	for i, c := range counts {
		out[i] = CategoryOutput{
			Slug:        c.Slug,
			Name:        c.Name,
			Description: c.Description,
			Count:       c.Count,
		}
	}
	return out
}
