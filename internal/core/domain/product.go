package domain

import (
	"slices"
	"time"
)

// Catalog-wide constants.
const (
	// BlogCategory marks editorial entries that are hidden from product listings.
	BlogCategory = "blog"

	// DefaultCategory is assigned when a record carries no category at all.
	DefaultCategory = "general"

	// DefaultCurrency is the ISO code used when a record has none.
	DefaultCurrency = "EUR"

	// ShortDescriptionLength is the rune count kept when deriving a short description.
	ShortDescriptionLength = 150
)

// Product is a validated catalog entry.
// Products are immutable once a snapshot is loaded; readers receive clones.
type Product struct {
	ID               string     `json:"id" csv:"id"`
	Title            string     `json:"title" csv:"title"`
	Slug             string     `json:"slug" csv:"slug"`
	Description      string     `json:"description" csv:"-"`
	ShortDescription string     `json:"shortDescription" csv:"short_description"`
	Price            float64    `json:"price" csv:"price"`
	OriginalPrice    *float64   `json:"originalPrice,omitempty" csv:"-"`
	Discount         string     `json:"discount,omitempty" csv:"discount"`
	Currency         string     `json:"currency" csv:"currency"`
	Image            string     `json:"image" csv:"image"`
	Alt              string     `json:"alt" csv:"-"`
	AffiliateURL     string     `json:"affiliateUrl" csv:"affiliate_url"`
	AmazonURL        string     `json:"amazonUrl,omitempty" csv:"-"`
	Categories       []string   `json:"categories" csv:"-"`
	Tags             []string   `json:"tags" csv:"-"`
	Rating           *float64   `json:"rating,omitempty" csv:"-"`
	ReviewCount      *int       `json:"reviewCount,omitempty" csv:"-"`
	IsFeatured       bool       `json:"isFeatured" csv:"featured"`
	Merchant         string     `json:"merchant,omitempty" csv:"merchant"`
	CreatedAt        time.Time  `json:"createdAt" csv:"created_at"`
	UpdatedAt        *time.Time `json:"updatedAt,omitempty" csv:"-"`
}

// HasCategory reports whether the product carries the category slug.
func (p *Product) HasCategory(slug string) bool {
	return slices.Contains(p.Categories, slug)
}

// IsBlog reports whether the product is an editorial blog entry.
func (p *Product) IsBlog() bool {
	return p.HasCategory(BlogCategory)
}

// Clone returns a deep copy so callers cannot mutate a loaded snapshot.
func (p Product) Clone() Product {
	c := p
	c.Categories = slices.Clone(p.Categories)
	c.Tags = slices.Clone(p.Tags)
	if p.OriginalPrice != nil {
		v := *p.OriginalPrice
		c.OriginalPrice = &v
	}
	if p.Rating != nil {
		v := *p.Rating
		c.Rating = &v
	}
	if p.ReviewCount != nil {
		v := *p.ReviewCount
		c.ReviewCount = &v
	}
	if p.UpdatedAt != nil {
		v := *p.UpdatedAt
		c.UpdatedAt = &v
	}
	return c
}

// CloneProducts deep-copies a product slice. A nil input yields an empty slice.
func CloneProducts(products []Product) []Product {
	out := make([]Product, len(products))
	for i := range products {
		out[i] = products[i].Clone()
	}
	return out
}

// ScoredProduct pairs a product with its relatedness score.
type ScoredProduct struct {
	Product Product `json:"product"`
	Score   int     `json:"score"`
}
