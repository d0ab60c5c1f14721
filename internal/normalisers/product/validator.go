// Package product validates raw catalog records into domain products.
package product

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/spf13/cast"

	"github.com/mqmweb/catalog/internal/core/domain"
	"github.com/mqmweb/catalog/internal/core/ports/driven"
)

// Ensure Validator implements the interface.
var _ driven.ProductValidator = (*Validator)(nil)

// requiredFields must be present and truthy on every record.
// "categories" may be satisfied by the legacy scalar "category".
var requiredFields = []string{"id", "title", "description", "price", "image", "affiliateUrl", "categories"}

// Validator checks raw records and fills defaults.
type Validator struct {
	registry    *domain.CategoryRegistry
	strictSlugs bool
	now         func() time.Time
}

// Option configures a Validator.
type Option func(*Validator)

// WithRegistry canonicalises category labels through r.
func WithRegistry(r *domain.CategoryRegistry) Option {
	return func(v *Validator) { v.registry = r }
}

// WithStrictSlugs rejects catalogs in which two products share a slug.
func WithStrictSlugs(strict bool) Option {
	return func(v *Validator) { v.strictSlugs = strict }
}

// WithClock sets the clock used to default missing timestamps.
func WithClock(now func() time.Time) Option {
	return func(v *Validator) { v.now = now }
}

// New creates a validator using the default category registry.
func New(opts ...Option) *Validator {
	v := &Validator{
		registry: domain.DefaultCategoryRegistry(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate converts raw into products. The whole batch is rejected on the
// first invalid record. Warnings report defaulted or dropped optional values.
func (v *Validator) Validate(raw any) ([]domain.Product, []domain.ValidationWarning, error) {
	records, ok := asRecords(raw)
	if !ok {
		return nil, nil, &domain.ValidationError{Index: -1, Reason: "products data must be an array"}
	}

	loadTime := v.now().UTC()
	products := make([]domain.Product, 0, len(records))
	warnings := []domain.ValidationWarning{}

	for i, item := range records {
		obj, ok := item.(map[string]any)
		if !ok || obj == nil {
			return nil, nil, &domain.ValidationError{Index: i, Reason: "record is not an object"}
		}
		p, w, err := v.validateRecord(i, obj, loadTime)
		if err != nil {
			return nil, nil, err
		}
		products = append(products, p)
		warnings = append(warnings, w...)
	}

	dupWarnings, err := v.checkSlugs(products)
	if err != nil {
		return nil, nil, err
	}
	warnings = append(warnings, dupWarnings...)

	return products, warnings, nil
}

func asRecords(raw any) ([]any, bool) {
	switch r := raw.(type) {
	case []any:
		return r, true
	case []map[string]any:
		out := make([]any, len(r))
		for i := range r {
			out[i] = r[i]
		}
		return out, true
	default:
		return nil, false
	}
}

func (v *Validator) validateRecord(
	index int, obj map[string]any, loadTime time.Time,
) (domain.Product, []domain.ValidationWarning, error) {
	for _, field := range requiredFields {
		val := obj[field]
		if field == "categories" && !truthy(val) {
			val = obj["category"]
		}
		if !truthy(val) {
			return domain.Product{}, nil, &domain.ValidationError{
				Index: index, Field: field, Reason: "missing required field",
			}
		}
	}

	id := scalarString(obj["id"])
	var warnings []domain.ValidationWarning
	warn := func(field, msg string) {
		warnings = append(warnings, domain.ValidationWarning{
			Index: index, ProductID: id, Field: field, Message: msg,
		})
	}

	price, err := toFloat(obj["price"])
	if err != nil {
		return domain.Product{}, nil, &domain.ValidationError{
			Index: index, Field: "price", Reason: fmt.Sprintf("not a number: %v", obj["price"]),
		}
	}

	p := domain.Product{
		ID:           id,
		Title:        strings.TrimSpace(scalarString(obj["title"])),
		Description:  scalarString(obj["description"]),
		Price:        price,
		Image:        scalarString(obj["image"]),
		AffiliateURL: strings.TrimSpace(scalarString(obj["affiliateUrl"])),
		Currency:     domain.DefaultCurrency,
		Discount:     optionalString(obj["discount"]),
		AmazonURL:    optionalString(obj["amazonUrl"]),
		Merchant:     optionalString(obj["merchant"]),
		IsFeatured:   truthy(obj["isFeatured"]) || truthy(obj["featured"]),
	}

	if s := optionalString(obj["currency"]); s != "" {
		p.Currency = strings.ToUpper(s)
	}
	p.Alt = optionalString(obj["alt"])
	if p.Alt == "" {
		p.Alt = p.Title
	}

	p.Slug = optionalString(obj["slug"])
	if p.Slug == "" {
		p.Slug = Slugify(p.Title)
		if p.Slug == "" {
			p.Slug = Slugify(p.ID)
			warn("slug", "title yields an empty slug; derived from id")
		}
	}

	p.ShortDescription = optionalString(obj["shortDescription"])
	if p.ShortDescription == "" {
		p.ShortDescription = Truncate(p.Description, domain.ShortDescriptionLength)
	}

	p.Categories = v.categories(obj)
	if len(p.Categories) == 0 {
		p.Categories = []string{domain.DefaultCategory}
		warn("categories", "no usable category; defaulted to "+domain.DefaultCategory)
	}
	p.Tags = distinct(stringList(obj["tags"]))

	if raw, ok := obj["originalPrice"]; ok && raw != nil {
		if f, err := toFloat(raw); err == nil {
			p.OriginalPrice = &f
		} else {
			warn("originalPrice", "not a number; dropped")
		}
	}
	if raw, ok := obj["rating"]; ok && raw != nil {
		if f, err := toFloat(raw); err == nil {
			p.Rating = &f
		} else {
			warn("rating", "not a number; dropped")
		}
	}
	if raw, ok := obj["reviewCount"]; ok && raw != nil {
		if f, err := toFloat(raw); err == nil {
			n := int(f)
			p.ReviewCount = &n
		} else {
			warn("reviewCount", "not a number; dropped")
		}
	}

	if raw, ok := obj["createdAt"]; ok && truthy(raw) {
		t, err := toTime(raw)
		if err != nil {
			p.CreatedAt = loadTime
			warn("createdAt", "unparseable timestamp; defaulted to load time")
		} else {
			p.CreatedAt = t
		}
	} else {
		p.CreatedAt = loadTime
		warn("createdAt", "missing; defaulted to load time")
	}

	if raw, ok := obj["updatedAt"]; ok && truthy(raw) {
		if t, err := toTime(raw); err == nil {
			p.UpdatedAt = &t
		} else {
			warn("updatedAt", "unparseable timestamp; dropped")
		}
	}

	return p, warnings, nil
}

// categories reads "categories", falling back to the scalar "category",
// canonicalises every label and drops blanks and repeats.
func (v *Validator) categories(obj map[string]any) []string {
	labels := stringList(obj["categories"])
	if len(labels) == 0 {
		labels = stringList(obj["category"])
	}
	seen := make(map[string]bool, len(labels))
	out := make([]string, 0, len(labels))
	for _, label := range labels {
		slug := v.canonical(label)
		if slug == "" || seen[slug] {
			continue
		}
		seen[slug] = true
		out = append(out, slug)
	}
	return out
}

func (v *Validator) canonical(label string) string {
	return CategorySlug(v.registry, label)
}

func (v *Validator) checkSlugs(products []domain.Product) ([]domain.ValidationWarning, error) {
	first := make(map[string]int, len(products))
	var warnings []domain.ValidationWarning
	for i, p := range products {
		j, dup := first[p.Slug]
		if !dup {
			first[p.Slug] = i
			continue
		}
		if v.strictSlugs {
			return nil, fmt.Errorf("%w: %w: %q used by products %s and %s",
				domain.ErrValidation, domain.ErrDuplicateSlug, p.Slug, products[j].ID, p.ID)
		}
		warnings = append(warnings, domain.ValidationWarning{
			Index:     i,
			ProductID: p.ID,
			Field:     "slug",
			Message:   fmt.Sprintf("duplicate slug %q; product %s wins lookups", p.Slug, products[j].ID),
		})
	}
	return warnings, nil
}

// truthy follows JavaScript truthiness, which the catalog format was defined with.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case json.Number:
		f, err := t.Float64()
		return err != nil || f != 0
	case float64:
		return t != 0 && !math.IsNaN(t)
	case float32:
		return t != 0
	case int:
		return t != 0
	case int64:
		return t != 0
	default:
		return true
	}
}

// scalarString renders ids, titles and similar scalars as text.
// Numbers keep their source spelling.
func scalarString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	default:
		return cast.ToString(v)
	}
}

func optionalString(v any) string {
	return strings.TrimSpace(scalarString(v))
}

func stringList(v any) []string {
	var items []string
	switch t := v.(type) {
	case nil:
		return []string{}
	case []any:
		items = make([]string, 0, len(t))
		for _, item := range t {
			items = append(items, scalarString(item))
		}
	case []string:
		items = t
	default:
		items = []string{scalarString(v)}
	}
	out := make([]string, 0, len(items))
	for _, s := range items {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// distinct drops repeated entries, keeping first occurrences in order.
func distinct(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := items[:0]
	for _, s := range items {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

func toFloat(v any) (float64, error) {
	if n, ok := v.(json.Number); ok {
		return n.Float64()
	}
	return cast.ToFloat64E(v)
}

// toTime parses ISO-8601 and common variants. Numbers are epoch milliseconds.
func toTime(v any) (time.Time, error) {
	switch t := v.(type) {
	case string:
		parsed, err := dateparse.ParseIn(strings.TrimSpace(t), time.UTC)
		if err != nil {
			return time.Time{}, err
		}
		return parsed.UTC(), nil
	case time.Time:
		return t.UTC(), nil
	default:
		ms, err := toFloat(v)
		if err != nil {
			return time.Time{}, err
		}
		return time.UnixMilli(int64(ms)).UTC(), nil
	}
}
