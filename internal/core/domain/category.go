package domain

import (
	"fmt"
	"strings"
)

// Category is a storefront grouping of products.
type Category struct {
	Slug        string   `json:"slug" mapstructure:"slug"`
	Name        string   `json:"name" mapstructure:"name"`
	Description string   `json:"description" mapstructure:"description"`
	Color       string   `json:"color,omitempty" mapstructure:"color"`
	Icon        string   `json:"icon,omitempty" mapstructure:"icon"`
	Aliases     []string `json:"aliases,omitempty" mapstructure:"aliases"`
}

// CategoryCount is a category with the number of catalog products carrying it.
type CategoryCount struct {
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Count       int    `json:"count"`
}

// CategoryRegistry maps category slugs to display metadata and
// free-form labels (names, aliases) back to slugs.
// Registration order is preserved and drives listing order.
// A registry is not safe for concurrent mutation; build it once, then share it.
type CategoryRegistry struct {
	order   []string
	bySlug  map[string]Category
	byLabel map[string]string
}

// NewCategoryRegistry builds a registry from categories in order.
func NewCategoryRegistry(categories ...Category) (*CategoryRegistry, error) {
	r := &CategoryRegistry{
		bySlug:  make(map[string]Category, len(categories)),
		byLabel: make(map[string]string, len(categories)*2),
	}
	for _, c := range categories {
		if err := r.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a category. Registering an existing slug is an error;
// use Override to replace one.
func (r *CategoryRegistry) Register(c Category) error {
	if strings.TrimSpace(c.Slug) == "" {
		return fmt.Errorf("%w: category slug is empty", ErrInvalidInput)
	}
	if _, ok := r.bySlug[c.Slug]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateCategory, c.Slug)
	}
	r.order = append(r.order, c.Slug)
	r.put(c)
	return nil
}

// Override replaces an existing category's metadata or appends a new one.
// Empty fields in c keep the existing values.
func (r *CategoryRegistry) Override(c Category) error {
	existing, ok := r.bySlug[c.Slug]
	if !ok {
		return r.Register(c)
	}
	if c.Name == "" {
		c.Name = existing.Name
	}
	if c.Description == "" {
		c.Description = existing.Description
	}
	if c.Color == "" {
		c.Color = existing.Color
	}
	if c.Icon == "" {
		c.Icon = existing.Icon
	}
	c.Aliases = append(append([]string{}, existing.Aliases...), c.Aliases...)
	r.put(c)
	return nil
}

func (r *CategoryRegistry) put(c Category) {
	r.bySlug[c.Slug] = c
	r.byLabel[labelKey(c.Slug)] = c.Slug
	if c.Name != "" {
		r.byLabel[labelKey(c.Name)] = c.Slug
	}
	for _, a := range c.Aliases {
		r.byLabel[labelKey(a)] = c.Slug
	}
}

// Lookup returns the category for a slug.
func (r *CategoryRegistry) Lookup(slug string) (Category, bool) {
	c, ok := r.bySlug[slug]
	return c, ok
}

// Has reports whether slug is registered.
func (r *CategoryRegistry) Has(slug string) bool {
	_, ok := r.bySlug[slug]
	return ok
}

// Canonical maps a label to its registered slug.
// Labels that match nothing are returned unchanged.
func (r *CategoryRegistry) Canonical(label string) string {
	if _, ok := r.bySlug[label]; ok {
		return label
	}
	if slug, ok := r.byLabel[labelKey(label)]; ok {
		return slug
	}
	return label
}

// Resolve maps a free-form label to a registered slug: first through
// Canonical, then through fold (a slug function such as the product
// normaliser's). Labels that match nothing come back as Canonical returns
// them. A nil registry returns the trimmed label.
func (r *CategoryRegistry) Resolve(label string, fold func(string) string) string {
	label = strings.TrimSpace(label)
	if r == nil || label == "" {
		return label
	}
	slug := r.Canonical(label)
	if r.Has(slug) {
		return slug
	}
	if fold != nil {
		if folded := fold(label); r.Has(folded) {
			return folded
		}
	}
	return slug
}

// All returns the registered categories in registration order.
func (r *CategoryRegistry) All() []Category {
	out := make([]Category, 0, len(r.order))
	for _, slug := range r.order {
		out = append(out, r.bySlug[slug])
	}
	return out
}

// Len returns the number of registered categories.
func (r *CategoryRegistry) Len() int {
	return len(r.order)
}

func labelKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// DefaultCategories returns the storefront's built-in category table.
func DefaultCategories() []Category {
	return []Category{
		{Slug: "viral", Name: "Viral", Description: "Lo que está de moda y arrasa en redes", Color: "#F59E0B", Icon: "🔥"},
		{Slug: "random", Name: "Random", Description: "Productos curiosos y sorprendentes", Color: "#8B5CF6", Icon: "🎲"},
		{Slug: "adultos", Name: "Adultos", Description: "Para los que ya no son chavales", Color: "#6B7280", Icon: "👨‍💼"},
		{Slug: "ofendiditos", Name: "Ofendiditos", Description: "Para los que se ofenden por todo", Color: "#EF4444", Icon: "😤"},
		{Slug: "casados", Name: "Casados", Description: "La realidad del matrimonio", Color: "#10B981", Icon: "💍"},
		{Slug: "dejados", Name: "Dejados", Description: "Para los que han tirado la toalla", Color: "#6B7280", Icon: "🛋️"},
		{Slug: "anti-fitness", Name: "Anti Fitness", Description: "Orgullosamente sedentarios", Color: "#F97316", Icon: "🍕"},
		{Slug: "otakus", Name: "Otakus", Description: "Anime, manga y cultura japonesa", Color: "#EC4899", Icon: "🎌"},
		{Slug: "adolescentes", Name: "Adolescentes", Description: "Para los que todavía no saben nada de la vida", Color: "#06B6D4", Icon: "🧒"},
		{Slug: "facheritos", Name: "Facheritos", Description: "Para los que se las dan de guays", Color: "#8B5CF6", Icon: "😎"},
		{Slug: "cinefilos", Name: "Cinéfilos", Description: "Para los amantes del séptimo arte", Color: "#1F2937", Icon: "🎬"},
		{Slug: "ninos", Name: "Niños", Description: "Para los pequeños de la casa", Color: "#10B981", Icon: "🧸"},
		{Slug: "educativo", Name: "Educativo", Description: "Aprender jugando", Color: "#3B82F6", Icon: "📚"},
		{Slug: "steam", Name: "STEAM", Description: "Ciencia, tecnología, ingeniería, arte y matemáticas", Color: "#6366F1", Icon: "🔬"},
		{Slug: "gym-bros", Name: "Gym Bros", Description: "Para los adictos al gimnasio", Color: "#EF4444", Icon: "💪"},
		{Slug: "deportistas", Name: "Deportistas", Description: "Para los que mueven el esqueleto", Color: "#059669", Icon: "⚽"},
		{Slug: "divorciados", Name: "Divorciados", Description: "Nueva vida, nuevas oportunidades", Color: "#84CC16", Icon: "🆓"},
		{Slug: "rancios", Name: "Rancios", Description: "Para los que van a su bola", Color: "#92400E", Icon: "🧓"},
		{Slug: "ratas", Name: "Ratas", Description: "Para los tacaños profesionales", Color: "#374151", Icon: "🐭"},
		{Slug: "juegos-de-mesa", Name: "Juegos de Mesa", Description: "Diversión analógica para todos", Color: "#7C3AED", Icon: "🎲"},
		{Slug: "frikis", Name: "Frikis", Description: "Para los amantes de la cultura geek", Color: "#10B981", Icon: "🤓"},
		{Slug: "gamers", Name: "Gamers", Description: "Para los adictos a los videojuegos", Color: "#8B5CF6", Icon: "🎮"},
		{Slug: "fiesta", Name: "Fiesta", Description: "Para animar cualquier celebración", Color: "#F59E0B", Icon: "🎉"},
		{Slug: "vida-en-el-wc", Name: "Vida en el WC", Description: "Para los momentos más íntimos", Color: "#6366F1", Icon: "🚽"},
		{Slug: "libros", Name: "Libros", Description: "Para los amantes de la lectura", Color: "#DC2626", Icon: "📚"},
		{Slug: "tazas", Name: "Tazas", Description: "Para los amantes del café y bebidas calientes", Color: "#8B4513", Icon: "☕"},
		{Slug: "blog", Name: "Blog", Description: "Artículos y contenido especial", Color: "#1F2937", Icon: "📝"},
		{Slug: "halloween", Name: "Halloween", Description: "Productos terroríficos y de Halloween", Color: "#7C2D12", Icon: "🎃"},
		{Slug: "divertido", Name: "Divertido", Description: "Productos para reír y pasar un buen rato", Color: "#F59E0B", Icon: "😄"},
		{Slug: "ropa", Name: "Ropa", Description: "Camisetas, calcetines y ropa divertida", Color: "#EC4899", Icon: "👕"},
	}
}

// DefaultCategoryRegistry returns a registry holding DefaultCategories.
func DefaultCategoryRegistry() *CategoryRegistry {
	r, err := NewCategoryRegistry(DefaultCategories()...)
	if err != nil {
		panic(err)
	}
	return r
}
