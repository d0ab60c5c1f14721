package product

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/mqmweb/catalog/internal/core/domain"
)

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9\s-]`)
	whitespace   = regexp.MustCompile(`\s+`)
	hyphenRuns   = regexp.MustCompile(`-+`)
)

// Slugify derives a URL slug from free text.
// "Taza Cinéfilos: Edición ¡Especial!" becomes "taza-cinefilos-edicion-especial".
func Slugify(s string) string {
	// transform.Chain is stateful, so build one per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, strings.ToLower(s))
	if err != nil {
		folded = strings.ToLower(s)
	}
	folded = nonSlugChars.ReplaceAllString(folded, "")
	folded = strings.TrimSpace(folded)
	folded = whitespace.ReplaceAllString(folded, "-")
	folded = hyphenRuns.ReplaceAllString(folded, "-")
	return strings.Trim(folded, "-")
}

// CategorySlug maps a category label to its slug in r, falling back to the
// label's Slugify form. Catalog loading and catalog queries both map labels
// through it, so a label that matches at load time also matches in a query.
func CategorySlug(r *domain.CategoryRegistry, label string) string {
	return r.Resolve(label, Slugify)
}

// Truncate keeps the first n runes of s and appends "...".
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		r = r[:n]
	}
	return string(r) + "..."
}
