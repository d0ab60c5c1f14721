package driven

import "github.com/mqmweb/catalog/internal/core/domain"

// ProductValidator turns a raw catalog document into validated products.
// Validation is all-or-nothing: any invalid record rejects the batch
// with an error wrapping domain.ErrValidation.
type ProductValidator interface {
	Validate(raw any) ([]domain.Product, []domain.ValidationWarning, error)
}

// DescriptionRenderer renders markdown product descriptions.
type DescriptionRenderer interface {
	// RenderHTML converts markdown to HTML.
	RenderHTML(markdown string) (string, error)

	// PlainText strips markdown formatting.
	PlainText(markdown string) string
}
