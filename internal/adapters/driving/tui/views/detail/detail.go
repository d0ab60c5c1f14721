// Package detail provides the product detail view for the TUI.
package detail

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mqmweb/catalog/internal/adapters/driving/tui/messages"
	"github.com/mqmweb/catalog/internal/adapters/driving/tui/styles"
	"github.com/mqmweb/catalog/internal/core/domain"
	"github.com/mqmweb/catalog/internal/core/ports/driven"
	"github.com/mqmweb/catalog/internal/core/ports/driving"
	"github.com/mqmweb/catalog/internal/core/services"
)

const (
	relatedLimit = 4
	linkSource   = "tui"
)

// View is the product detail view.
type View struct {
	styles   *styles.Styles
	catalog  driving.CatalogService
	renderer driven.DescriptionRenderer
	ctx      context.Context
	now      func() time.Time

	product      *domain.Product
	related      []domain.ScoredProduct
	link         string
	scrollOffset int
	width        int
	height       int
}

// NewView creates a new product detail view. renderer may be nil, in which
// case descriptions are shown as written.
func NewView(s *styles.Styles, catalog driving.CatalogService, renderer driven.DescriptionRenderer) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:   s,
		catalog:  catalog,
		renderer: renderer,
		ctx:      context.Background(),
		now:      time.Now,
		width:    80,
		height:   24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// SetProduct shows p and resolves its related products and tracked link.
func (v *View) SetProduct(p domain.Product) {
	v.product = &p
	v.scrollOffset = 0
	v.related = nil
	v.link = ""
	if v.catalog != nil {
		v.related = v.catalog.RelatedProducts(v.ctx, p, relatedLimit)
		v.link = v.catalog.AffiliateURL(p, linkSource, "")
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the detail view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}
	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.scrollOffset > 0 {
			v.scrollOffset--
		}
	case "down", "j":
		if v.scrollOffset < v.maxScrollOffset() {
			v.scrollOffset++
		}
	case "esc", "left", "h":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewBrowse}
		}
	default:
		if idx := relatedIndex(msg.String()); idx >= 0 && idx < len(v.related) {
			next := v.related[idx].Product
			return v, func() tea.Msg {
				return messages.ProductSelected{Product: next}
			}
		}
	}
	return v, nil
}

// relatedIndex maps the keys 1-9 to related product positions.
func relatedIndex(key string) int {
	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		return int(key[0] - '1')
	}
	return -1
}

func (v *View) visibleLines() int {
	return max(v.height-6, 1)
}

func (v *View) maxScrollOffset() int {
	return max(len(v.buildContent())-v.visibleLines(), 0)
}

func (v *View) buildContent() []string {
	if v.product == nil {
		return nil
	}
	p := v.product

	price := services.FormatPrice(p.Price, p.Currency)
	if p.OriginalPrice != nil && *p.OriginalPrice > p.Price {
		price += " (antes " + services.FormatPrice(*p.OriginalPrice, p.Currency) + ")"
	}
	if p.Discount != "" {
		price += " " + p.Discount
	}

	lines := []string{
		formatField("Precio", price),
		formatField("Categorías", strings.Join(p.Categories, ", ")),
	}
	if len(p.Tags) > 0 {
		lines = append(lines, formatField("Etiquetas", strings.Join(p.Tags, ", ")))
	}
	store := p.Merchant
	if store == "" {
		store = services.DomainFromURL(p.AffiliateURL)
	}
	lines = append(lines, formatField("Tienda", store))
	if p.Rating != nil {
		rating := fmt.Sprintf("%.1f/5", *p.Rating)
		if p.ReviewCount != nil {
			rating += fmt.Sprintf(" (%d opiniones)", *p.ReviewCount)
		}
		lines = append(lines, formatField("Valoración", rating))
	}
	lines = append(lines,
		formatField("Publicado", services.FormatRelativeDate(p.CreatedAt, v.now())),
		formatField("Enlace", v.link),
		"",
	)

	description := p.Description
	if v.renderer != nil {
		description = v.renderer.PlainText(description)
	}
	lines = append(lines, strings.Split(strings.TrimSpace(description), "\n")...)

	if len(v.related) > 0 {
		lines = append(lines, "", "Relacionados:")
		for i, r := range v.related {
			lines = append(lines, fmt.Sprintf("  [%d] %s · %s", i+1, r.Product.Title,
				services.FormatPrice(r.Product.Price, r.Product.Currency)))
		}
	}
	return lines
}

func formatField(label, value string) string {
	return fmt.Sprintf("%-12s %s", label+":", value)
}

// View renders the detail view.
func (v *View) View() string {
	var b strings.Builder

	if v.product == nil {
		b.WriteString(v.styles.Muted.Render("Ningún producto seleccionado"))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	title := v.product.Title
	if v.product.IsFeatured {
		title += v.styles.Badge.Render(" ★")
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", min(max(v.width-4, 1), 60)))
	b.WriteString("\n\n")

	lines := v.buildContent()
	visible := v.visibleLines()
	for i := v.scrollOffset; i < len(lines) && i < v.scrollOffset+visible; i++ {
		b.WriteString(v.renderLine(lines[i]))
		b.WriteString("\n")
	}

	if len(lines) > visible {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [Línea %d-%d de %d]",
			v.scrollOffset+1, min(v.scrollOffset+visible, len(lines)), len(lines))))
	}

	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())
	return b.String()
}

func (v *View) renderLine(line string) string {
	switch {
	case line == "Relacionados:":
		return v.styles.Subtitle.Render(line)
	case strings.HasPrefix(line, "  ["):
		return v.styles.Normal.Render(line)
	case strings.HasPrefix(line, "Precio:"):
		return v.styles.Subtitle.Render("Precio:") + v.styles.Price.Render(strings.TrimPrefix(line, "Precio:"))
	}
	if label, value, ok := strings.Cut(line, ":"); ok && len(label) < 12 && !strings.Contains(label, " ") {
		return v.styles.Subtitle.Render(label+":") + v.styles.Normal.Render(value)
	}
	return v.styles.Normal.Render(line)
}

func (v *View) renderHelp() string {
	return v.styles.Help.Render("[↑/↓] desplazar  [1-9] relacionado  [esc] volver")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// Product returns the product on display.
func (v *View) Product() *domain.Product {
	return v.product
}

// Related returns the related products on display.
func (v *View) Related() []domain.ScoredProduct {
	return v.related
}

// Link returns the tracked outbound link of the product on display.
func (v *View) Link() string {
	return v.link
}
