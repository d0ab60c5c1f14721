// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mqmweb/catalog/internal/adapters/driving/tui/styles"
	"github.com/mqmweb/catalog/internal/core/domain"
	"github.com/mqmweb/catalog/internal/core/services"
)

// linesPerItem is the rendered height of one product.
const linesPerItem = 2

// ProductList displays products in a navigable list.
type ProductList struct {
	products []domain.Product
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewProductList creates an empty product list.
func NewProductList(s *styles.Styles) *ProductList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ProductList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the list.
func (l *ProductList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation keys.
func (l *ProductList) Update(msg tea.Msg) (*ProductList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		case "home", "g":
			l.selected = 0
		case "end", "G":
			if len(l.products) > 0 {
				l.selected = len(l.products) - 1
			}
		}
	}
	return l, nil
}

// View renders the visible window of products around the selection.
func (l *ProductList) View() string {
	if len(l.products) == 0 {
		return l.styles.Muted.Render("No hay productos")
	}

	lines := make([]string, 0, len(l.products)*linesPerItem+2)
	lines = append(lines, l.styles.Subtitle.Render(fmt.Sprintf("Productos (%d)", len(l.products))), "")

	visible := max((l.height-2)/linesPerItem, 1)
	start := 0
	if l.selected >= visible {
		start = l.selected - visible + 1
	}
	end := min(start+visible, len(l.products))

	for i := start; i < end; i++ {
		lines = append(lines, l.renderProduct(i, &l.products[i]))
	}
	return strings.Join(lines, "\n")
}

func (l *ProductList) renderProduct(index int, p *domain.Product) string {
	indicator := "  "
	if index == l.selected {
		indicator = "> "
	}

	price := services.FormatPrice(p.Price, p.Currency)
	badge := ""
	if p.IsFeatured {
		badge = " ★"
	}

	titleWidth := max(l.width-lipgloss.Width(price)-8, 10)
	title := fitRunes(p.Title, titleWidth)

	var first string
	if index == l.selected {
		first = l.styles.Selected.Render(fmt.Sprintf("%s%-*s", indicator, titleWidth, title)) +
			" " + l.styles.Price.Render(price)
	} else {
		first = l.styles.Normal.Render(fmt.Sprintf("%s%-*s", indicator, titleWidth, title)) +
			" " + l.styles.Price.Render(price)
	}
	if badge != "" {
		first += l.styles.Badge.Render(badge)
	}

	second := "    " + l.styles.Category.Render(strings.Join(p.Categories, " · "))
	return first + "\n" + second
}

// fitRunes truncates s to n runes, marking the cut with an ellipsis.
func fitRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}

// SetProducts replaces the list contents and resets the selection.
func (l *ProductList) SetProducts(products []domain.Product) {
	l.products = products
	l.selected = 0
}

// Products returns the listed products.
func (l *ProductList) Products() []domain.Product {
	return l.products
}

// Selected returns the index of the selected product.
func (l *ProductList) Selected() int {
	return l.selected
}

// SetSelected moves the selection to index when it is in range.
func (l *ProductList) SetSelected(index int) {
	if index >= 0 && index < len(l.products) {
		l.selected = index
	}
}

// SelectedProduct returns the selected product, or nil if the list is empty.
func (l *ProductList) SelectedProduct() *domain.Product {
	if l.selected < 0 || l.selected >= len(l.products) {
		return nil
	}
	return &l.products[l.selected]
}

// MoveUp moves the selection up.
func (l *ProductList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves the selection down.
func (l *ProductList) MoveDown() {
	if l.selected < len(l.products)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *ProductList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of products.
func (l *ProductList) Count() int {
	return len(l.products)
}
