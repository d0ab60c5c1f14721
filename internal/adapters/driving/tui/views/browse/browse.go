// Package browse provides the product search and listing view for the TUI.
package browse

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mqmweb/catalog/internal/adapters/driving/tui/components/input"
	"github.com/mqmweb/catalog/internal/adapters/driving/tui/components/list"
	"github.com/mqmweb/catalog/internal/adapters/driving/tui/components/status"
	"github.com/mqmweb/catalog/internal/adapters/driving/tui/keymap"
	"github.com/mqmweb/catalog/internal/adapters/driving/tui/messages"
	"github.com/mqmweb/catalog/internal/adapters/driving/tui/styles"
	"github.com/mqmweb/catalog/internal/core/domain"
	"github.com/mqmweb/catalog/internal/core/ports/driving"
)

// LinkSource is the utm_source stamped on links resolved from the TUI.
const LinkSource = "tui"

// FeaturedFilter cycles through the featured flag filters.
type FeaturedFilter int

const (
	FeaturedAll FeaturedFilter = iota
	FeaturedOnly
	FeaturedExcluded
)

// Next returns the filter that follows f.
func (f FeaturedFilter) Next() FeaturedFilter {
	return (f + 1) % 3
}

// Value returns the QuerySpec featured value for f.
func (f FeaturedFilter) Value() *bool {
	switch f {
	case FeaturedOnly:
		v := true
		return &v
	case FeaturedExcluded:
		v := false
		return &v
	default:
		return nil
	}
}

// String returns the label shown in the status bar.
func (f FeaturedFilter) String() string {
	switch f {
	case FeaturedOnly:
		return "destacados"
	case FeaturedExcluded:
		return "no destacados"
	default:
		return ""
	}
}

var sortCycle = []domain.SortOrder{domain.SortNewest, domain.SortOldest, domain.SortTitle}

// View represents the browse view with input, product list and status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.SearchInput
	list      *list.ProductList
	statusbar *status.Bar

	catalog driving.CatalogService
	ctx     context.Context

	width      int
	height     int
	ready      bool
	err        error
	focusInput bool // true while typing, false while navigating results
	featured   FeaturedFilter
	sortIndex  int
	lastQuery  string
}

// NewView creates a new browse view.
func NewView(s *styles.Styles, km *keymap.KeyMap, catalog driving.CatalogService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:     s,
		keymap:     km,
		input:      input.NewSearchInput(s),
		list:       list.NewProductList(s),
		statusbar:  status.NewBar(s, km),
		catalog:    catalog,
		ctx:        context.Background(),
		width:      80,
		height:     24,
		focusInput: true,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init starts the cursor and lists the whole catalog.
func (v *View) Init() tea.Cmd {
	v.statusbar.SetState(status.StateLoading)
	return tea.Batch(v.input.Init(), v.runQuery())
}

// Update handles messages for the browse view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.ProductsLoaded:
		v.handleProductsLoaded(msg)
		return v, nil

	case messages.CatalogReloaded:
		if msg.Err != nil {
			v.setError(msg.Err)
			return v, nil
		}
		v.statusbar.SetState(status.StateLoading)
		return v, v.runQuery()

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.focusInput {
		switch msg.Type { //nolint:exhaustive // only submit and cancel are special while typing
		case tea.KeyEnter:
			v.lastQuery = v.input.Value()
			v.statusbar.SetState(status.StateLoading)
			return v, v.runQuery()
		case tea.KeyEsc:
			if v.list.Count() > 0 {
				v.focusResults()
			} else {
				v.input.Reset()
			}
			return v, nil
		}
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}

	key := msg.String()
	switch {
	case keymap.Matches(key, v.keymap.Link):
		return v, v.resolveLink()
	case keymap.Matches(key, v.keymap.Details):
		return v, v.openSelected()
	case keymap.Matches(key, v.keymap.NewSearch):
		v.focusSearch()
		return v, nil
	case keymap.Matches(key, v.keymap.Featured):
		v.featured = v.featured.Next()
		return v, v.runQuery()
	case keymap.Matches(key, v.keymap.Sort):
		v.sortIndex = (v.sortIndex + 1) % len(sortCycle)
		return v, v.runQuery()
	case keymap.Matches(key, v.keymap.Reload):
		v.statusbar.SetState(status.StateLoading)
		return v, v.reload()
	case keymap.Matches(key, v.keymap.Back):
		v.focusSearch()
		return v, nil
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

// Spec returns the query the view currently shows.
func (v *View) Spec() domain.QuerySpec {
	return domain.QuerySpec{
		Search:   v.lastQuery,
		Featured: v.featured.Value(),
		SortBy:   sortCycle[v.sortIndex],
	}
}

func (v *View) runQuery() tea.Cmd {
	spec := v.Spec()
	return func() tea.Msg {
		if v.catalog == nil {
			return messages.ErrorOccurred{Err: ErrNoCatalogService}
		}
		products, err := v.catalog.Query(v.ctx, spec)
		return messages.ProductsLoaded{Products: products, Err: err}
	}
}

func (v *View) reload() tea.Cmd {
	return func() tea.Msg {
		if v.catalog == nil {
			return messages.ErrorOccurred{Err: ErrNoCatalogService}
		}
		report, err := v.catalog.Reload(v.ctx)
		return messages.CatalogReloaded{Report: report, Err: err}
	}
}

func (v *View) openSelected() tea.Cmd {
	p := v.list.SelectedProduct()
	if p == nil {
		return nil
	}
	product := *p
	return func() tea.Msg {
		return messages.ProductSelected{Product: product}
	}
}

// resolveLink shows the tracked outbound link of the selected product.
func (v *View) resolveLink() tea.Cmd {
	p := v.list.SelectedProduct()
	if p == nil || v.catalog == nil {
		return nil
	}
	v.statusbar.SetState(status.StateInfo)
	v.statusbar.SetMessage(v.catalog.AffiliateURL(*p, LinkSource, ""))
	return nil
}

func (v *View) handleProductsLoaded(msg messages.ProductsLoaded) {
	if msg.Err != nil {
		v.setError(msg.Err)
		return
	}

	v.err = nil
	v.list.SetProducts(msg.Products)
	v.statusbar.SetMessage("")
	v.statusbar.SetState(status.StateResults)
	v.statusbar.SetResultCount(len(msg.Products))
	v.statusbar.SetFilters(v.filterSummary())

	if len(msg.Products) > 0 {
		v.focusResults()
	}
}

func (v *View) filterSummary() string {
	parts := make([]string, 0, 3)
	if v.lastQuery != "" {
		parts = append(parts, fmt.Sprintf("%q", v.lastQuery))
	}
	if f := v.featured.String(); f != "" {
		parts = append(parts, f)
	}
	parts = append(parts, "orden: "+sortCycle[v.sortIndex].String())
	return strings.Join(parts, " · ")
}

func (v *View) setError(err error) {
	v.err = err
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(err.Error())
}

func (v *View) focusResults() {
	v.focusInput = false
	v.input.Blur()
}

func (v *View) focusSearch() {
	v.focusInput = true
	v.input.Focus()
	v.input.SetValue("")
	v.statusbar.SetState(status.StateReady)
}

// View renders the browse view.
func (v *View) View() string {
	if !v.ready {
		return "Iniciando..."
	}

	sections := make([]string, 0, 8)
	sections = append(sections, v.styles.Title.Render("mqm · catálogo"), "", v.input.View(), "")

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	sections = append(sections, v.list.View(), "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-10)
	v.statusbar.SetWidth(width)
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Products returns the listed products.
func (v *View) Products() []domain.Product {
	return v.list.Products()
}

// SelectedProduct returns the highlighted product.
func (v *View) SelectedProduct() *domain.Product {
	return v.list.SelectedProduct()
}

// StatusMessage returns the status bar message.
func (v *View) StatusMessage() string {
	return v.statusbar.Message()
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// InputFocused returns whether the search input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}

// Featured returns the active featured filter.
func (v *View) Featured() FeaturedFilter {
	return v.featured
}
