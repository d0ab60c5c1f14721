package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mqmweb/catalog/internal/adapters/driving/tui/keymap"
	"github.com/mqmweb/catalog/internal/adapters/driving/tui/messages"
	"github.com/mqmweb/catalog/internal/adapters/driving/tui/styles"
	"github.com/mqmweb/catalog/internal/adapters/driving/tui/views/browse"
	"github.com/mqmweb/catalog/internal/adapters/driving/tui/views/detail"
	"github.com/mqmweb/catalog/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap
	help   help.Model

	browseView *browse.View
	detailView *detail.View

	// currentView tracks which view is active; previousView is where help returns to.
	currentView  messages.ViewType
	previousView messages.ViewType

	err    error
	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	h := help.New()
	h.ShowAll = true

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		help:        h,
		browseView:  browse.NewView(s, km, ports.Catalog),
		detailView:  detail.NewView(s, ports.Catalog, ports.Renderer),
		currentView: messages.ViewBrowse,
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.browseView.WithContext(ctx)
	a.detailView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("mqm · catálogo"),
		a.browseView.Init(),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case messages.ProductSelected:
		a.detailView.SetProduct(msg.Product)
		a.currentView = messages.ViewDetail
		return a, nil

	case messages.ViewChanged:
		a.currentView = msg.View
		return a, nil

	case messages.ProductsLoaded:
		a.err = msg.Err
		a.browseView, cmd = a.browseView.Update(msg)
		return a, cmd

	case messages.CatalogReloaded:
		a.err = msg.Err
		a.browseView, cmd = a.browseView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		a.browseView, cmd = a.browseView.Update(msg)
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	if a.currentView == messages.ViewBrowse {
		a.browseView, cmd = a.browseView.Update(msg)
	}
	return a, cmd
}

func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	key := msg.String()

	if key == "ctrl+c" {
		return a, tea.Quit
	}

	// While typing, every printable key belongs to the search box.
	typing := a.currentView == messages.ViewBrowse && a.browseView.InputFocused()
	if !typing {
		switch {
		case key == "q":
			return a, tea.Quit
		case keymap.Matches(key, a.keymap.Help):
			if a.currentView == messages.ViewHelp {
				a.currentView = a.previousView
			} else {
				a.previousView = a.currentView
				a.currentView = messages.ViewHelp
			}
			return a, nil
		}
	}

	switch a.currentView {
	case messages.ViewBrowse:
		a.browseView, cmd = a.browseView.Update(msg)
	case messages.ViewDetail:
		a.detailView, cmd = a.detailView.Update(msg)
	case messages.ViewHelp:
		if keymap.Matches(key, a.keymap.Back) {
			a.currentView = a.previousView
		}
	}
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Iniciando..."
	}

	switch a.currentView {
	case messages.ViewDetail:
		return a.detailView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.browseView.View()
	}
}

func (a *App) viewHelp() string {
	return a.styles.Title.Render("Atajos de teclado") + "\n\n" +
		a.help.FullHelpView(a.keymap.FullHelp()) + "\n\n" +
		a.styles.Help.Render("[esc] volver")
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Products returns the products listed in the browse view.
func (a *App) Products() []domain.Product {
	return a.browseView.Products()
}

// DetailProduct returns the product open in the detail view.
func (a *App) DetailProduct() *domain.Product {
	return a.detailView.Product()
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has received its dimensions.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.help.Width = width
	a.browseView.SetDimensions(width, height)
	a.detailView.SetDimensions(width, height)
}
