// Package input provides text input components for the TUI.
package input

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mqmweb/catalog/internal/adapters/driving/tui/styles"
)

const minInputWidth = 20

// SearchInput is the product search box.
type SearchInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	width     int
}

// NewSearchInput creates a focused search box.
func NewSearchInput(s *styles.Styles) *SearchInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "Buscar productos..."
	ti.Prompt = "› "
	ti.Focus()
	ti.CharLimit = 120
	ti.Width = 50

	return &SearchInput{
		textinput: ti,
		styles:    s,
		width:     50,
	}
}

// Init starts the cursor blinking.
func (s *SearchInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update forwards messages to the text input.
func (s *SearchInput) Update(msg tea.Msg) (*SearchInput, tea.Cmd) {
	var cmd tea.Cmd
	s.textinput, cmd = s.textinput.Update(msg)
	return s, cmd
}

// View renders the search box with its label.
func (s *SearchInput) View() string {
	label := s.styles.Title.Render("Buscar ")
	box := s.styles.InputField.Render(s.textinput.View())
	return lipgloss.JoinHorizontal(lipgloss.Center, label, box)
}

// Value returns the trimmed query.
func (s *SearchInput) Value() string {
	return strings.TrimSpace(s.textinput.Value())
}

// SetValue replaces the query.
func (s *SearchInput) SetValue(value string) {
	s.textinput.SetValue(value)
}

// Focus gives the box keyboard focus.
func (s *SearchInput) Focus() tea.Cmd {
	return s.textinput.Focus()
}

// Blur removes keyboard focus.
func (s *SearchInput) Blur() {
	s.textinput.Blur()
}

// Focused reports whether the box has focus.
func (s *SearchInput) Focused() bool {
	return s.textinput.Focused()
}

// SetWidth fits the box to width, leaving room for the label and border.
func (s *SearchInput) SetWidth(width int) {
	s.width = width
	s.textinput.Width = max(width-12, minInputWidth)
}

// Width returns the current width.
func (s *SearchInput) Width() int {
	return s.width
}

// Reset clears the query.
func (s *SearchInput) Reset() {
	s.textinput.Reset()
}
