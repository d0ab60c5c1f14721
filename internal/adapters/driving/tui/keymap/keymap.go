// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	Quit key.Binding
	Help key.Binding
	Back key.Binding

	// Submit runs the query typed in the search box.
	Submit key.Binding

	Up   key.Binding
	Down key.Binding

	// Link shows the tracked affiliate link of the selected product.
	Link key.Binding

	// Details opens the selected product.
	Details key.Binding

	// NewSearch returns focus to the search box.
	NewSearch key.Binding

	// Featured cycles the featured filter: all, featured only, non-featured only.
	Featured key.Binding

	// Sort cycles newest, oldest and title order.
	Sort key.Binding

	// Reload reloads the catalog from its source.
	Reload key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "search"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Link: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "link"),
		),
		Details: key.NewBinding(
			key.WithKeys("d", "right", "l"),
			key.WithHelp("d", "details"),
		),
		NewSearch: key.NewBinding(
			key.WithKeys("/", "n"),
			key.WithHelp("/", "search"),
		),
		Featured: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "featured"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
	}
}

// ShortHelp returns the hints shown while typing.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Back}
}

// ResultsHelp returns the hints shown while browsing products.
func (k *KeyMap) ResultsHelp() []key.Binding {
	return []key.Binding{k.Link, k.Details, k.NewSearch, k.Featured, k.Sort, k.Quit}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Link, k.Details},
		{k.Submit, k.NewSearch, k.Back},
		{k.Featured, k.Sort, k.Reload},
		{k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
