package tui

import (
	"github.com/billie-coop/fieldstate/internal/tui/components/help"
	"github.com/charmbracelet/bubbles/v2/key"
)

// KeyMap defines the form-level key bindings.
type KeyMap struct {
	Next         key.Binding
	Prev         key.Binding
	ReadOnly     key.Binding
	Autovalidate key.Binding
	ClearErrors  key.Binding
	Submit       key.Binding
	Theme        key.Binding
	Help         key.Binding
	Quit         key.Binding
}

// DefaultKeyMap returns the default form key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "previous field"),
		),
		ReadOnly: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "toggle read-only"),
		),
		Autovalidate: key.NewBinding(
			key.WithKeys("ctrl+a"),
			key.WithHelp("ctrl+a", "toggle autovalidate"),
		),
		ClearErrors: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("ctrl+e", "clear errors"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "validate all"),
		),
		Theme: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "next theme"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("esc", "quit"),
		),
	}
}

// helpSections groups the bindings for the help panel.
func (k KeyMap) helpSections() []help.Section {
	return []help.Section{
		{
			Title:    "Navigation",
			Bindings: []key.Binding{k.Next, k.Prev, k.Theme, k.Help, k.Quit},
		},
		{
			Title:    "Field",
			Bindings: []key.Binding{k.ReadOnly, k.Autovalidate, k.ClearErrors, k.Submit},
		},
	}
}
