package fieldinput

import "github.com/charmbracelet/bubbles/v2/key"

// KeyMap defines the editing keys of a field input.
type KeyMap struct {
	Left      key.Binding
	Right     key.Binding
	Home      key.Binding
	End       key.Binding
	Backspace key.Binding
	Delete    key.Binding
}

// DefaultKeyMap returns the default editing keys
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "ctrl+b"),
			key.WithHelp("←", "move left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "ctrl+f"),
			key.WithHelp("→", "move right"),
		),
		Home: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("home", "line start"),
		),
		End: key.NewBinding(
			key.WithKeys("end"),
			key.WithHelp("end", "line end"),
		),
		Backspace: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("⌫", "delete back"),
		),
		Delete: key.NewBinding(
			key.WithKeys("delete", "ctrl+d"),
			key.WithHelp("del", "delete forward"),
		),
	}
}
