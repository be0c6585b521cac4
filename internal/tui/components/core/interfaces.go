package core

import tea "github.com/charmbracelet/bubbletea/v2"

// Component is the base interface for components embedded in a model.
// Components update in place and return follow-up commands.
type Component interface {
	Init() tea.Cmd
	Update(tea.Msg) tea.Cmd
	View() string
}

// Sizeable components can be resized
type Sizeable interface {
	SetSize(width, height int) tea.Cmd
}

// Focusable components can receive keyboard focus
type Focusable interface {
	Focus() tea.Cmd
	Blur() tea.Cmd
	IsFocused() bool
}

// FocusableBase provides basic focus management
type FocusableBase struct {
	focused bool
}

// IsFocused returns whether the component is focused
func (f *FocusableBase) IsFocused() bool {
	return f.focused
}

// Focus focuses the component
func (f *FocusableBase) Focus() tea.Cmd {
	f.focused = true
	return nil
}

// Blur removes focus from the component
func (f *FocusableBase) Blur() tea.Cmd {
	f.focused = false
	return nil
}
