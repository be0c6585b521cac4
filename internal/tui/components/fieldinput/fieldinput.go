// Package fieldinput renders a single-line text input bound to a field
// controller.
package fieldinput

import (
	"strings"
	"unicode/utf8"

	"github.com/billie-coop/fieldstate/internal/field"
	"github.com/billie-coop/fieldstate/internal/tui/components/core"
	"github.com/billie-coop/fieldstate/internal/tui/styles"
	"github.com/charmbracelet/bubbles/v2/key"
	"github.com/charmbracelet/bubbles/v2/spinner"
	tea "github.com/charmbracelet/bubbletea/v2"
)

// Controller is the field controller type a Model edits.
type Controller = field.Controller[string, string]

// Model is a text input whose value lives in a field controller.
// Edits go through the controller's value setter, so a read-only field
// ignores typing.
type Model struct {
	core.FocusableBase

	label       string
	placeholder string
	ctrl        *Controller
	keys        KeyMap

	cursorPos int
	width     int

	spinner  spinner.Model
	spinning bool
}

var (
	_ core.Component = (*Model)(nil)
	_ core.Focusable = (*Model)(nil)
	_ core.Sizeable  = (*Model)(nil)
)

// New creates an input for ctrl with the cursor at the end of its value.
func New(label string, ctrl *Controller) *Model {
	return &Model{
		label:     label,
		ctrl:      ctrl,
		keys:      DefaultKeyMap(),
		cursorPos: utf8.RuneCountInString(ctrl.State().Value()),
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

// ID returns the bound controller's ID.
func (m *Model) ID() string { return m.ctrl.ID() }

// Label returns the field label.
func (m *Model) Label() string { return m.label }

// Controller returns the bound controller.
func (m *Model) Controller() *Controller { return m.ctrl }

// Placeholder sets the text shown while the value is empty.
func (m *Model) Placeholder(placeholder string) {
	m.placeholder = placeholder
}

// SetSize implements core.Sizeable. Only the width is used.
func (m *Model) SetSize(width, height int) tea.Cmd {
	m.width = width
	return nil
}

// Init implements core.Component
func (m *Model) Init() tea.Cmd {
	return m.SpinnerCmd()
}

// SpinnerCmd starts the validation spinner if an async validation is
// pending and the spinner is not already running.
func (m *Model) SpinnerCmd() tea.Cmd {
	if m.spinning || !m.ctrl.Validating() {
		return nil
	}
	m.spinning = true
	return m.spinner.Tick
}

// Update implements core.Component
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if msg.ID != m.spinner.ID() {
			return nil
		}
		if !m.ctrl.Validating() {
			m.spinning = false
			return nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd

	case tea.KeyPressMsg:
		if !m.IsFocused() {
			return nil
		}
		return m.handleKey(msg)
	}
	return nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	value := []rune(m.ctrl.State().Value())
	m.cursorPos = min(max(m.cursorPos, 0), len(value))

	switch {
	case key.Matches(msg, m.keys.Left):
		if m.cursorPos > 0 {
			m.cursorPos--
		}
	case key.Matches(msg, m.keys.Right):
		if m.cursorPos < len(value) {
			m.cursorPos++
		}
	case key.Matches(msg, m.keys.Home):
		m.cursorPos = 0
	case key.Matches(msg, m.keys.End):
		m.cursorPos = len(value)
	case key.Matches(msg, m.keys.Backspace):
		if m.cursorPos > 0 {
			next := append(value[:m.cursorPos-1:m.cursorPos-1], value[m.cursorPos:]...)
			return m.edit(string(next), m.cursorPos-1)
		}
	case key.Matches(msg, m.keys.Delete):
		if m.cursorPos < len(value) {
			next := append(value[:m.cursorPos:m.cursorPos], value[m.cursorPos+1:]...)
			return m.edit(string(next), m.cursorPos)
		}
	default:
		text := msg.String()
		if text == "space" {
			text = " "
		}
		// Regular character input
		if utf8.RuneCountInString(text) == 1 {
			next := string(value[:m.cursorPos]) + text + string(value[m.cursorPos:])
			return m.edit(next, m.cursorPos+1)
		}
	}
	return nil
}

// edit applies a user edit. Read-only fields have no setter and drop it.
func (m *Model) edit(value string, cursor int) tea.Cmd {
	setValue := m.ctrl.ValueSetter()
	if setValue == nil {
		return nil
	}
	setValue(value)
	m.cursorPos = cursor
	if !m.ctrl.State().EditedManually() {
		m.ctrl.SetEditedManually(true)
	}
	return m.SpinnerCmd()
}

// View implements core.Component
func (m *Model) View() string {
	s := styles.CurrentTheme().S()
	st := m.ctrl.State()

	var b strings.Builder

	labelStyle := s.Label
	if m.IsFocused() {
		labelStyle = s.LabelFocused
	}
	b.WriteString(labelStyle.Render(m.label))
	if badges := m.badges(st); badges != "" {
		b.WriteString(" " + s.Muted.Render(badges))
	}
	b.WriteString("\n")

	inputStyle := s.Input
	switch {
	case st.ReadOnly():
		inputStyle = s.InputLocked
	case m.IsFocused():
		inputStyle = s.InputFocused
	}
	if m.width > 0 {
		inputStyle = inputStyle.Width(m.width)
	}
	b.WriteString(inputStyle.Render(m.renderValue(st.Value(), st.ReadOnly())))
	b.WriteString("\n")

	b.WriteString(m.renderStatus(st))

	return b.String()
}

func (m *Model) badges(st field.State[string, string]) string {
	var marks []string
	if st.ReadOnly() {
		marks = append(marks, styles.LockIcon+" read-only")
	}
	if st.Autovalidate() {
		marks = append(marks, styles.AutoIcon+" auto")
	}
	if st.EditedManually() {
		marks = append(marks, styles.EditedIcon+" edited")
	}
	return strings.Join(marks, "  ")
}

func (m *Model) renderValue(value string, locked bool) string {
	s := styles.CurrentTheme().S()

	if !m.IsFocused() || locked {
		if value == "" && m.placeholder != "" {
			return s.Muted.Render(m.placeholder)
		}
		return value
	}

	// Show cursor
	runes := []rune(value)
	pos := min(max(m.cursorPos, 0), len(runes))
	if pos < len(runes) {
		return string(runes[:pos]) + s.Cursor.Render(string(runes[pos])) + string(runes[pos+1:])
	}
	return value + s.Cursor.Render(" ")
}

func (m *Model) renderStatus(st field.State[string, string]) string {
	s := styles.CurrentTheme().S()

	switch {
	case m.ctrl.Validating():
		return s.Muted.Render(m.spinner.View() + " checking" + styles.PendingIcon)
	case !st.IsValid():
		msg, _ := st.Error()
		return s.Error.Render(styles.ErrorIcon + " " + msg)
	case st.EditedManually():
		return s.Success.Render(styles.CheckIcon)
	}
	return ""
}
