// Package tui is the terminal front end for a form of field controllers.
package tui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/billie-coop/fieldstate/internal/field"
	"github.com/billie-coop/fieldstate/internal/logger"
	"github.com/billie-coop/fieldstate/internal/tui/components/fieldinput"
	"github.com/billie-coop/fieldstate/internal/tui/components/help"
	"github.com/billie-coop/fieldstate/internal/tui/components/status"
	"github.com/billie-coop/fieldstate/internal/tui/events"
	"github.com/billie-coop/fieldstate/internal/tui/styles"
	"github.com/charmbracelet/bubbles/v2/key"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
)

// Model is the form screen: a column of field inputs, a status bar and a
// help panel.
type Model struct {
	width  int
	height int
	title  string

	fields    []*fieldinput.Model
	focus     int
	keys      KeyMap
	statusBar *status.Component
	help      *help.Component

	// Controller emissions arrive on arbitrary goroutines and are
	// forwarded into the program through the broker.
	broker       *events.Broker[string]
	changes      <-chan string
	unsubscribes []func()

	logger *slog.Logger
}

// Option configures a Model.
type Option func(*Model)

// WithTitle sets the heading shown above the fields.
func WithTitle(title string) Option {
	return func(m *Model) {
		m.title = title
	}
}

// WithLogger sets the logger for UI events.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// New creates a form over fields and subscribes to their controllers.
// The first field gets focus.
func New(fields []*fieldinput.Model, opts ...Option) *Model {
	keys := DefaultKeyMap()
	m := &Model{
		title:     "Form",
		fields:    fields,
		keys:      keys,
		statusBar: status.New(),
		help:      help.New(keys.helpSections()...),
		broker:    events.NewBroker[string](events.DefaultBufferSize),
		logger:    logger.Discard(),
	}
	for _, opt := range opts {
		opt(m)
	}

	m.changes = m.broker.Subscribe()
	for _, f := range fields {
		id := f.ID()
		unsubscribe := f.Controller().OnChange(func(field.State[string, string]) {
			m.broker.Publish(id)
		})
		m.unsubscribes = append(m.unsubscribes, unsubscribe)
	}

	if len(fields) > 0 {
		fields[0].Focus()
	}
	m.refreshSummary()

	return m
}

// Close detaches from the controllers and closes them.
func (m *Model) Close() {
	for _, unsubscribe := range m.unsubscribes {
		unsubscribe()
	}
	m.unsubscribes = nil
	for _, f := range m.fields {
		f.Controller().Close()
	}
	m.broker.Clear()
}

// Focused returns the focused field, or nil for an empty form.
func (m *Model) Focused() *fieldinput.Model {
	if len(m.fields) == 0 {
		return nil
	}
	return m.fields[m.focus]
}

// Init initializes the form
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.listenForChanges()}
	for _, f := range m.fields {
		cmds = append(cmds, f.Init())
	}
	cmds = append(cmds, m.statusBar.ShowInfo("tab to move between fields, f1 for help"))
	return tea.Batch(cmds...)
}

// Update handles messages and routes them to the components
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case FieldChangedMsg:
		// Continue listening for more changes
		cmds = append(cmds, m.listenForChanges())
		if f := m.fieldByID(msg.FieldID); f != nil {
			cmds = append(cmds, f.SpinnerCmd())
		}
		m.refreshSummary()
		return m, tea.Batch(cmds...)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		inputWidth := min(max(m.width-4, 10), 60)
		for _, f := range m.fields {
			cmds = append(cmds, f.SetSize(inputWidth, 3))
		}
		cmds = append(cmds, m.statusBar.SetSize(m.width, 1))
		cmds = append(cmds, m.help.SetSize(m.width, m.height))
		return m, tea.Batch(cmds...)

	case tea.KeyPressMsg:
		return m, m.handleKey(msg)
	}

	// Everything else (spinner ticks, status timers) goes to all components
	for _, f := range m.fields {
		cmds = append(cmds, f.Update(msg))
	}
	cmds = append(cmds, m.statusBar.Update(msg))
	m.refreshSummary()
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.Toggle()
		return nil
	case key.Matches(msg, m.keys.Theme):
		theme := styles.DefaultManager().Next()
		m.logger.Debug("theme changed", slog.String("theme", theme.Name))
		return m.statusBar.ShowInfo("theme: " + theme.Name)
	case key.Matches(msg, m.keys.Submit):
		return m.validateAll()
	}

	f := m.Focused()
	if f == nil {
		return nil
	}
	ctrl := f.Controller()

	switch {
	case key.Matches(msg, m.keys.Next):
		return m.moveFocus(1)
	case key.Matches(msg, m.keys.Prev):
		return m.moveFocus(-1)
	case key.Matches(msg, m.keys.ReadOnly):
		if ctrl.State().ReadOnly() {
			ctrl.UnmarkReadOnly()
			return m.statusBar.ShowInfo(f.Label() + " is editable")
		}
		ctrl.MarkReadOnly()
		return m.statusBar.ShowInfo(f.Label() + " is read-only")
	case key.Matches(msg, m.keys.Autovalidate):
		on := !ctrl.State().Autovalidate()
		ctrl.SetAutovalidate(on)
		m.logger.Debug("autovalidate toggled", slog.String("field", f.Label()), slog.Bool("on", on))
		return m.statusBar.ShowInfo(fmt.Sprintf("%s autovalidate %s", f.Label(), onOff(on)))
	case key.Matches(msg, m.keys.ClearErrors):
		ctrl.ClearErrors()
		return nil
	}

	return f.Update(msg)
}

func (m *Model) moveFocus(delta int) tea.Cmd {
	if len(m.fields) < 2 {
		return nil
	}
	cmds := []tea.Cmd{m.fields[m.focus].Blur()}
	m.focus = (m.focus + delta + len(m.fields)) % len(m.fields)
	cmds = append(cmds, m.fields[m.focus].Focus())
	return tea.Batch(cmds...)
}

// validateAll runs every field's synchronous validator.
func (m *Model) validateAll() tea.Cmd {
	invalid := 0
	pending := 0
	for _, f := range m.fields {
		if !f.Controller().Validate() {
			invalid++
		}
		if f.Controller().Validating() {
			pending++
		}
	}
	m.logger.Info("form validated", slog.Int("invalid", invalid), slog.Int("pending", pending))

	switch {
	case invalid > 0:
		return m.statusBar.ShowError(fmt.Sprintf("%d invalid %s", invalid, plural(invalid, "field", "fields")))
	case pending > 0:
		return m.statusBar.ShowWarning(fmt.Sprintf("still checking %d %s", pending, plural(pending, "field", "fields")))
	}
	return m.statusBar.ShowSuccess("all fields valid")
}

func (m *Model) fieldByID(id string) *fieldinput.Model {
	for _, f := range m.fields {
		if f.ID() == id {
			return f
		}
	}
	return nil
}

// refreshSummary puts the per-field validity in the status bar.
func (m *Model) refreshSummary() {
	parts := make([]string, 0, len(m.fields))
	for _, f := range m.fields {
		mark := styles.CheckIcon
		switch {
		case f.Controller().Validating():
			mark = styles.PendingIcon
		case !f.Controller().State().IsValid():
			mark = styles.ErrorIcon
		}
		parts = append(parts, f.Label()+" "+mark)
	}
	m.statusBar.SetLeftContent(strings.Join(parts, " · "))
}

// View renders the form
func (m *Model) View() tea.View {
	return tea.NewView(m.render())
}

func (m *Model) render() string {
	s := styles.CurrentTheme().S()

	var sections []string
	sections = append(sections, s.Title.Render(m.title))
	for _, f := range m.fields {
		sections = append(sections, f.View())
	}
	if m.help.Visible() {
		sections = append(sections, m.help.View())
	} else {
		sections = append(sections, s.Help.Render("f1 help · esc quit"))
	}

	body := lipgloss.JoinVertical(lipgloss.Left, sections...)
	if m.height > 0 {
		body = lipgloss.NewStyle().Height(max(m.height-1, 0)).Render(body)
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, m.statusBar.View())
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
