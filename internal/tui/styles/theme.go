package styles

import (
	"fmt"
	"image/color"
	"slices"

	"github.com/charmbracelet/lipgloss/v2"
)

// Theme holds the semantic colors of the form UI.
type Theme struct {
	Name   string
	IsDark bool

	// Brand colors
	Primary color.Color
	Accent  color.Color

	// Background colors
	BgBase   color.Color
	BgSubtle color.Color

	// Foreground colors
	FgBase     color.Color
	FgMuted    color.Color
	FgSubtle   color.Color
	FgInverted color.Color

	// Border colors
	Border      color.Color
	BorderFocus color.Color

	// Semantic colors
	Success color.Color
	Error   color.Color
	Warning color.Color
	Info    color.Color

	styles *Styles
}

// Styles are the lipgloss styles derived from a Theme.
type Styles struct {
	Base  lipgloss.Style
	Title lipgloss.Style
	Muted lipgloss.Style

	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style

	// Field styles
	Label        lipgloss.Style
	LabelFocused lipgloss.Style
	Input        lipgloss.Style
	InputFocused lipgloss.Style
	InputLocked  lipgloss.Style
	Cursor       lipgloss.Style
	Badge        lipgloss.Style
	Help         lipgloss.Style
}

func (t *Theme) S() *Styles {
	if t.styles == nil {
		t.styles = t.buildStyles()
	}
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	base := lipgloss.NewStyle().
		Foreground(t.FgBase)

	input := base.
		BorderStyle(lipgloss.RoundedBorder()).
		Padding(0, 1)

	return &Styles{
		Base: base,

		Title: base.
			Foreground(t.Accent).
			Bold(true).
			MarginBottom(1),

		Muted: base.Foreground(t.FgMuted),

		Success: base.Foreground(t.Success),

		Error: base.Foreground(t.Error),

		Warning: base.Foreground(t.Warning),

		Label: base.Foreground(t.FgMuted),

		LabelFocused: base.
			Foreground(t.Primary).
			Bold(true),

		Input: input.BorderForeground(t.Border),

		InputFocused: input.BorderForeground(t.BorderFocus),

		InputLocked: input.
			BorderForeground(t.FgSubtle).
			Foreground(t.FgSubtle),

		Cursor: lipgloss.NewStyle().
			Background(t.Primary).
			Foreground(t.FgInverted),

		Badge: base.
			Background(t.BgSubtle).
			Foreground(t.FgBase).
			Padding(0, 1),

		Help: base.Foreground(t.FgSubtle),
	}
}

type Manager struct {
	themes  map[string]*Theme
	current *Theme
}

var defaultManager *Manager

func SetDefaultManager(m *Manager) {
	defaultManager = m
}

func DefaultManager() *Manager {
	if defaultManager == nil {
		defaultManager = NewManager(DefaultThemeName)
	}
	return defaultManager
}

func CurrentTheme() *Theme {
	return DefaultManager().Current()
}

// NewManager registers the built-in themes and selects defaultTheme,
// falling back to DefaultThemeName for unknown names.
func NewManager(defaultTheme string) *Manager {
	m := &Manager{
		themes: make(map[string]*Theme),
	}

	m.Register(NewEmberTheme())
	m.Register(NewSlateTheme())

	m.current = m.themes[defaultTheme]
	if m.current == nil {
		m.current = m.themes[DefaultThemeName]
	}

	return m
}

func (m *Manager) Register(theme *Theme) {
	m.themes[theme.Name] = theme
}

func (m *Manager) Current() *Theme {
	return m.current
}

func (m *Manager) SetTheme(name string) error {
	if theme, ok := m.themes[name]; ok {
		m.current = theme
		return nil
	}
	return fmt.Errorf("theme %s not found", name)
}

// Next switches to the theme after the current one in List order, wrapping
// around, and returns it.
func (m *Manager) Next() *Theme {
	names := m.List()
	i := slices.Index(names, m.current.Name)
	m.current = m.themes[names[(i+1)%len(names)]]
	return m.current
}

// List returns the registered theme names, sorted.
func (m *Manager) List() []string {
	names := make([]string, 0, len(m.themes))
	for name := range m.themes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ParseHex converts hex string to color
func ParseHex(hex string) color.Color {
	var r, g, b uint8
	fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b)
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
