// Package help renders the key reference panel as markdown.
package help

import (
	"fmt"
	"strings"

	"github.com/billie-coop/fieldstate/internal/tui/styles"
	"github.com/charmbracelet/bubbles/v2/key"
	tea "github.com/charmbracelet/bubbletea/v2"
)

// Section is a titled group of key bindings.
type Section struct {
	Title    string
	Bindings []key.Binding
}

// Component shows the key reference. Rendering is cached per width and theme.
type Component struct {
	sections []Section
	width    int
	visible  bool

	rendered      string
	renderedWidth int
	renderedTheme string
}

// New creates a hidden help panel.
func New(sections ...Section) *Component {
	return &Component{sections: sections}
}

// Toggle shows or hides the panel.
func (c *Component) Toggle() {
	c.visible = !c.visible
}

// Visible reports whether the panel is shown.
func (c *Component) Visible() bool { return c.visible }

// SetSize implements the Sizeable interface
func (c *Component) SetSize(width, height int) tea.Cmd {
	c.width = width
	return nil
}

// Init implements the Component interface
func (c *Component) Init() tea.Cmd { return nil }

// Update implements the Component interface
func (c *Component) Update(tea.Msg) tea.Cmd { return nil }

// View implements the Component interface
func (c *Component) View() string {
	if !c.visible {
		return ""
	}
	width := c.width
	if width <= 0 {
		width = 80
	}
	theme := styles.CurrentTheme().Name
	if c.rendered == "" || c.renderedWidth != width || c.renderedTheme != theme {
		// A render error still yields the raw markdown.
		c.rendered, _ = styles.RenderMarkdown(c.Markdown(), width)
		c.renderedWidth = width
		c.renderedTheme = theme
	}
	return c.rendered
}

// Markdown returns the panel source.
func (c *Component) Markdown() string {
	var b strings.Builder
	b.WriteString("# Keys\n")
	for _, s := range c.sections {
		fmt.Fprintf(&b, "\n## %s\n\n", s.Title)
		b.WriteString("| Key | Action |\n|-----|--------|\n")
		for _, binding := range s.Bindings {
			if !binding.Enabled() {
				continue
			}
			h := binding.Help()
			fmt.Fprintf(&b, "| `%s` | %s |\n", h.Key, h.Desc)
		}
	}
	return b.String()
}
