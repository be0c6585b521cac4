package status

import (
	"fmt"
	"time"

	"github.com/billie-coop/fieldstate/internal/tui/styles"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// MessageType represents the type of status message
type MessageType int

const (
	Info MessageType = iota
	Warning
	Error
	Success
)

// DefaultClearAfter is how long a status message stays visible.
const DefaultClearAfter = 5 * time.Second

// StatusMessage represents a status bar message
type StatusMessage struct {
	Content   string
	Type      MessageType
	Timestamp time.Time
}

// Component implements a status bar that shows temporary messages
type Component struct {
	message     *StatusMessage
	width       int
	leftContent string

	clearAfter time.Duration
}

// New creates a new status bar component
func New() *Component {
	return &Component{
		clearAfter: DefaultClearAfter,
	}
}

// SetMessage sets a status message with the given type and returns the
// command that clears it.
func (c *Component) SetMessage(content string, msgType MessageType) tea.Cmd {
	stamp := time.Now()
	c.message = &StatusMessage{
		Content:   content,
		Type:      msgType,
		Timestamp: stamp,
	}

	return tea.Tick(c.clearAfter, func(time.Time) tea.Msg {
		return clearMessageMsg{timestamp: stamp}
	})
}

// ShowInfo shows an info message
func (c *Component) ShowInfo(message string) tea.Cmd {
	return c.SetMessage(message, Info)
}

// ShowWarning shows a warning message
func (c *Component) ShowWarning(message string) tea.Cmd {
	return c.SetMessage(message, Warning)
}

// ShowError shows an error message
func (c *Component) ShowError(message string) tea.Cmd {
	return c.SetMessage(message, Error)
}

// ShowSuccess shows a success message
func (c *Component) ShowSuccess(message string) tea.Cmd {
	return c.SetMessage(message, Success)
}

// Message returns the visible message, or nil.
func (c *Component) Message() *StatusMessage {
	return c.message
}

// SetLeftContent sets the left side content (usually the form summary)
func (c *Component) SetLeftContent(content string) {
	c.leftContent = content
}

// SetSize implements the Sizeable interface
func (c *Component) SetSize(width, height int) tea.Cmd {
	c.width = width
	return nil
}

// clearMessageMsg is sent when a status message should be cleared
type clearMessageMsg struct {
	timestamp time.Time
}

// Init implements the Component interface
func (c *Component) Init() tea.Cmd {
	return nil
}

// Update implements the Component interface
func (c *Component) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(clearMessageMsg); ok {
		// Only clear if this is for the current message
		if c.message != nil && msg.timestamp.Equal(c.message.Timestamp) {
			c.message = nil
		}
	}
	return nil
}

// View implements the Component interface
func (c *Component) View() string {
	if c.width == 0 {
		return ""
	}

	theme := styles.CurrentTheme()

	statusStyle := lipgloss.NewStyle().
		Width(c.width).
		MaxHeight(1).
		Background(theme.BgSubtle).
		Foreground(theme.FgBase).
		Padding(0, 1)

	leftContent := c.leftContent
	rightContent := c.formatMessage()

	availableWidth := c.width - 2 // Account for padding
	if ansi.StringWidth(leftContent)+ansi.StringWidth(rightContent) > availableWidth {
		rightContent = ansi.Truncate(rightContent, availableWidth/2, "...")
		remaining := availableWidth - ansi.StringWidth(rightContent) - 1
		leftContent = ansi.Truncate(leftContent, max(remaining, 0), "...")
	}

	content := leftContent
	if rightContent != "" {
		spacesNeeded := availableWidth - ansi.StringWidth(leftContent) - ansi.StringWidth(rightContent)
		if spacesNeeded > 0 {
			content += fmt.Sprintf("%*s%s", spacesNeeded, "", rightContent)
		} else {
			content += " " + rightContent
		}
	}

	return statusStyle.Render(content)
}

// formatMessage formats the status message with appropriate styling
func (c *Component) formatMessage() string {
	if c.message == nil {
		return ""
	}

	switch c.message.Type {
	case Success:
		return styles.CheckIcon + " " + c.message.Content
	case Warning:
		return "! " + c.message.Content
	case Error:
		return styles.ErrorIcon + " " + c.message.Content
	default: // Info
		return c.message.Content
	}
}
