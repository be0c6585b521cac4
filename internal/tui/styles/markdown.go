package styles

import (
	"strings"

	"github.com/charmbracelet/glamour/v2"
)

// RenderMarkdown renders content for the terminal using the current theme's
// light/dark base style. On failure the raw content is returned with the error.
func RenderMarkdown(content string, width int) (string, error) {
	style := "light"
	if CurrentTheme().IsDark {
		style = "dark"
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(width),
		glamour.WithPreservedNewLines(),
	)
	if err != nil {
		return content, err
	}

	rendered, err := r.Render(content)
	if err != nil {
		return content, err
	}

	// Remove extra newlines that glamour adds
	return strings.TrimRight(rendered, "\n"), nil
}
