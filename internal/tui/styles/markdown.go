package styles

import (
	"strings"

	"github.com/charmbracelet/glamour/v2"
)

// RenderMarkdown renders markdown for the terminal, wrapping at width.
// The raw markdown is returned if rendering fails.
func RenderMarkdown(content string, width int) string {
	style := "dark"
	if !CurrentTheme().IsDark {
		style = "light"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}

	rendered, err := r.Render(content)
	if err != nil {
		return content
	}

	// Remove extra newlines that glamour adds
	return strings.Trim(rendered, "\n")
}
