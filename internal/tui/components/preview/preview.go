// Package preview shows the last saved or loaded settings file with JSON
// syntax highlighting.
package preview

import (
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"github.com/billie-coop/webui/internal/tui/components/core"
	"github.com/billie-coop/webui/internal/tui/styles"
)

// Component renders a file's content in a bordered pane
type Component struct {
	core.SizeableBase

	path    string
	content string

	// highlighted is cached per theme
	highlighted string
	themeName   string
}

// New creates an empty preview pane
func New() *Component {
	return &Component{}
}

// Init implements core.Component
func (c *Component) Init() tea.Cmd {
	return nil
}

// Update implements core.Component
func (c *Component) Update(tea.Msg) tea.Cmd {
	return nil
}

// SetContent replaces the previewed file
func (c *Component) SetContent(path, content string) {
	c.path = path
	c.content = strings.TrimRight(content, "\n")
	c.highlighted = ""
	c.themeName = ""
}

// Path returns the previewed file, or "" when empty
func (c *Component) Path() string {
	return c.path
}

// View implements core.Component
func (c *Component) View() string {
	theme := styles.CurrentTheme()
	s := theme.S()

	title := s.Title.Render(styles.FileIcon + " Preview")
	if c.path != "" {
		title += " " + s.Muted.Render(filepath.Base(c.path))
	}

	body := s.Subtle.Render("Save or load settings to preview them here.")
	if c.content != "" {
		if c.themeName != theme.Name {
			c.highlighted = styles.HighlightJSON(c.content)
			c.themeName = theme.Name
		}
		body = c.clip(c.highlighted)
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, "", body)
}

// clip drops lines that do not fit the pane
func (c *Component) clip(text string) string {
	rows := c.Height - 2 // title and gap
	if c.Height == 0 || rows <= 0 {
		return text
	}
	lines := strings.Split(text, "\n")
	if len(lines) <= rows {
		return text
	}
	more := styles.CurrentTheme().S().Subtle.Render("…")
	return strings.Join(lines[:rows-1], "\n") + "\n" + more
}
