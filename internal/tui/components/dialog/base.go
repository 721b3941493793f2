package dialog

import (
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"github.com/billie-coop/webui/internal/tui/components/core"
	"github.com/billie-coop/webui/internal/tui/styles"
)

// BaseDialog provides common dialog functionality
type BaseDialog struct {
	core.FocusableBase
	core.SizeableBase

	title     string
	isOpen    bool
	result    any
	cancelled bool
}

// NewBaseDialog creates a new base dialog
func NewBaseDialog(title string) *BaseDialog {
	return &BaseDialog{title: title}
}

// Init implements core.Component
func (d *BaseDialog) Init() tea.Cmd {
	return nil
}

// Title returns the dialog title
func (d *BaseDialog) Title() string {
	return d.title
}

// IsOpen returns whether the dialog is open
func (d *BaseDialog) IsOpen() bool {
	return d.isOpen
}

// Open opens the dialog
func (d *BaseDialog) Open() tea.Cmd {
	d.isOpen = true
	d.cancelled = false
	d.result = nil
	return d.Focus()
}

// Close closes the dialog
func (d *BaseDialog) Close() tea.Cmd {
	d.isOpen = false
	return d.Blur()
}

// Cancel closes the dialog as cancelled
func (d *BaseDialog) Cancel() tea.Cmd {
	d.cancelled = true
	return d.Close()
}

// GetResult returns the dialog result
func (d *BaseDialog) GetResult() any {
	return d.result
}

// IsCancelled returns whether the dialog was cancelled
func (d *BaseDialog) IsCancelled() bool {
	return d.cancelled
}

// SetResult sets the dialog result
func (d *BaseDialog) SetResult(result any) {
	d.result = result
}

// RenderDialog renders content in a bordered box centered on the screen.
// Styles are taken from the current theme on every render so theme changes
// apply immediately.
func (d *BaseDialog) RenderDialog(content string) string {
	if !d.isOpen {
		return ""
	}

	theme := styles.CurrentTheme()
	border := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.BorderFocus).
		Padding(1, 2)

	dialogContent := content
	if d.title != "" {
		title := lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Accent).
			MarginBottom(1).
			Render(d.title)
		dialogContent = lipgloss.JoinVertical(lipgloss.Left, title, content)
	}

	box := border.Render(dialogContent)
	if d.Width == 0 || d.Height == 0 {
		return box
	}
	return lipgloss.Place(d.Width, d.Height, lipgloss.Center, lipgloss.Center, box)
}

// HandleEscape handles the escape key
func (d *BaseDialog) HandleEscape() tea.Cmd {
	if d.isOpen {
		return d.Cancel()
	}
	return nil
}
