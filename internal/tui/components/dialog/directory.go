package dialog

import (
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"github.com/billie-coop/webui/internal/tui/styles"
	"github.com/billie-coop/webui/internal/widget"
)

// DirectorySelectedMsg is sent when the user confirms a settings directory.
type DirectorySelectedMsg struct {
	Path string
}

// DirectoryDialog asks for a new settings directory
type DirectoryDialog struct {
	*BaseDialog

	input   *widget.TextBox
	current string
}

// NewDirectoryDialog creates the settings directory dialog
func NewDirectoryDialog() *DirectoryDialog {
	input := widget.NewTextBox("Directory", "")
	input.Placeholder("/path/to/webui_settings")
	return &DirectoryDialog{
		BaseDialog: NewBaseDialog(styles.FolderIcon + " Settings Directory"),
		input:      input,
	}
}

// SetCurrent sets the directory shown as current and pre-fills the input
func (d *DirectoryDialog) SetCurrent(dir string) {
	d.current = dir
	d.input.SetValue(dir)
}

// Value returns the text currently entered
func (d *DirectoryDialog) Value() string {
	return d.input.Text()
}

// Update handles input
func (d *DirectoryDialog) Update(msg tea.Msg) tea.Cmd {
	if !d.isOpen {
		return nil
	}

	if key, ok := msg.(tea.KeyPressMsg); ok {
		switch key.String() {
		case "esc":
			return d.Cancel()
		case "enter":
			path := strings.TrimSpace(d.input.Text())
			if path == "" {
				return nil
			}
			path = filepath.Clean(path)
			d.SetResult(path)
			return tea.Batch(d.Close(), func() tea.Msg {
				return DirectorySelectedMsg{Path: path}
			})
		}
	}
	return d.input.Update(msg)
}

// View renders the dialog
func (d *DirectoryDialog) View() string {
	theme := styles.CurrentTheme()
	s := theme.S()

	var lines []string
	if d.current != "" {
		lines = append(lines, s.Muted.Render("Current: "+d.current), "")
	}
	field := lipgloss.NewStyle().
		Width(48).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		Render(d.input.View(true))
	lines = append(lines, field, "", s.Subtle.Render("Enter to apply • Esc to cancel"))

	return d.RenderDialog(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
