package dialog

import (
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"github.com/billie-coop/webui/internal/tui/styles"
)

// QuitDialog asks for confirmation before quitting
type QuitDialog struct {
	*BaseDialog

	selectedNo bool // true if "No" is selected (default for safety)
}

// NewQuitDialog creates a new quit confirmation dialog
func NewQuitDialog() *QuitDialog {
	return &QuitDialog{
		BaseDialog: NewBaseDialog("Quit webui?"),
		selectedNo: true,
	}
}

// Open resets the selection to "No" and opens the dialog
func (d *QuitDialog) Open() tea.Cmd {
	d.selectedNo = true
	return d.BaseDialog.Open()
}

// Update handles messages
func (d *QuitDialog) Update(msg tea.Msg) tea.Cmd {
	if !d.isOpen {
		return nil
	}

	if key, ok := msg.(tea.KeyPressMsg); ok {
		switch key.String() {
		case "ctrl+c", "y", "Y":
			// Ctrl+C while the dialog is open confirms (double Ctrl+C pattern)
			d.SetResult(true)
			return tea.Quit
		case "esc", "n", "N":
			return d.Cancel()
		case "left", "right", "tab", "h", "l":
			d.selectedNo = !d.selectedNo
		case "enter", "space":
			if d.selectedNo {
				return d.Cancel()
			}
			d.SetResult(true)
			return tea.Quit
		}
	}
	return nil
}

// View renders the dialog
func (d *QuitDialog) View() string {
	if !d.isOpen {
		return ""
	}

	theme := styles.CurrentTheme()
	s := theme.S()

	question := s.Title.Render("Unsaved changes are kept only until you quit.")

	yesStyle, noStyle := s.Button, s.Button
	if d.selectedNo {
		noStyle = s.ButtonFocused
	} else {
		yesStyle = s.ButtonFocused
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Center, yesStyle.Render("Yes"), "  ", noStyle.Render("No"))

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		question,
		"",
		buttons,
		"",
		s.Subtle.Italic(true).Render("Ctrl+C again to quit • Esc to cancel"),
	)
	return d.RenderDialog(content)
}
