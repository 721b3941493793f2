package dialog

import (
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"github.com/billie-coop/webui/internal/tui/styles"
)

const helpWidth = 64

var helpPages = []struct {
	title    string
	markdown string
}{
	{
		title: "Keyboard",
		markdown: `| Key | Action |
|---|---|
| tab / shift+tab | Next / previous tab |
| ↑ / ↓ | Move between fields |
| ← / → | Change a number or option |
| enter / space | Press a button, toggle a checkbox |
| ctrl+n / ctrl+p | Cycle saved files in the file picker |
| ctrl+s | Save settings |
| ctrl+d | Change the settings directory |
| ctrl+t | Switch theme |
| ? | Toggle this help |
| ctrl+c | Quit |`,
	},
	{
		title: "Settings files",
		markdown: `Saved settings are flat JSON objects keyed by **tab.field**:

` + "```json" + `
{
    "agent_settings.llm_temperature": 0.6,
    "browser_settings.headless": false
}
` + "```" + `

- Files are named ` + "`YYYYMMDD-HHMMSS.json`" + ` in the settings directory.
- Buttons, file pickers and the status box are never saved.
- Keys that no longer match a field are ignored when loading.`,
	},
	{
		title: "Environment",
		markdown: `- ` + "`WEBUI_SETTINGS_DIR`" + ` sets the default settings directory.
- Inside a container the default is ` + "`/app/webui_settings`" + `.
- ` + "`BACKEND_HOST`" + `, ` + "`BACKEND_PORT`" + ` and ` + "`OLLAMA_ENDPOINT`" + ` prefill the backend fields.`,
	},
}

// HelpDialog displays keyboard and file format help rendered as markdown
type HelpDialog struct {
	*BaseDialog

	activeTab int
	rendered  map[int]string
	themeName string
}

// NewHelpDialog creates a new help dialog
func NewHelpDialog() *HelpDialog {
	return &HelpDialog{
		BaseDialog: NewBaseDialog("Help"),
		rendered:   make(map[int]string),
	}
}

// Update handles messages
func (d *HelpDialog) Update(msg tea.Msg) tea.Cmd {
	if !d.isOpen {
		return nil
	}

	if key, ok := msg.(tea.KeyPressMsg); ok {
		switch key.String() {
		case "esc", "q", "?":
			return d.Close()
		case "tab", "right", "l":
			d.activeTab = (d.activeTab + 1) % len(helpPages)
		case "shift+tab", "left", "h":
			d.activeTab = (d.activeTab - 1 + len(helpPages)) % len(helpPages)
		case "1", "2", "3":
			d.activeTab = int(key.String()[0] - '1')
		}
	}
	return nil
}

// page renders one help page, caching the glamour output per theme
func (d *HelpDialog) page(i int) string {
	theme := styles.CurrentTheme()
	if theme.Name != d.themeName {
		d.rendered = make(map[int]string)
		d.themeName = theme.Name
	}
	if out, ok := d.rendered[i]; ok {
		return out
	}
	out := styles.RenderMarkdown(helpPages[i].markdown, helpWidth)
	d.rendered[i] = out
	return out
}

// View renders the dialog
func (d *HelpDialog) View() string {
	if !d.isOpen {
		return ""
	}

	s := styles.CurrentTheme().S()
	var tabs []string
	for i, p := range helpPages {
		style := s.Tab
		if i == d.activeTab {
			style = s.TabActive
		}
		tabs = append(tabs, style.Render(p.title))
	}
	tabBar := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		tabBar,
		"",
		d.page(d.activeTab),
		"",
		s.Subtle.Render("tab to switch pages • esc to close"),
	)
	return d.RenderDialog(content)
}
