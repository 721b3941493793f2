package dialog

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/billie-coop/webui/internal/tui/styles"
)

// ThemeSelectedMsg is sent when the user confirms a theme.
type ThemeSelectedMsg struct {
	Name string
}

// ThemeSwitcherDialog allows the user to switch themes with a live preview
type ThemeSwitcherDialog struct {
	*BaseDialog

	manager       *styles.Manager
	themes        []string
	selectedIndex int
	originalTheme string
}

// NewThemeSwitcher creates a new theme switcher dialog
func NewThemeSwitcher(manager *styles.Manager) *ThemeSwitcherDialog {
	return &ThemeSwitcherDialog{
		BaseDialog: NewBaseDialog("Theme"),
		manager:    manager,
	}
}

// Open refreshes the theme list and remembers the theme to revert to
func (d *ThemeSwitcherDialog) Open() tea.Cmd {
	d.themes = d.manager.List()
	d.originalTheme = d.manager.Current().Name
	d.selectedIndex = max(0, slices.Index(d.themes, d.originalTheme))
	return d.BaseDialog.Open()
}

// Update handles input
func (d *ThemeSwitcherDialog) Update(msg tea.Msg) tea.Cmd {
	if !d.isOpen || len(d.themes) == 0 {
		return nil
	}

	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return nil
	}
	switch key.String() {
	case "up", "k":
		if d.selectedIndex > 0 {
			d.selectedIndex--
			d.preview()
		}
	case "down", "j":
		if d.selectedIndex < len(d.themes)-1 {
			d.selectedIndex++
			d.preview()
		}
	case "enter":
		name := d.themes[d.selectedIndex]
		d.SetResult(name)
		return tea.Batch(d.Close(), func() tea.Msg { return ThemeSelectedMsg{Name: name} })
	case "esc", "ctrl+c":
		_ = d.manager.SetTheme(d.originalTheme)
		return d.Cancel()
	}
	return nil
}

func (d *ThemeSwitcherDialog) preview() {
	_ = d.manager.SetTheme(d.themes[d.selectedIndex])
}

// View renders the dialog
func (d *ThemeSwitcherDialog) View() string {
	if !d.isOpen {
		return ""
	}

	theme := styles.CurrentTheme()
	var lines []string
	lines = append(lines, theme.S().Subtle.Render("↑/↓ to preview, enter to apply, esc to revert"), "")

	for i, name := range d.themes {
		if i == d.selectedIndex {
			lines = append(lines, styles.RenderThemeGradient("→ "+name))
			continue
		}
		label := "  " + name
		if name == d.originalTheme {
			label += " (current)"
		}
		lines = append(lines, theme.S().Text.Render(label))
	}

	lines = append(lines, "", theme.S().Subtle.Render("  Preview:"), d.swatches())
	return d.RenderDialog(strings.Join(lines, "\n"))
}

func (d *ThemeSwitcherDialog) swatches() string {
	s := styles.CurrentTheme().S()
	samples := []string{
		s.Success.Render("Success"),
		s.Warning.Render("Warning"),
		s.Error.Render("Error"),
		s.Info.Render("Info"),
	}
	return fmt.Sprintf("    %s\n    %s", styles.RenderGradientBar(16, 1), strings.Join(samples, " "))
}
