package widget

import (
	"fmt"
	"slices"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"github.com/billie-coop/webui/internal/tui/styles"
)

// Checkbox is a boolean toggle.
type Checkbox struct {
	base
	checked bool
}

// NewCheckbox creates a checkbox
func NewCheckbox(label string, checked bool) *Checkbox {
	return &Checkbox{base: newBase(label), checked: checked}
}

// Kind implements Widget
func (c *Checkbox) Kind() Kind { return KindValue }

// Value returns whether the box is checked
func (c *Checkbox) Value() any { return c.checked }

// Checked returns whether the box is checked
func (c *Checkbox) Checked() bool { return c.checked }

// SetValue accepts a bool
func (c *Checkbox) SetValue(v any) error {
	b, ok := v.(bool)
	if !ok {
		return &TypeError{Widget: c.label, Want: "bool", Got: v}
	}
	c.checked = b
	return nil
}

// Update toggles on enter or space
func (c *Checkbox) Update(msg tea.Msg) tea.Cmd {
	if c.interactive && isKey(msg, "enter", "space", " ", "x") {
		c.checked = !c.checked
	}
	return nil
}

// View renders the checkbox
func (c *Checkbox) View(focused bool) string {
	theme := styles.CurrentTheme()
	style := lipgloss.NewStyle().Foreground(theme.FgBase)
	if focused {
		style = style.Foreground(theme.Accent)
	}
	if c.checked {
		return style.Render("[✓] Enabled")
	}
	return style.Render("[ ] Disabled")
}

// Dropdown selects one of a fixed list of options.
type Dropdown struct {
	base
	options []string
	index   int
}

// NewDropdown creates a dropdown with value selected. An unknown value selects
// the first option.
func NewDropdown(label string, options []string, value string) *Dropdown {
	d := &Dropdown{base: newBase(label), options: options}
	if i := slices.Index(options, value); i >= 0 {
		d.index = i
	}
	return d
}

// Kind implements Widget
func (d *Dropdown) Kind() Kind { return KindValue }

// Options returns the selectable options
func (d *Dropdown) Options() []string { return d.options }

// Value returns the selected option, or nil when there are no options
func (d *Dropdown) Value() any {
	if len(d.options) == 0 {
		return nil
	}
	return d.options[d.index]
}

// SetValue selects the option equal to v
func (d *Dropdown) SetValue(v any) error {
	s, ok := v.(string)
	if !ok {
		return &TypeError{Widget: d.label, Want: "string", Got: v}
	}
	i := slices.Index(d.options, s)
	if i < 0 {
		return fmt.Errorf("%s: %q is not one of %v", d.label, s, d.options)
	}
	d.index = i
	return nil
}

// Update cycles through options with left/right or enter
func (d *Dropdown) Update(msg tea.Msg) tea.Cmd {
	if !d.interactive || len(d.options) == 0 {
		return nil
	}
	switch {
	case isKey(msg, "left", "h"):
		d.index = (d.index - 1 + len(d.options)) % len(d.options)
	case isKey(msg, "right", "l", "enter", "space", " "):
		d.index = (d.index + 1) % len(d.options)
	}
	return nil
}

// View renders the selected option
func (d *Dropdown) View(focused bool) string {
	theme := styles.CurrentTheme()
	style := lipgloss.NewStyle().Foreground(theme.FgBase)
	value := ""
	if v := d.Value(); v != nil {
		value = v.(string)
	}
	if focused {
		return "◀ " + style.Foreground(theme.Accent).Bold(true).Render(value) + " ▶"
	}
	return style.Render(value)
}
