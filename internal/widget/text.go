package widget

import (
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"github.com/billie-coop/webui/internal/tui/styles"
)

// TextBox is a single-line text input.
type TextBox struct {
	base

	value       []rune
	placeholder string
	cursorPos   int
}

// NewTextBox creates a new text box holding value
func NewTextBox(label, value string) *TextBox {
	t := &TextBox{base: newBase(label)}
	t.setText(value)
	return t
}

// NewStatusBox creates a read-only text box used to display operation status.
func NewStatusBox(label string) *TextBox {
	t := NewTextBox(label, "")
	t.SetInteractive(false)
	return t
}

// Kind implements Widget
func (t *TextBox) Kind() Kind { return KindValue }

// Value returns the current text
func (t *TextBox) Value() any { return string(t.value) }

// Text returns the current text
func (t *TextBox) Text() string { return string(t.value) }

// SetValue sets the text. Only strings are accepted.
func (t *TextBox) SetValue(v any) error {
	s, ok := v.(string)
	if !ok {
		return &TypeError{Widget: t.label, Want: "string", Got: v}
	}
	t.setText(s)
	return nil
}

// Placeholder sets the placeholder text
func (t *TextBox) Placeholder(placeholder string) {
	t.placeholder = placeholder
}

func (t *TextBox) setText(s string) {
	t.value = []rune(s)
	t.cursorPos = len(t.value)
}

// Update handles editing keys. Read-only boxes ignore input.
func (t *TextBox) Update(msg tea.Msg) tea.Cmd {
	if !t.interactive {
		return nil
	}

	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return nil
	}
	switch key.String() {
	case "backspace":
		if t.cursorPos > 0 {
			t.value = append(t.value[:t.cursorPos-1], t.value[t.cursorPos:]...)
			t.cursorPos--
		}
	case "delete":
		if t.cursorPos < len(t.value) {
			t.value = append(t.value[:t.cursorPos], t.value[t.cursorPos+1:]...)
		}
	case "left":
		if t.cursorPos > 0 {
			t.cursorPos--
		}
	case "right":
		if t.cursorPos < len(t.value) {
			t.cursorPos++
		}
	case "home", "ctrl+a":
		t.cursorPos = 0
	case "end", "ctrl+e":
		t.cursorPos = len(t.value)
	case "space":
		t.insert(' ')
	default:
		// Regular character input
		if r := []rune(key.String()); len(r) == 1 {
			t.insert(r[0])
		}
	}
	return nil
}

func (t *TextBox) insert(r rune) {
	t.value = append(t.value[:t.cursorPos], append([]rune{r}, t.value[t.cursorPos:]...)...)
	t.cursorPos++
}

// View renders the input
func (t *TextBox) View(focused bool) string {
	theme := styles.CurrentTheme()
	style := lipgloss.NewStyle().Foreground(theme.FgBase)

	if !t.interactive {
		return lipgloss.NewStyle().Foreground(theme.FgMuted).Italic(true).Render(string(t.value))
	}

	if !focused {
		if len(t.value) == 0 && t.placeholder != "" {
			return style.Foreground(theme.FgSubtle).Render(t.placeholder)
		}
		return style.Render(string(t.value))
	}

	cursor := lipgloss.NewStyle().
		Background(theme.Primary).
		Foreground(theme.FgInverted)

	if t.cursorPos < len(t.value) {
		before := string(t.value[:t.cursorPos])
		after := string(t.value[t.cursorPos+1:])
		return style.Render(before) + cursor.Render(string(t.value[t.cursorPos])) + style.Render(after)
	}
	return style.Render(string(t.value)) + cursor.Render(" ")
}
