package form

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/billie-coop/webui/internal/registry"
	"github.com/billie-coop/webui/internal/widget"
)

func newForm() (*Form, *widget.Checkbox, *widget.Number) {
	reg := registry.New()
	headless := widget.NewCheckbox("Headless", false)
	width := widget.NewNumber("Window Width", 1280, 10)
	reg.RegisterOrdered("browser_settings",
		registry.Field{Name: "headless", Widget: headless},
		registry.Field{Name: "status", Widget: widget.NewStatusBox("Status")},
		registry.Field{Name: "window_w", Widget: width},
	)
	return New(reg.Tab("browser_settings")), headless, width
}

func TestForm_NavigationSkipsReadOnly(t *testing.T) {
	f, _, width := newForm()

	f.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	id, c := f.Selected()
	if id != "browser_settings.window_w" || c != width {
		t.Fatalf("Selected() = %s, want window_w", id)
	}

	f.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if id, _ := f.Selected(); id != "browser_settings.window_w" {
		t.Fatalf("cursor moved past the end: %s", id)
	}

	f.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if id, _ := f.Selected(); id != "browser_settings.headless" {
		t.Fatalf("Selected() = %s, want headless", id)
	}
}

func TestForm_ForwardsKeysToFocusedWidget(t *testing.T) {
	f, headless, width := newForm()

	f.Update(tea.KeyPressMsg{Code: tea.KeySpace, Text: " "})
	if !headless.Checked() {
		t.Fatal("space should toggle the focused checkbox")
	}

	f.Select("browser_settings.window_w")
	f.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	if width.Float() != 1290 {
		t.Fatalf("width = %v, want 1290", width.Float())
	}

	f.Blur()
	f.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	if width.Float() != 1290 {
		t.Fatal("a blurred form must ignore keys")
	}
}

func TestForm_ViewScrolls(t *testing.T) {
	f, _, _ := newForm()
	f.SetSize(60, 1)
	if !strings.Contains(f.View(), "Headless") {
		t.Fatalf("view = %q", f.View())
	}

	f.Select("browser_settings.window_w")
	view := f.View()
	if strings.Contains(view, "Headless") || !strings.Contains(view, "Window Width") {
		t.Fatalf("view did not scroll: %q", view)
	}

	if !strings.Contains(New(nil).View(), "Nothing to configure") {
		t.Fatal("empty form should say so")
	}
}
