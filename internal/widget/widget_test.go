package widget

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"
)

func press(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code, Text: string(code)}
}

func ctrl(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code, Mod: tea.ModCtrl}
}

func TestKinds(t *testing.T) {
	tests := []struct {
		name        string
		w           Widget
		kind        Kind
		persistable bool
	}{
		{"text", NewTextBox("Model", ""), KindValue, true},
		{"number", NewNumber("Steps", 1, 1), KindValue, true},
		{"checkbox", NewCheckbox("Headless", false), KindValue, true},
		{"dropdown", NewDropdown("Provider", []string{"a"}, "a"), KindValue, true},
		{"button", NewButton("Run", nil), KindTrigger, false},
		{"file", NewFilePicker("Config"), KindFilePicker, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.w.Kind() != tt.kind {
				t.Fatalf("Kind() = %v, want %v", tt.w.Kind(), tt.kind)
			}
			if tt.w.Kind().Persistable() != tt.persistable {
				t.Fatalf("Persistable() = %v", tt.w.Kind().Persistable())
			}
		})
	}
}

func TestNumber_SetValueCoercesJSONNumbers(t *testing.T) {
	n := NewSlider("Temperature", 0.5, 0, 1, 0.1)

	for _, v := range []any{int(1), int64(2), float32(0.25), json.Number("0.3"), 0.7} {
		if err := n.SetValue(v); err != nil {
			t.Fatalf("SetValue(%v): %v", v, err)
		}
		if _, ok := n.Value().(float64); !ok {
			t.Fatalf("Value() = %T, want float64", n.Value())
		}
	}
	if n.Float() != 0.7 {
		t.Fatalf("Float() = %v, want 0.7", n.Float())
	}

	for _, bad := range []any{"0.7", true, nil, math.NaN(), math.Inf(1)} {
		var typeErr *TypeError
		if err := n.SetValue(bad); !errors.As(err, &typeErr) {
			t.Fatalf("SetValue(%v) error = %v, want TypeError", bad, err)
		}
	}
	if n.Float() != 0.7 {
		t.Fatalf("rejected value changed the number to %v", n.Float())
	}
}

func TestNumber_StepsWithinRange(t *testing.T) {
	n := NewSlider("Temperature", 0.9, 0, 1, 0.1)

	n.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	n.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	if n.Float() != 1 {
		t.Fatalf("Float() = %v, want clamp at 1", n.Float())
	}

	n.Update(tea.KeyPressMsg{Code: tea.KeyLeft})
	if math.Abs(n.Float()-0.9) > 1e-9 {
		t.Fatalf("Float() = %v, want 0.9", n.Float())
	}
}

func TestTextBox_Editing(t *testing.T) {
	box := NewTextBox("Model", "gpt")

	for _, r := range "-4o" {
		box.Update(press(r))
	}
	if box.Text() != "gpt-4o" {
		t.Fatalf("Text() = %q", box.Text())
	}

	box.Update(tea.KeyPressMsg{Code: tea.KeyHome})
	box.Update(tea.KeyPressMsg{Code: tea.KeyDelete})
	box.Update(tea.KeyPressMsg{Code: tea.KeyEnd})
	box.Update(tea.KeyPressMsg{Code: tea.KeyBackspace})
	if box.Text() != "pt-4" {
		t.Fatalf("Text() = %q, want pt-4", box.Text())
	}

	if err := box.SetValue(12); err == nil {
		t.Fatal("SetValue(12) should be rejected")
	}
}

func TestStatusBox_IgnoresInput(t *testing.T) {
	status := NewStatusBox("Status")
	if status.Interactive() {
		t.Fatal("status box must be read-only")
	}

	status.Update(press('x'))
	if status.Text() != "" {
		t.Fatalf("read-only box accepted input: %q", status.Text())
	}
	if err := status.SetValue("Settings saved"); err != nil || status.Text() != "Settings saved" {
		t.Fatalf("programmatic update failed: %v %q", err, status.Text())
	}
}

func TestCheckbox_Toggle(t *testing.T) {
	c := NewCheckbox("Headless", false)
	c.Update(tea.KeyPressMsg{Code: tea.KeySpace, Text: " "})
	if !c.Checked() {
		t.Fatal("space should toggle the checkbox")
	}
	if err := c.SetValue("true"); err == nil {
		t.Fatal("string values must be rejected")
	}
}

func TestDropdown(t *testing.T) {
	d := NewDropdown("Provider", []string{"openai", "anthropic", "ollama"}, "missing")
	if d.Value() != "openai" {
		t.Fatalf("unknown initial value should select the first option, got %v", d.Value())
	}

	d.Update(tea.KeyPressMsg{Code: tea.KeyLeft})
	if d.Value() != "ollama" {
		t.Fatalf("left should wrap around, got %v", d.Value())
	}

	if err := d.SetValue("anthropic"); err != nil || d.Value() != "anthropic" {
		t.Fatalf("SetValue(anthropic) = %v, value %v", err, d.Value())
	}
	if err := d.SetValue("gemini"); err == nil {
		t.Fatal("values outside the options must be rejected")
	}
	if d.Value() != "anthropic" {
		t.Fatalf("rejected value changed selection to %v", d.Value())
	}

	if NewDropdown("Empty", nil, "").Value() != nil {
		t.Fatal("empty dropdown should have a nil value")
	}
}

func TestButton(t *testing.T) {
	pressed := 0
	b := NewButton("Save", func() tea.Cmd {
		pressed++
		return nil
	})

	b.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	b.Update(press('q'))
	if pressed != 1 {
		t.Fatalf("pressed = %d, want 1", pressed)
	}
	if b.Value() != nil || b.SetValue("x") == nil {
		t.Fatal("buttons hold no value")
	}
}

func TestFilePicker_Candidates(t *testing.T) {
	f := NewFilePicker("Config File", ".json")
	f.SetCandidates([]string{"/s/b.json", "/s/notes.txt", "/s/a.json"})

	if got := f.Candidates(); len(got) != 2 {
		t.Fatalf("Candidates() = %v, want only .json files", got)
	}

	f.Update(ctrl('n'))
	if f.Path() != "/s/b.json" {
		t.Fatalf("first ctrl+n selected %q", f.Path())
	}
	f.Update(ctrl('n'))
	f.Update(ctrl('n'))
	if f.Path() != "/s/b.json" {
		t.Fatalf("ctrl+n should wrap, got %q", f.Path())
	}
	f.Update(ctrl('p'))
	if f.Path() != "/s/a.json" {
		t.Fatalf("ctrl+p selected %q", f.Path())
	}

	if err := f.SetValue("/s/notes.txt"); err == nil {
		t.Fatal("wrong extension must be rejected")
	}
	if err := f.SetValue(""); err != nil || f.Value() != "" {
		t.Fatalf("clearing the selection failed: %v", err)
	}
}
