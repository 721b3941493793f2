package status

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss/v2"
)

func TestComponent_MessageLifecycle(t *testing.T) {
	c := New()
	stamps := []time.Time{time.Unix(100, 0), time.Unix(200, 0)}
	c.now = func() time.Time {
		s := stamps[0]
		stamps = stamps[1:]
		return s
	}

	c.ShowSuccess("Settings saved to /tmp/a.json")
	c.ShowError("Error loading file: boom")

	// A clear for the first message must not remove the second.
	c.Update(clearMessageMsg{timestamp: time.Unix(100, 0)})
	if c.Message() == nil || c.Message().Type != Error {
		t.Fatalf("message = %+v, want the error to remain", c.Message())
	}

	c.Update(clearMessageMsg{timestamp: time.Unix(200, 0)})
	if c.Message() != nil {
		t.Fatal("message should be cleared")
	}
}

func TestComponent_View(t *testing.T) {
	c := New()
	if c.View() != "" {
		t.Fatal("zero width should render nothing")
	}

	c.SetSize(60, 1)
	c.SetLeftContent("📁 /very/long/path/to/the/settings/directory/that/does/not/fit")
	c.ShowInfo("Settings loaded from /tmp/x.json")

	view := c.View()
	if w := lipgloss.Width(view); w != 60 {
		t.Fatalf("width = %d, want 60", w)
	}
	if !strings.Contains(view, "Settings loaded") {
		t.Fatalf("view does not contain the message: %q", view)
	}
}

func TestParseType(t *testing.T) {
	cases := map[string]MessageType{"error": Error, "success": Success, "warning": Warning, "": Info}
	for in, want := range cases {
		if got := ParseType(in); got != want {
			t.Errorf("ParseType(%q) = %v, want %v", in, got, want)
		}
	}
}
