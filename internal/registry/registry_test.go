package registry

import (
	"errors"
	"reflect"
	"testing"

	"github.com/billie-coop/webui/internal/widget"
)

func TestRegistry_RegisterAndLookup(t *testing.T) {
	r := New()
	temperature := widget.NewSlider("Temperature", 0.7, 0, 2, 0.1)
	run := widget.NewButton("Run", nil)

	r.RegisterOrdered("main",
		Field{Name: "temperature", Widget: temperature},
		Field{Name: "run_button", Widget: run},
	)

	if r.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", r.Len())
	}

	w, err := r.WidgetByID("main.temperature")
	if err != nil {
		t.Fatalf("WidgetByID: %v", err)
	}
	if w != temperature {
		t.Fatalf("WidgetByID returned %v, want the temperature slider", w)
	}

	id, err := r.IDByWidget(run)
	if err != nil {
		t.Fatalf("IDByWidget: %v", err)
	}
	if id != "main.run_button" {
		t.Fatalf("IDByWidget = %q, want main.run_button", id)
	}

	if got, want := r.IDs(), []string{"main.temperature", "main.run_button"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("IDs() = %v, want %v", got, want)
	}
	if got := r.Widgets(); len(got) != 2 || got[0] != temperature || got[1] != run {
		t.Fatalf("Widgets() = %v", got)
	}
}

func TestRegistry_LookupErrors(t *testing.T) {
	r := New()

	_, err := r.WidgetByID("nope.missing")
	if !errors.Is(err, ErrUnknownID) {
		t.Fatalf("WidgetByID error = %v, want ErrUnknownID", err)
	}
	var lookupErr *LookupError
	if !errors.As(err, &lookupErr) || lookupErr.Key != "nope.missing" {
		t.Fatalf("expected LookupError for nope.missing, got %#v", err)
	}

	_, err = r.IDByWidget(widget.NewCheckbox("orphan", false))
	if !errors.Is(err, ErrUnknownWidget) {
		t.Fatalf("IDByWidget error = %v, want ErrUnknownWidget", err)
	}
}

func TestRegistry_LastWriterWins(t *testing.T) {
	r := New()
	first := widget.NewTextBox("Model", "a")
	second := widget.NewTextBox("Model", "b")

	r.Register("agent", map[string]widget.Widget{"model": first})
	r.Register("agent", map[string]widget.Widget{"model": second})

	w, err := r.WidgetByID("agent.model")
	if err != nil {
		t.Fatalf("WidgetByID: %v", err)
	}
	if w != second {
		t.Fatal("expected the second registration to win")
	}
	if r.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", r.Len())
	}
	if _, err := r.IDByWidget(first); !errors.Is(err, ErrUnknownWidget) {
		t.Fatalf("IDByWidget(first) error = %v, want ErrUnknownWidget", err)
	}
	if id, err := r.IDByWidget(second); err != nil || id != "agent.model" {
		t.Fatalf("IDByWidget(second) = %q, %v", id, err)
	}
}

func TestRegistry_WidgetMovedToNewID(t *testing.T) {
	r := New()
	w := widget.NewTextBox("Model", "a")

	r.Register("agent", map[string]widget.Widget{"model": w})
	r.Register("agent", map[string]widget.Widget{"model_name": w})

	if _, err := r.WidgetByID("agent.model"); !errors.Is(err, ErrUnknownID) {
		t.Fatalf("old id error = %v, want ErrUnknownID", err)
	}
	if id, err := r.IDByWidget(w); err != nil || id != "agent.model_name" {
		t.Fatalf("IDByWidget = %q, %v", id, err)
	}
	if r.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", r.Len())
	}
}

func TestRegistry_TabAndEntries(t *testing.T) {
	r := New()
	r.RegisterOrdered("agent", Field{Name: "model", Widget: widget.NewTextBox("Model", "")})
	r.RegisterOrdered("browser", Field{Name: "headless", Widget: widget.NewCheckbox("Headless", true)})
	r.RegisterOrdered("agent", Field{Name: "steps", Widget: widget.NewNumber("Steps", 100, 1)})

	agent := r.Tab("agent")
	if len(agent) != 2 || agent[0].ID != "agent.model" || agent[1].ID != "agent.steps" {
		t.Fatalf("Tab(agent) = %+v", agent)
	}
	if agent[1].Tab() != "agent" || agent[1].Field() != "steps" {
		t.Fatalf("entry split = %q / %q", agent[1].Tab(), agent[1].Field())
	}
	if len(r.Tab("agen")) != 0 {
		t.Fatal("Tab must match whole tab names only")
	}
	if len(r.Entries()) != 3 {
		t.Fatalf("Entries() = %d, want 3", len(r.Entries()))
	}
}
