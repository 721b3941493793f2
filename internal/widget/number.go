package widget

import (
	"math"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"github.com/billie-coop/webui/internal/tui/styles"
)

const sliderWidth = 20

// Number is a numeric input. With a range it behaves as a slider.
// Values are always float64 so that they survive a JSON round trip unchanged.
type Number struct {
	base

	value    float64
	min, max float64
	step     float64
	ranged   bool
}

// NewNumber creates an unbounded numeric input that steps by step
func NewNumber(label string, value, step float64) *Number {
	if step <= 0 {
		step = 1
	}
	return &Number{base: newBase(label), value: value, step: step}
}

// NewSlider creates a numeric input bounded to [min, max]
func NewSlider(label string, value, min, max, step float64) *Number {
	n := NewNumber(label, value, step)
	n.min, n.max, n.ranged = min, max, true
	return n
}

// Kind implements Widget
func (n *Number) Kind() Kind { return KindValue }

// Value returns the current number
func (n *Number) Value() any { return n.value }

// Float returns the current number
func (n *Number) Float() float64 { return n.value }

// SetValue adopts any numeric value. Range bounds are only enforced when the
// user steps the slider, not on programmatic updates.
func (n *Number) SetValue(v any) error {
	f, ok := toFloat(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return &TypeError{Widget: n.label, Want: "number", Got: v}
	}
	n.value = f
	return nil
}

// Update steps the value with left/right.
func (n *Number) Update(msg tea.Msg) tea.Cmd {
	if !n.interactive {
		return nil
	}
	switch {
	case isKey(msg, "left", "h", "-"):
		n.nudge(-n.step)
	case isKey(msg, "right", "l", "+"):
		n.nudge(n.step)
	}
	return nil
}

func (n *Number) nudge(delta float64) {
	v := n.value + delta
	// Snap to the step grid to avoid drifting float error.
	v = math.Round(v/n.step) * n.step
	if n.ranged {
		v = math.Max(n.min, math.Min(n.max, v))
	}
	n.value = v
}

func (n *Number) format() string {
	decimals := 0
	if s := strconv.FormatFloat(n.step, 'f', -1, 64); strings.Contains(s, ".") {
		decimals = len(s) - strings.Index(s, ".") - 1
	}
	return strconv.FormatFloat(n.value, 'f', decimals, 64)
}

// View renders the number, with a gradient bar for sliders
func (n *Number) View(focused bool) string {
	theme := styles.CurrentTheme()
	valueStyle := lipgloss.NewStyle().Foreground(theme.FgBase)
	if focused {
		valueStyle = valueStyle.Foreground(theme.Accent).Bold(true)
	}

	if !n.ranged {
		if focused {
			return "◀ " + valueStyle.Render(n.format()) + " ▶"
		}
		return valueStyle.Render(n.format())
	}

	filled := 0.0
	if n.max > n.min {
		filled = (n.value - n.min) / (n.max - n.min)
	}
	filled = math.Max(0, math.Min(1, filled))
	return styles.RenderGradientBar(sliderWidth, filled) + " " + valueStyle.Render(n.format())
}
