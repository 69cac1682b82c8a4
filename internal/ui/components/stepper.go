package components

import (
	"strconv"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/sumclock/internal/ui/theme"
)

// Stepper is a bounded integer input with decrement and increment controls.
type Stepper struct {
	Label   string
	Value   int
	Min     int
	Max     int
	Step    int
	Focused bool
}

// NewStepper creates a stepper. value is clamped into [min, max] and a step
// below 1 is treated as 1.
func NewStepper(label string, value, min, max, step int) Stepper {
	if step < 1 {
		step = 1
	}
	s := Stepper{Label: label, Min: min, Max: max, Step: step}
	s.Value = s.clamp(value)
	return s
}

func (s Stepper) clamp(v int) int {
	if v < s.Min {
		return s.Min
	}
	if v > s.Max {
		return s.Max
	}
	return v
}

// CanIncrement reports whether Increment would change the value.
func (s Stepper) CanIncrement() bool {
	return s.Value < s.Max
}

// CanDecrement reports whether Decrement would change the value.
func (s Stepper) CanDecrement() bool {
	return s.Value > s.Min
}

// Increment returns the stepper with its value raised by one step.
func (s Stepper) Increment() Stepper {
	s.Value = s.clamp(s.Value + s.Step)
	return s
}

// Decrement returns the stepper with its value lowered by one step.
func (s Stepper) Decrement() Stepper {
	s.Value = s.clamp(s.Value - s.Step)
	return s
}

// View renders the label, the bound value text and the two controls. The
// value text comes from the state projection, not from the stepper itself.
func (s Stepper) View(valueText string) string {
	labelStyle := theme.Unselected
	marker := "  "
	if s.Focused {
		labelStyle = theme.Selected
		marker = "▸ "
	}

	minus := theme.ButtonInactive.Render("−")
	if s.Focused && s.CanDecrement() {
		minus = theme.ButtonActive.Render("−")
	}
	plus := theme.ButtonInactive.Render("+")
	if s.Focused && s.CanIncrement() {
		plus = theme.ButtonActive.Render("+")
	}

	label := labelStyle.Width(4).Render(marker + s.Label)
	value := theme.Body.Width(8).Align(lipgloss.Right).Render(valueText)
	bounds := theme.Hint.Render(" [" + strconv.Itoa(s.Min) + ".." + strconv.Itoa(s.Max) + "]")

	return lipgloss.JoinHorizontal(lipgloss.Center, label, value, "   ", minus, " ", plus, bounds)
}
