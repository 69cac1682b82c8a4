package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/sumclock/internal/ui/theme"
)

// ProgressBar displays how far the elapsed counter is into the current
// minute.
type ProgressBar struct {
	Label string
	Ticks int // elapsed ticks within the cycle
	Cycle int // ticks per full bar
	Width int
}

// NewMinuteBar creates a bar that fills once every 60 ticks.
func NewMinuteBar(seconds, width int) ProgressBar {
	return ProgressBar{
		Label: fmt.Sprintf("min %d", seconds/60),
		Ticks: seconds % 60,
		Cycle: 60,
		Width: width,
	}
}

// Percent returns the filled fraction in [0, 1].
func (p ProgressBar) Percent() float64 {
	if p.Cycle <= 0 || p.Ticks <= 0 {
		return 0
	}
	if p.Ticks >= p.Cycle {
		return 1
	}
	return float64(p.Ticks) / float64(p.Cycle)
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string
	if p.Label != "" {
		result = theme.Hint.Render(p.Label) + "  "
	}

	barWidth := p.Width - lipgloss.Width(result)
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * p.Percent())
	empty := barWidth - filled

	result += lipgloss.NewStyle().Background(theme.Secondary).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", empty))

	return result
}
