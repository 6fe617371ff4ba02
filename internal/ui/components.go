package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/olivier-w/sonance/internal/fx"
	"github.com/olivier-w/sonance/internal/persona"
)

// span is the half-open column range a button occupies.
type span struct {
	x0, x1 int
}

func (s span) contains(x int) bool { return x >= s.x0 && x < s.x1 }

func buttonLabel(i int, ev fx.Event) string {
	return string(rune('1'+i)) + " " + ev.String()
}

// layoutButtons returns the column span of every event button, starting
// at the left margin.
func layoutButtons(events []fx.Event) []span {
	spans := make([]span, len(events))
	x := margin
	for i, ev := range events {
		w := lipgloss.Width(buttonStyle.Render(buttonLabel(i, ev)))
		spans[i] = span{x, x + w}
		x += w + buttonGap
	}
	return spans
}

// buttonAt returns the button index under column x, or -1.
func buttonAt(spans []span, x int) int {
	for i, s := range spans {
		if s.contains(x) {
			return i
		}
	}
	return -1
}

func renderButtons(events []fx.Event, focused int, p persona.Persona) string {
	parts := make([]string, len(events))
	for i, ev := range events {
		style := buttonStyle
		if i == focused {
			style = activeButtonStyle.Background(accent(p))
		}
		parts[i] = style.Render(buttonLabel(i, ev))
	}
	return strings.Join(parts, strings.Repeat(" ", buttonGap))
}

func newMeter() progress.Model {
	return progress.New(
		progress.WithScaledGradient("#FF8C00", "#FF5F1F"),
		progress.WithoutPercentage(),
	)
}

// meterRatio scales the master level against the unmuted baseline.
func meterRatio(level float64) float64 {
	return min(max(level/fx.BaselineLevel, 0), 1)
}

func meterWidth(total int) int {
	return min(max(total-2*margin-12, 10), 40)
}
