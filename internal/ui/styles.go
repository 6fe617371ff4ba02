package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/olivier-w/sonance/internal/persona"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"})

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BBBBBB"})

	mutedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#AA0000", Dark: "#FF5F5F"})

	buttonStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#DDDDDD"}).
			Background(lipgloss.AdaptiveColor{Light: "#E4E4E4", Dark: "#303030"})

	activeButtonStyle = buttonStyle.
				Bold(true).
				Foreground(lipgloss.Color("#000000"))
)

const buttonGap = 1

// accent returns the persona color as a lipgloss color.
func accent(p persona.Persona) lipgloss.Color {
	c := p.Color()
	return lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B))
}
