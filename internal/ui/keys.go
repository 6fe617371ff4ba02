package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/olivier-w/sonance/internal/fx"
)

type keyMap struct {
	Trigger key.Binding
	Prev    key.Binding
	Next    key.Binding
	Press   key.Binding
	Mute    key.Binding
	Mode    key.Binding
	Persona key.Binding
	Tier    key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Trigger: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8"),
			key.WithHelp("1-8", "play"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "h", "shift+tab"),
			key.WithHelp("←/h", "prev"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l", "tab"),
			key.WithHelp("→/l", "next"),
		),
		Press: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "press"),
		),
		Mute: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mute"),
		),
		Mode: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "aggressive"),
		),
		Persona: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "persona"),
		),
		Tier: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "tier"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Trigger, k.Mute, k.Mode, k.Persona, k.Tier, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Trigger, k.Prev, k.Next, k.Press},
		{k.Mute, k.Mode, k.Persona, k.Tier},
		{k.Help, k.Quit},
	}
}

// triggerIndex maps a digit key to a button position.
func triggerIndex(msg tea.KeyMsg, events []fx.Event) (int, bool) {
	s := msg.String()
	if len(s) != 1 || s[0] < '1' || s[0] > '9' {
		return 0, false
	}
	i := int(s[0] - '1')
	return i, i < len(events)
}
