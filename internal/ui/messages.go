package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const meterInterval = 50 * time.Millisecond

type meterTickMsg time.Time

func meterTickCmd() tea.Cmd {
	return tea.Tick(meterInterval, func(t time.Time) tea.Msg {
		return meterTickMsg(t)
	})
}
