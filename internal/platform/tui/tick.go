// Package tui provides the Bubble Tea integration for the Lines arcade.
// It handles the terminal UI loop, key and mouse mapping, the menu, the
// records table and the SSH front end.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-lines/internal/core"
)

// TickMsg asks the running game to take one step.
type TickMsg time.Time

// tickCmd schedules the next TickMsg at the given rate per second.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = core.DefaultTickRate
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
