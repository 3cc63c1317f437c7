// Package tui provides the Bubble Tea integration for the replay
// viewer. It handles the terminal UI loop, key bindings, board
// rendering, and the SSH server for remote viewing.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a state poll in sessions that cannot
// receive push notifications (SSH sessions, where the program is owned
// by the middleware).
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
