// Package tui provides the Bubble Tea platform layer: it drives the game
// loop from ticks, maps keys onto the keyboard controller and paints the
// pixel buffer with half-block cells.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to run one frame.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at hz.
func tickCmd(hz int) tea.Cmd {
	if hz < 1 {
		hz = 1
	}
	interval := time.Second / time.Duration(hz)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
