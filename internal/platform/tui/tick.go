// Package tui provides the Bubble Tea integration for the maze.
// It handles the terminal UI loop, input mapping, and frame timing.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a simulation frame.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// frameDelta returns the seconds between two tick timestamps.
// The first tick has no predecessor and yields 0, which the simulation
// treats as a skipped frame.
func frameDelta(prev, now time.Time) float64 {
	if prev.IsZero() {
		return 0
	}
	return now.Sub(prev).Seconds()
}
