// Package tui provides the Bubble Tea integration for the snake game.
// It handles the terminal UI loop, input mapping, and tick scheduling.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game tick. Gen identifies the run of the
// clock that scheduled it.
type TickMsg struct {
	Gen  uint64
	Time time.Time
}

// tickClock implements snake.Clock on top of tea.Tick.
//
// Bubble Tea cannot cancel a scheduled command, so every Start bumps the
// generation and ticks from an older generation are dropped on arrival.
type tickClock struct {
	gen      uint64
	interval time.Duration
	running  bool
	pending  bool // Start was called and no tick has been scheduled yet
}

func newTickClock() *tickClock {
	return &tickClock{}
}

// Start begins a new run of ticks at the given interval.
func (c *tickClock) Start(interval time.Duration) {
	c.gen++
	c.interval = interval
	c.running = true
	c.pending = true
}

// Stop ends the current run. Ticks already in flight are ignored.
func (c *tickClock) Stop() {
	c.running = false
	c.pending = false
}

// Running reports whether ticks are being delivered.
func (c *tickClock) Running() bool {
	return c.running
}

// Cmd returns the first tick of a run requested by Start, or nil.
func (c *tickClock) Cmd() tea.Cmd {
	if !c.pending {
		return nil
	}
	c.pending = false
	return c.schedule()
}

// accept reports whether msg belongs to the current run.
func (c *tickClock) accept(msg TickMsg) bool {
	return c.running && msg.Gen == c.gen
}

// next schedules the following tick while the clock is running.
func (c *tickClock) next() tea.Cmd {
	if !c.running {
		return nil
	}
	return c.schedule()
}

func (c *tickClock) schedule() tea.Cmd {
	gen := c.gen
	return tea.Tick(c.interval, func(t time.Time) tea.Msg {
		return TickMsg{Gen: gen, Time: t}
	})
}
