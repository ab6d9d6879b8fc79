package tui

import (
	"time"

	"github.com/vovakirdan/tui-maze/internal/core"
)

// Default hold timings.
const (
	DefaultHoldTimeout = 180 * time.Millisecond
	// DefaultRepeatDelay covers the gap between a key press and the
	// terminal's first auto-repeat.
	DefaultRepeatDelay = 500 * time.Millisecond
)

// HoldTracker turns key presses into held intents for terminals that never
// report key releases. A press starts a hold; auto-repeats extend it; a
// hold with no repeat for the timeout expires, which stands in for the
// release.
type HoldTracker struct {
	timeout     time.Duration
	repeatDelay time.Duration

	held     [4]bool
	deadline [4]time.Time
}

// NewHoldTracker creates a tracker. Zero durations use the defaults.
func NewHoldTracker(timeout, repeatDelay time.Duration) *HoldTracker {
	if timeout <= 0 {
		timeout = DefaultHoldTimeout
	}
	if repeatDelay <= 0 {
		repeatDelay = DefaultRepeatDelay
	}
	if repeatDelay < timeout {
		repeatDelay = timeout
	}
	return &HoldTracker{timeout: timeout, repeatDelay: repeatDelay}
}

// Press records a press or auto-repeat of d at now.
// Returns true when the press starts a new hold.
func (h *HoldTracker) Press(d core.Direction, now time.Time) bool {
	if !d.Valid() {
		return false
	}
	if h.held[d] {
		h.deadline[d] = now.Add(h.timeout)
		return false
	}
	h.held[d] = true
	h.deadline[d] = now.Add(h.repeatDelay)
	return true
}

// Expire ends every hold whose deadline has passed at now and returns the
// directions released, in declaration order.
func (h *HoldTracker) Expire(now time.Time) []core.Direction {
	var released []core.Direction
	for _, d := range core.Directions() {
		if h.held[d] && !now.Before(h.deadline[d]) {
			h.held[d] = false
			released = append(released, d)
		}
	}
	return released
}

// ReleaseAll ends every hold and returns the directions released.
func (h *HoldTracker) ReleaseAll() []core.Direction {
	var released []core.Direction
	for _, d := range core.Directions() {
		if h.held[d] {
			h.held[d] = false
			released = append(released, d)
		}
	}
	return released
}

// Held reports whether d is currently held.
func (h *HoldTracker) Held(d core.Direction) bool {
	return d.Valid() && h.held[d]
}
