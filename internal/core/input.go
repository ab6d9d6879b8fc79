package core

import (
	"fmt"
	"strings"
)

// Direction is one of the four movement intents.
// The set is closed; every switch over it should be exhaustive.
type Direction int

const (
	DirForward Direction = iota
	DirBackward
	DirLeft
	DirRight

	numDirections
)

// Directions returns all directions in declaration order.
func Directions() []Direction {
	return []Direction{DirForward, DirBackward, DirLeft, DirRight}
}

// Valid reports whether d is one of the four known directions.
func (d Direction) Valid() bool {
	return d >= DirForward && d < numDirections
}

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case DirForward:
		return "forward"
	case DirBackward:
		return "backward"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// ParseDirection converts a name produced by String back to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "forward":
		return DirForward, nil
	case "backward":
		return DirBackward, nil
	case "left":
		return DirLeft, nil
	case "right":
		return DirRight, nil
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

// Action represents a one-shot platform action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionCapture        // Enter, click - take over input (pointer lock acquired)
	ActionRelease        // Esc - hand input back (pointer lock lost)
	ActionConfirm        // Enter - confirm selection in menu
	ActionUp             // menu navigation
	ActionDown           // menu navigation
	ActionBack           // B - go back to menu
	ActionRestart        // R - respawn after finishing
	ActionQuit           // Q, Ctrl+C - exit game/session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionCapture:
		return "Capture"
	case ActionRelease:
		return "Release"
	case ActionConfirm:
		return "Confirm"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// IntentEvent is a start (Active=true) or stop of one movement intent.
type IntentEvent struct {
	Direction Direction
	Active    bool
}

// InputFrame is everything the platform collected between two frames.
// Intent events are kept in arrival order so the last write wins.
type InputFrame struct {
	// Delta is the frame time in seconds.
	Delta float64

	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	Intents []IntentEvent

	// LookYaw and LookPitch are accumulated view rotations in radians.
	LookYaw   float64
	LookPitch float64
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Start records an intent start event.
func (f *InputFrame) Start(d Direction) {
	f.Intents = append(f.Intents, IntentEvent{Direction: d, Active: true})
}

// Stop records an intent stop event.
func (f *InputFrame) Stop(d Direction) {
	f.Intents = append(f.Intents, IntentEvent{Direction: d, Active: false})
}

// Look accumulates a view rotation.
func (f *InputFrame) Look(yaw, pitch float64) {
	f.LookYaw += yaw
	f.LookPitch += pitch
}

// Clear resets the frame for the next tick.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Intents = f.Intents[:0]
	f.LookYaw = 0
	f.LookPitch = 0
	f.Delta = 0
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	clone.Intents = append([]IntentEvent(nil), f.Intents...)
	clone.LookYaw = f.LookYaw
	clone.LookPitch = f.LookPitch
	clone.Delta = f.Delta
	return clone
}
