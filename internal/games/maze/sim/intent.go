package sim

import (
	"fmt"

	"github.com/vovakirdan/tui-maze/internal/core"
)

// InputState holds the four held movement intents.
// A flag stays set from its start event until its stop event; there is no
// repeat timing here.
type InputState struct {
	held [4]bool
}

func (s *InputState) index(d core.Direction) int {
	switch d {
	case core.DirForward:
		return 0
	case core.DirBackward:
		return 1
	case core.DirLeft:
		return 2
	case core.DirRight:
		return 3
	}
	panic(fmt.Sprintf("sim: invalid direction %d", int(d)))
}

// Start marks d as held.
func (s *InputState) Start(d core.Direction) {
	s.Set(d, true)
}

// Stop marks d as released.
func (s *InputState) Stop(d core.Direction) {
	s.Set(d, false)
}

// Set writes the flag for d. Unknown directions are ignored.
func (s *InputState) Set(d core.Direction, held bool) {
	if !d.Valid() {
		return
	}
	s.held[s.index(d)] = held
}

// Active reports whether d is held.
func (s *InputState) Active(d core.Direction) bool {
	if !d.Valid() {
		return false
	}
	return s.held[s.index(d)]
}

// Any reports whether at least one intent is held.
func (s *InputState) Any() bool {
	return s.held[0] || s.held[1] || s.held[2] || s.held[3]
}

// Longitudinal reports whether forward or backward is held.
func (s *InputState) Longitudinal() bool {
	return s.Active(core.DirForward) || s.Active(core.DirBackward)
}

// Lateral reports whether left or right is held.
func (s *InputState) Lateral() bool {
	return s.Active(core.DirLeft) || s.Active(core.DirRight)
}

// LocalIntent returns the held direction in the player's local frame:
// X is right minus left, Z is forward minus backward. Diagonals are
// normalized so the result never exceeds unit length.
func (s *InputState) LocalIntent() core.Vec3 {
	v := core.V3(
		boolf(s.Active(core.DirRight))-boolf(s.Active(core.DirLeft)),
		0,
		boolf(s.Active(core.DirForward))-boolf(s.Active(core.DirBackward)),
	)
	n, ok := v.Normalize()
	if !ok {
		return core.Vec3{}
	}
	return n
}

// Clear releases every intent.
func (s *InputState) Clear() {
	s.held = [4]bool{}
}

func boolf(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
