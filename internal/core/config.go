package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to the terminal size.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // Frames per second requested from the platform
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// GameState represents the current state of a maze run.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Locked   bool          // Whether the simulation currently owns player input
	Finished bool          // Whether the goal cell has been reached
	Elapsed  time.Duration // Time spent moving while locked
	Distance float64       // Horizontal distance travelled, in grid units
}

// StepResult is returned by Game.Step() after each frame.
type StepResult struct {
	State GameState
	// Skipped is true when the frame produced no integration (unlocked,
	// finished, or an unusable delta time).
	Skipped bool
}
