package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/tui-maze/internal/games/maze/sim"
)

//go:embed defaults/maze.yaml
var defaultMazeYAML []byte

// DefaultHoldTimeout is how long a key press counts as held.
const DefaultHoldTimeout = 180 * time.Millisecond

// DefaultMazeConfig returns the default maze configuration.
func DefaultMazeConfig() MazeConfig {
	return MazeConfig{
		Physics: MazePhysics{
			DampingRate: sim.DefaultDampingRate,
			AccelRate:   sim.DefaultAccelRate,
			DampingMode: sim.DampingEuler.String(),
			MaxDelta:    0.1,
		},
		Player: MazePlayer{
			Radius:    sim.DefaultPlayerRadius,
			Height:    sim.DefaultPlayerHeight,
			EyeHeight: sim.DefaultEyeHeight,
		},
		Walls: MazeWalls{
			Width:  sim.DefaultWallSize.Width,
			Height: sim.DefaultWallSize.Height,
			Depth:  sim.DefaultWallSize.Depth,
		},
		Look: MazeLook{
			Sensitivity: 0.05,
			TurnRate:    0.15,
		},
		Input: MazeInput{
			HoldTimeout: DefaultHoldTimeout,
		},
		View: MazeView{
			CellWidth: 2,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultMazeYAML
}
