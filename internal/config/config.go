// Package config provides YAML-based tuning for the maze: physics, player
// volume, wall size, look controls and the top-down view.
package config

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/vovakirdan/tui-maze/internal/games/maze/sim"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// MazeConfig contains all tunables for a maze run.
type MazeConfig struct {
	Physics MazePhysics `yaml:"physics"`
	Player  MazePlayer  `yaml:"player"`
	Walls   MazeWalls   `yaml:"walls"`
	Look    MazeLook    `yaml:"look"`
	Input   MazeInput   `yaml:"input"`
	View    MazeView    `yaml:"view"`
}

// MazePhysics defines the motion integrator parameters.
type MazePhysics struct {
	DampingRate float64 `yaml:"damping_rate"` // per second
	AccelRate   float64 `yaml:"accel_rate"`   // units per second squared
	DampingMode string  `yaml:"damping_mode"` // "euler" or "exact"
	MaxDelta    float64 `yaml:"max_delta"`    // seconds, 0 = no cap
}

// MazePlayer defines the player's collision box and eye height.
type MazePlayer struct {
	Radius    float64 `yaml:"radius"`
	Height    float64 `yaml:"height"`
	EyeHeight float64 `yaml:"eye_height"`
}

// MazeWalls defines the size of one wall box.
type MazeWalls struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Depth  float64 `yaml:"depth"`
}

// MazeLook defines how mouse and keys turn the view.
type MazeLook struct {
	Sensitivity float64 `yaml:"sensitivity"` // radians per mouse cell
	TurnRate    float64 `yaml:"turn_rate"`   // radians per turn key press
	InvertY     bool    `yaml:"invert_y"`
}

// MazeInput defines keyboard handling.
type MazeInput struct {
	// HoldTimeout is how long a movement key counts as held after its last
	// press or repeat. Terminals do not report key releases.
	HoldTimeout time.Duration `yaml:"hold_timeout"`
}

// MazeView defines the top-down renderer.
type MazeView struct {
	CellWidth int `yaml:"cell_width"` // terminal columns per map cell
}

// Validate checks that every value is usable.
func (c MazeConfig) Validate() error {
	checks := []struct {
		ok   bool
		what string
	}{
		{positive(c.Physics.DampingRate), "physics.damping_rate must be positive and finite"},
		{positive(c.Physics.AccelRate), "physics.accel_rate must be positive and finite"},
		{c.Physics.MaxDelta >= 0 && !math.IsInf(c.Physics.MaxDelta, 0), "physics.max_delta must be finite and not negative"},
		{positive(c.Player.Radius), "player.radius must be positive and finite"},
		{positive(c.Player.Height), "player.height must be positive and finite"},
		{positive(c.Player.EyeHeight), "player.eye_height must be positive and finite"},
		{positive(c.Walls.Width) && positive(c.Walls.Height) && positive(c.Walls.Depth), "walls must have positive finite size"},
		// Cells are one unit apart, so a player centered in an open cell
		// must clear the neighbouring wall faces.
		{c.Player.Radius+c.Walls.Width/2 < 1, "player.radius plus half walls.width must be below 1"},
		{c.Player.Radius+c.Walls.Depth/2 < 1, "player.radius plus half walls.depth must be below 1"},
		{c.Look.Sensitivity >= 0 && !math.IsInf(c.Look.Sensitivity, 0), "look.sensitivity must be finite and not negative"},
		{c.Look.TurnRate >= 0 && !math.IsInf(c.Look.TurnRate, 0), "look.turn_rate must be finite and not negative"},
		{c.Input.HoldTimeout > 0, "input.hold_timeout must be positive"},
		{c.View.CellWidth >= 1, "view.cell_width must be at least 1"},
	}
	for _, chk := range checks {
		if !chk.ok {
			return fmt.Errorf("%w: %s", ErrInvalidConfig, chk.what)
		}
	}

	if _, err := sim.ParseDampingMode(c.Physics.DampingMode); err != nil {
		return fmt.Errorf("%w: physics.damping_mode: %v", ErrInvalidConfig, err)
	}
	return nil
}

// positive reports whether v is a finite number above zero. NaN fails.
func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

// Params converts the config to simulation parameters.
// An unknown damping mode falls back to Euler; call Validate first.
func (c MazeConfig) Params() sim.Params {
	mode, err := sim.ParseDampingMode(c.Physics.DampingMode)
	if err != nil {
		mode = sim.DampingEuler
	}
	return sim.Params{
		DampingRate:  c.Physics.DampingRate,
		AccelRate:    c.Physics.AccelRate,
		Damping:      mode,
		MaxDelta:     c.Physics.MaxDelta,
		PlayerRadius: c.Player.Radius,
		PlayerHeight: c.Player.Height,
		EyeHeight:    c.Player.EyeHeight,
	}
}

// WallSize converts the wall dimensions for BuildVolumes.
func (c MazeConfig) WallSize() sim.WallSize {
	return sim.WallSize{
		Width:  c.Walls.Width,
		Height: c.Walls.Height,
		Depth:  c.Walls.Depth,
	}
}
