package sim

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-maze/internal/core"
)

// DampingMode selects how velocity decays each frame.
type DampingMode int

const (
	// DampingEuler applies v -= v*k*dt, a first-order step that depends on
	// frame rate. The factor is capped at 1 so an axis never flips sign.
	DampingEuler DampingMode = iota
	// DampingExact applies v *= exp(-k*dt).
	DampingExact
)

// String returns the config name of the mode.
func (m DampingMode) String() string {
	switch m {
	case DampingEuler:
		return "euler"
	case DampingExact:
		return "exact"
	default:
		return "unknown"
	}
}

// ParseDampingMode maps a config name to a mode. Empty means euler.
func ParseDampingMode(s string) (DampingMode, error) {
	switch s {
	case "", "euler":
		return DampingEuler, nil
	case "exact":
		return DampingExact, nil
	}
	return 0, fmt.Errorf("unknown damping mode %q", s)
}

// Default motion constants, per second.
const (
	DefaultDampingRate = 10.0
	DefaultAccelRate   = 30.0
)

// Integrator turns held intents into velocity and a per-frame displacement.
type Integrator struct {
	DampingRate float64
	AccelRate   float64
	Damping     DampingMode
}

// NewIntegrator returns an integrator with the default rates.
func NewIntegrator() Integrator {
	return Integrator{
		DampingRate: DefaultDampingRate,
		AccelRate:   DefaultAccelRate,
		Damping:     DampingEuler,
	}
}

// TerminalSpeed is the steady-state speed along one held axis, where
// acceleration and damping cancel. There is no other speed cap.
func (g Integrator) TerminalSpeed() float64 {
	if g.DampingRate <= 0 {
		return math.Inf(1)
	}
	return g.AccelRate / g.DampingRate
}

// Step advances velocity by dt and returns it together with this frame's
// displacement along the local axes: X along the right axis, Z along the
// forward axis.
//
// Velocity lives in the local intent frame with the opposite sign of world
// motion, so holding forward drives velocity.Z negative and the
// displacement positive.
func (g Integrator) Step(dt float64, vel core.Vec3, in *InputState) (core.Vec3, float64, float64) {
	decay := g.decay(dt)
	vel.X -= vel.X * decay
	vel.Z -= vel.Z * decay

	intent := in.LocalIntent()
	if in.Longitudinal() {
		vel.Z -= intent.Z * g.AccelRate * dt
	}
	if in.Lateral() {
		vel.X -= intent.X * g.AccelRate * dt
	}

	return vel, -vel.X * dt, -vel.Z * dt
}

// decay is the fraction of velocity removed this frame, in [0, 1].
func (g Integrator) decay(dt float64) float64 {
	k := g.DampingRate * dt
	if k <= 0 {
		return 0
	}
	if g.Damping == DampingExact {
		return 1 - math.Exp(-k)
	}
	return math.Min(k, 1)
}
