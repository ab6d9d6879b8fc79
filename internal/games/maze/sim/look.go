package sim

import (
	"math"

	"github.com/vovakirdan/tui-maze/internal/core"
)

// Orientation is the only thing the simulation needs from whoever owns the
// view: the current look direction projected onto the ground.
type Orientation interface {
	HorizontalForward() core.Vec3
}

// degenerateEpsilon is the horizontal length below which a look vector is
// treated as pointing straight up or down.
const degenerateEpsilon = 1e-9

// maxPitch keeps the view just short of vertical.
const maxPitch = math.Pi/2 - 0.01

// LookController owns the view angles. Yaw 0 looks down world -Z and
// positive yaw turns to the left. Pitch only tilts the view; movement uses
// the ground-projected axes.
type LookController struct {
	Yaw   float64
	Pitch float64
}

// NewLookController creates a controller facing the given yaw.
func NewLookController(yaw float64) *LookController {
	l := &LookController{}
	l.Turn(yaw, 0)
	return l
}

// Turn rotates the view. Yaw wraps into (-pi, pi]; pitch is clamped.
func (l *LookController) Turn(dyaw, dpitch float64) {
	if core.IsFinite(dyaw) {
		l.Yaw = wrapAngle(l.Yaw + dyaw)
	}
	if core.IsFinite(dpitch) {
		l.Pitch = core.ClampF(l.Pitch+dpitch, -maxPitch, maxPitch)
	}
}

// Forward returns the full unit view vector including pitch.
func (l *LookController) Forward() core.Vec3 {
	cp := math.Cos(l.Pitch)
	return core.V3(-math.Sin(l.Yaw)*cp, math.Sin(l.Pitch), -math.Cos(l.Yaw)*cp)
}

// HorizontalForward implements Orientation.
func (l *LookController) HorizontalForward() core.Vec3 {
	return l.Forward()
}

// ForwardGround returns the view direction flattened onto the floor.
func (l *LookController) ForwardGround() core.Vec3 {
	f, _ := GroundAxes(l.Forward())
	return f
}

// RightGround returns the horizontal axis to the right of ForwardGround.
func (l *LookController) RightGround() core.Vec3 {
	_, r := GroundAxes(l.Forward())
	return r
}

// GroundAxes flattens a look vector and derives the matching right axis.
// Both results are unit length with Y = 0. A vector with no usable
// horizontal part falls back to facing -Z with +X to the right.
func GroundAxes(look core.Vec3) (forward, right core.Vec3) {
	flat := core.V3(look.X, 0, look.Z)
	if !flat.IsFinite() || flat.Len() < degenerateEpsilon {
		return core.V3(0, 0, -1), core.V3(1, 0, 0)
	}

	forward, _ = flat.Normalize()
	right, _ = forward.Cross(core.Up).Normalize()
	return forward, right
}

func wrapAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a > math.Pi {
		a -= 2 * math.Pi
	} else if a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
