package sim

import "github.com/vovakirdan/tui-maze/internal/core"

// Default player volume, in grid units.
const (
	DefaultPlayerRadius = 0.3
	DefaultPlayerHeight = 1.8
)

// Resolution reports what happened on each axis of one resolve.
type Resolution struct {
	MovedX, MovedZ     bool
	BlockedX, BlockedZ bool
}

// Blocked reports whether either axis hit a wall.
func (r Resolution) Blocked() bool {
	return r.BlockedX || r.BlockedZ
}

// Resolver tests candidate moves against the wall boxes using the player's
// own box, one axis at a time.
type Resolver struct {
	Volumes *Volumes
	Radius  float64
	Height  float64
}

// NewResolver returns a resolver with the default player volume.
func NewResolver(v *Volumes) Resolver {
	return Resolver{
		Volumes: v,
		Radius:  DefaultPlayerRadius,
		Height:  DefaultPlayerHeight,
	}
}

// PlayerVolume is the floor-to-head box around pos. Only pos.X and pos.Z
// matter; the box always stands on the floor.
func (r Resolver) PlayerVolume(pos core.Vec3) core.AABB {
	return core.NewAABBFromCenter(
		core.V3(pos.X, r.Height/2, pos.Z),
		core.V3(r.Radius*2, r.Height, r.Radius*2),
	)
}

// Blocked reports whether a player standing at pos would touch a wall.
func (r Resolver) Blocked(pos core.Vec3) bool {
	return r.Volumes.Overlaps(r.PlayerVolume(pos))
}

// Resolve applies the X step (deltaX along right) and then the Z step
// (deltaZ along forward), each only if the player box at the candidate
// position is clear. A rejected step is dropped and the matching velocity
// component is zeroed. The Z test starts from wherever the X step left the
// player, which is what lets a diagonal move slide along a wall.
//
// There is no swept test: a single step longer than a wall is thick can
// pass through it.
func (r Resolver) Resolve(pos, vel core.Vec3, deltaX, deltaZ float64, right, forward core.Vec3) (core.Vec3, core.Vec3, Resolution) {
	var res Resolution

	if deltaX != 0 {
		next := pos.Add(right.Scale(deltaX))
		if r.Blocked(next) {
			vel.X = 0
			res.BlockedX = true
		} else {
			pos = next
			res.MovedX = true
		}
	}

	if deltaZ != 0 {
		next := pos.Add(forward.Scale(deltaZ))
		if r.Blocked(next) {
			vel.Z = 0
			res.BlockedZ = true
		} else {
			pos = next
			res.MovedZ = true
		}
	}

	return pos, vel, res
}
