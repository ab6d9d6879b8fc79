package maze

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/vovakirdan/tui-maze/internal/core"
)

// Snapshot captures the complete run state for determinism testing.
type Snapshot struct {
	Frame   uint64
	LevelID string

	PosX, PosZ float64
	VelX, VelZ float64
	Yaw, Pitch float64

	Held     [4]bool // indexed by core.Direction
	Locked   bool
	Finished bool

	ElapsedNanos int64
	Distance     float64
}

// Snapshot returns the current run snapshot.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Frame:        g.frame,
		LevelID:      g.level.ID,
		Finished:     g.finished,
		ElapsedNanos: int64(g.elapsed),
		Distance:     g.distance,
	}
	if g.sim == nil {
		return snap
	}

	st := g.sim.State()
	snap.PosX, snap.PosZ = st.Position.X, st.Position.Z
	snap.VelX, snap.VelZ = st.Velocity.X, st.Velocity.Z
	snap.Yaw, snap.Pitch = g.look.Yaw, g.look.Pitch
	snap.Locked = g.sim.Locked()
	for _, d := range core.Directions() {
		snap.Held[d] = g.sim.Input().Active(d)
	}
	return snap
}

// Hash returns an xxhash digest of the snapshot. Floats are hashed by
// their exact bit patterns, so two runs only match if they agree to the
// last bit.
func (snap *Snapshot) Hash() uint64 {
	d := xxhash.New()
	var buf [8]byte

	putU64 := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = d.Write(buf[:])
	}
	putF64 := func(v float64) {
		putU64(math.Float64bits(v))
	}
	putBool := func(b bool) {
		if b {
			putU64(1)
		} else {
			putU64(0)
		}
	}

	putU64(snap.Frame)
	_, _ = d.WriteString(snap.LevelID)
	putF64(snap.PosX)
	putF64(snap.PosZ)
	putF64(snap.VelX)
	putF64(snap.VelZ)
	putF64(snap.Yaw)
	putF64(snap.Pitch)
	for _, h := range snap.Held {
		putBool(h)
	}
	putBool(snap.Locked)
	putBool(snap.Finished)
	putU64(uint64(snap.ElapsedNanos)) //#nosec G115 -- hash computation
	putF64(snap.Distance)

	return d.Sum64()
}
