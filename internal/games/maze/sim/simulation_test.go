package sim

import (
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-maze/internal/core"
)

// newTestSim builds a locked simulation on the reference maze.
func newTestSim(t *testing.T, spawn core.Vec3, yaw float64) (*Simulation, *LookController) {
	t.Helper()
	look := NewLookController(yaw)
	s := New(BuildVolumes(ReferenceMap(), DefaultWallSize), DefaultParams(), spawn, look)
	s.Acquire()
	return s, look
}

// openField is a 12x12 room with walls only on the border.
func openField(t *testing.T) *Volumes {
	t.Helper()
	rows := make([]string, 12)
	for i := range rows {
		if i == 0 || i == len(rows)-1 {
			rows[i] = "############"
		} else {
			rows[i] = "#..........#"
		}
	}
	m, err := ParseRows(rows)
	if err != nil {
		t.Fatal(err)
	}
	return BuildVolumes(m, DefaultWallSize)
}

func TestInitialState(t *testing.T) {
	s := New(BuildVolumes(ReferenceMap(), DefaultWallSize), DefaultParams(), core.V3(1, 7, 1), nil)

	if s.Capture() != Unlocked {
		t.Errorf("Capture() = %v, expected unlocked", s.Capture())
	}
	if s.Position() != core.V3(1, DefaultEyeHeight, 1) {
		t.Errorf("Position() = %+v, expected spawn at eye height", s.Position())
	}
	if !s.Velocity().IsZero() {
		t.Errorf("Velocity() = %+v, expected zero", s.Velocity())
	}
}

func TestSkippedTickLeavesStateUnchanged(t *testing.T) {
	s, _ := newTestSim(t, core.V3(1, 0, 1), 0)
	s.StartIntent(core.DirForward)
	s.Tick(frame)
	s.Tick(frame)

	for _, dt := range []float64{0, -frame, math.NaN(), math.Inf(1), math.Inf(-1)} {
		before := s.State()
		res := s.Tick(dt)

		if !res.Skipped {
			t.Errorf("Tick(%v) should be skipped", dt)
		}
		after := s.State()
		if !bitsEqual(before.Position, after.Position) || !bitsEqual(before.Velocity, after.Velocity) {
			t.Errorf("Tick(%v) changed state: %+v -> %+v", dt, before, after)
		}
	}
}

func TestUnlockedTicksDoNothing(t *testing.T) {
	s, _ := newTestSim(t, core.V3(1, 0, 1), 0)
	s.Release()
	s.StartIntent(core.DirBackward)

	before := s.State()
	for i := 0; i < 30; i++ {
		if res := s.Tick(frame); !res.Skipped {
			t.Fatal("Ticks while unlocked should be skipped")
		}
	}
	if s.State() != before {
		t.Errorf("State changed while unlocked: %+v -> %+v", before, s.State())
	}
	if !s.Input().Active(core.DirBackward) {
		t.Error("Intent flags should keep tracking key state while unlocked")
	}
}

func TestReleaseResetsVelocity(t *testing.T) {
	s, _ := newTestSim(t, core.V3(1, 0, 1), math.Pi)
	s.StartIntent(core.DirForward)
	s.StartIntent(core.DirLeft)
	for i := 0; i < 10; i++ {
		s.Tick(frame)
	}
	if s.Velocity().IsZero() {
		t.Fatal("Expected non-zero velocity before release")
	}

	pos := s.Position()
	s.Release()

	if s.Velocity() != (core.Vec3{}) {
		t.Errorf("Velocity() = %+v after release, expected exactly zero", s.Velocity())
	}
	if s.Position() != pos {
		t.Errorf("Position changed on release: %+v -> %+v", pos, s.Position())
	}
	if s.Capture() != Unlocked {
		t.Error("Release should leave the simulation unlocked")
	}
}

func TestAxisIndependence(t *testing.T) {
	// Just right of the column-0 wall in row 1; nothing ahead along -Z.
	start := core.V3(0.805, 0, 1.0)
	s, _ := newTestSim(t, start, 0)
	s.StartIntent(core.DirForward)
	s.StartIntent(core.DirLeft)

	res := s.Tick(frame)
	pos := s.Position()

	if !res.Resolution.BlockedX || res.Resolution.MovedX {
		t.Errorf("Resolution = %+v, expected X blocked", res.Resolution)
	}
	if !res.Resolution.MovedZ {
		t.Errorf("Resolution = %+v, expected Z to move", res.Resolution)
	}
	if pos.X != start.X {
		t.Errorf("X moved from %f to %f, expected no X displacement", start.X, pos.X)
	}
	if pos.Z >= start.Z {
		t.Errorf("Z = %f, expected movement toward -Z from %f", pos.Z, start.Z)
	}
	if s.Velocity().X != 0 {
		t.Errorf("Velocity X = %f, expected zero after a blocked axis", s.Velocity().X)
	}
	if s.Velocity().Z == 0 {
		t.Error("Velocity Z should survive an X-only collision")
	}
}

func TestWallSlide(t *testing.T) {
	// Press diagonally into the west wall for a second; the player should
	// slide north along it instead of stopping.
	s, _ := newTestSim(t, core.V3(1, 0, 4), 0)
	s.StartIntent(core.DirForward)
	s.StartIntent(core.DirLeft)

	for i := 0; i < 60; i++ {
		s.Tick(frame)
	}

	pos := s.Position()
	if pos.X < 0.8 {
		t.Errorf("X = %f, expected to stay clear of the wall (>= 0.8)", pos.X)
	}
	if pos.Z > 3.0 {
		t.Errorf("Z = %f, expected to slide well north of 4", pos.Z)
	}
}

func TestBoundaryScenario(t *testing.T) {
	// (1.5, 1.5) sits on the corner shared with wall cell (2, 2), so the
	// player box already touches it and every move is rejected.
	start := core.V3(1.5, 0, 1.5)
	s, _ := newTestSim(t, start, math.Pi/2)
	if !s.Resolver().Blocked(s.Position()) {
		t.Fatalf("expected the box at %+v to touch wall (2, 2)", s.Position())
	}

	s.StartIntent(core.DirForward)
	for i := 0; i < 300; i++ {
		s.Tick(frame)
		pos := s.Position()
		if pos.X != start.X || pos.Z != start.Z {
			t.Fatalf("tick %d: moved to %+v from a blocked start", i, pos)
		}
		if pos.X < 0.5 {
			t.Fatalf("tick %d: X = %f crossed into the boundary wall", i, pos.X)
		}
	}
}

func TestBoundaryScenarioFromCellCenter(t *testing.T) {
	s, _ := newTestSim(t, core.V3(1, 0, 1), math.Pi/2)
	s.StartIntent(core.DirForward)

	for i := 0; i < 300; i++ {
		s.Tick(frame)
		pos := s.Position()
		if pos.X < 0.8 {
			t.Fatalf("tick %d: X = %f, expected the player box to stop at the wall face", i, pos.X)
		}
		if s.Resolver().Blocked(pos) {
			t.Fatalf("tick %d: player at %+v overlaps a wall", i, pos)
		}
	}

	if s.Position().X > 0.85 {
		t.Errorf("X = %f, expected the player to reach the wall", s.Position().X)
	}
}

func TestNoPenetrationRandomWalk(t *testing.T) {
	s, look := newTestSim(t, core.V3(1, 0, 1), 0)
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 5000; i++ {
		if i%15 == 0 {
			for _, d := range core.Directions() {
				if rng.Intn(2) == 0 {
					s.StartIntent(d)
				} else {
					s.StopIntent(d)
				}
			}
			look.Turn((rng.Float64()-0.5)*1.5, 0)
		}

		dt := frame * (0.5 + rng.Float64())
		s.Tick(dt)

		if s.Resolver().Blocked(s.Position()) {
			t.Fatalf("tick %d: player at %+v overlaps a wall", i, s.Position())
		}
	}
}

func TestCoastingShrinksMonotonically(t *testing.T) {
	s, _ := newTestSim(t, core.V3(5, 0, 8), 0)
	s.volumes = openField(t)
	s.resolver.Volumes = s.volumes

	s.StartIntent(core.DirForward)
	for i := 0; i < 20; i++ {
		s.Tick(frame)
	}
	s.StopIntent(core.DirForward)

	prev := math.Inf(1)
	for i := 0; i < 40; i++ {
		res := s.Tick(frame)
		step := res.Moved.Len()
		if step >= prev {
			t.Fatalf("tick %d: step %g did not shrink from %g", i, step, prev)
		}
		if res.Moved.Z > 0 {
			t.Fatalf("tick %d: coasting reversed direction", i)
		}
		prev = step
	}
}

func TestMaxDeltaClamp(t *testing.T) {
	p := DefaultParams()
	p.MaxDelta = 0.05
	s := New(openField(t), p, core.V3(5, 0, 5), nil)
	s.Acquire()
	s.StartIntent(core.DirForward)

	s.Tick(10)

	// One clamped frame from rest: v = 30*0.05 = 1.5, step = 1.5*0.05.
	if moved := 5 - s.Position().Z; !approx(moved, 0.075, 1e-12) {
		t.Errorf("Moved %f, expected a step clamped to 0.075", moved)
	}
}

func TestTeardown(t *testing.T) {
	s, _ := newTestSim(t, core.V3(1, 0, 1), 0)
	s.StartIntent(core.DirForward)
	s.Tick(frame)

	s.Teardown()
	if s.Capture() != Unlocked || s.Volumes() != nil {
		t.Error("Teardown should unlock and drop the volumes")
	}

	s.Acquire()
	s.StartIntent(core.DirForward)
	if res := s.Tick(frame); !res.Skipped {
		t.Error("Ticks after teardown should be skipped")
	}
}

func TestSetOrientation(t *testing.T) {
	s := New(openField(t), DefaultParams(), core.V3(5, 0, 5), nil)
	s.Acquire()
	s.SetOrientation(fixedLook{core.V3(1, 0, 0)})
	s.SetOrientation(nil)
	s.StartIntent(core.DirForward)

	s.Tick(frame)
	if s.Position().X <= 5 || s.Position().Z != 5 {
		t.Errorf("Position() = %+v, expected movement along +X only", s.Position())
	}
}

type fixedLook struct{ v core.Vec3 }

func (f fixedLook) HorizontalForward() core.Vec3 { return f.v }

func bitsEqual(a, b core.Vec3) bool {
	return math.Float64bits(a.X) == math.Float64bits(b.X) &&
		math.Float64bits(a.Y) == math.Float64bits(b.Y) &&
		math.Float64bits(a.Z) == math.Float64bits(b.Z)
}
