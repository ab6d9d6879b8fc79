package sim

import "github.com/vovakirdan/tui-maze/internal/core"

// DefaultEyeHeight is the camera height above the floor.
const DefaultEyeHeight = 1.0

// Params are the tunable constants of one simulation.
type Params struct {
	DampingRate float64
	AccelRate   float64
	Damping     DampingMode

	// MaxDelta caps a single frame's dt in seconds. Zero disables the cap.
	MaxDelta float64

	PlayerRadius float64
	PlayerHeight float64
	EyeHeight    float64
}

// DefaultParams returns the reference tuning.
func DefaultParams() Params {
	return Params{
		DampingRate:  DefaultDampingRate,
		AccelRate:    DefaultAccelRate,
		Damping:      DampingEuler,
		PlayerRadius: DefaultPlayerRadius,
		PlayerHeight: DefaultPlayerHeight,
		EyeHeight:    DefaultEyeHeight,
	}
}

// PlayerState is the mutable part of the simulation.
// Only X and Z of either vector ever change.
type PlayerState struct {
	Position core.Vec3
	Velocity core.Vec3
}

// TickResult describes one call to Tick.
type TickResult struct {
	// Skipped is true when nothing was integrated: unlocked, torn down, or
	// dt was zero, negative, NaN or infinite.
	Skipped bool

	// Moved is the world-space change in position.
	Moved core.Vec3

	Resolution Resolution
}

// Simulation is the whole per-player context. The frame loop owns it; it
// is not safe for concurrent use, and events must be applied between ticks.
type Simulation struct {
	params     Params
	volumes    *Volumes
	integrator Integrator
	resolver   Resolver
	look       Orientation

	player  PlayerState
	input   InputState
	capture Capture
}

// New creates a simulation with the player standing at spawn (X, Z) at eye
// height, unlocked and at rest. A nil look uses a LookController facing -Z.
func New(vols *Volumes, p Params, spawn core.Vec3, look Orientation) *Simulation {
	if look == nil {
		look = NewLookController(0)
	}

	s := &Simulation{
		params:  p,
		volumes: vols,
		integrator: Integrator{
			DampingRate: p.DampingRate,
			AccelRate:   p.AccelRate,
			Damping:     p.Damping,
		},
		resolver: Resolver{
			Volumes: vols,
			Radius:  p.PlayerRadius,
			Height:  p.PlayerHeight,
		},
		look:    look,
		capture: Unlocked,
	}
	s.Respawn(spawn)
	return s
}

// Tick advances one frame of dt seconds: damping, acceleration, then the
// per-axis collision resolve. Ticks while unlocked, or with an unusable dt,
// leave the state untouched.
func (s *Simulation) Tick(dt float64) TickResult {
	if s.capture != Locked || s.volumes == nil || !core.IsFinite(dt) || dt <= 0 {
		return TickResult{Skipped: true}
	}
	if s.params.MaxDelta > 0 && dt > s.params.MaxDelta {
		dt = s.params.MaxDelta
	}

	forward, right := GroundAxes(s.look.HorizontalForward())

	vel, deltaX, deltaZ := s.integrator.Step(dt, s.player.Velocity, &s.input)
	before := s.player.Position
	pos, vel, res := s.resolver.Resolve(before, vel, deltaX, deltaZ, right, forward)

	s.player.Position = pos
	s.player.Velocity = vel

	return TickResult{
		Moved:      pos.Sub(before),
		Resolution: res,
	}
}

// StartIntent marks a movement intent as held. Flags track raw key state
// even while unlocked.
func (s *Simulation) StartIntent(d core.Direction) {
	s.input.Start(d)
}

// StopIntent releases a movement intent.
func (s *Simulation) StopIntent(d core.Direction) {
	s.input.Stop(d)
}

// Input exposes the held intents.
func (s *Simulation) Input() *InputState {
	return &s.input
}

// Acquire handles capture being acquired.
func (s *Simulation) Acquire() {
	s.capture = Locked
}

// Release handles capture being lost. Velocity is reset to exactly zero;
// position is kept.
func (s *Simulation) Release() {
	s.capture = Unlocked
	s.player.Velocity = core.Vec3{}
}

// Capture returns the current capture state.
func (s *Simulation) Capture() Capture {
	return s.capture
}

// Locked reports whether the simulation owns input.
func (s *Simulation) Locked() bool {
	return s.capture == Locked
}

// SetOrientation replaces the view direction source.
func (s *Simulation) SetOrientation(o Orientation) {
	if o != nil {
		s.look = o
	}
}

// Respawn moves the player to spawn at eye height and stops it.
func (s *Simulation) Respawn(spawn core.Vec3) {
	s.player = PlayerState{
		Position: core.V3(spawn.X, s.params.EyeHeight, spawn.Z),
	}
}

// Position returns the player's eye position.
func (s *Simulation) Position() core.Vec3 {
	return s.player.Position
}

// Velocity returns the player's velocity in the local intent frame.
func (s *Simulation) Velocity() core.Vec3 {
	return s.player.Velocity
}

// State returns a copy of the player state.
func (s *Simulation) State() PlayerState {
	return s.player
}

// Volumes returns the wall boxes, for debug views.
func (s *Simulation) Volumes() *Volumes {
	return s.volumes
}

// Resolver returns the collision resolver in use.
func (s *Simulation) Resolver() Resolver {
	return s.resolver
}

// Integrator returns the motion integrator in use.
func (s *Simulation) Integrator() Integrator {
	return s.integrator
}

// Teardown drops the wall boxes and returns to the unlocked state. Ticks
// after teardown are skipped until the simulation is rebuilt.
func (s *Simulation) Teardown() {
	s.Release()
	s.volumes = nil
	s.resolver.Volumes = nil
	s.input.Clear()
}
