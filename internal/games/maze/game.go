// Package maze binds a level and its tuning to the movement simulation and
// exposes it to the platform as a registry game: one game per level.
package maze

import (
	"fmt"
	"math"
	"time"

	"github.com/vovakirdan/tui-maze/internal/config"
	"github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/games/maze/levels"
	"github.com/vovakirdan/tui-maze/internal/games/maze/sim"
	"github.com/vovakirdan/tui-maze/internal/registry"
)

// configPath stores the custom config path set via CLI
var configPath string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// Game implements one maze level.
type Game struct {
	level levels.Level

	cfg        config.MazeConfig
	configured bool

	vols *sim.Volumes
	look *sim.LookController
	sim  *sim.Simulation

	// Run state
	frame    uint64
	finished bool
	elapsed  time.Duration
	distance float64

	runtime core.RuntimeConfig
}

// New creates a game for the level. Tuning is loaded from the config
// search path on the first Reset.
func New(level levels.Level) *Game {
	return &Game{level: level}
}

// NewWithConfig creates a game with explicit tuning.
func NewWithConfig(level levels.Level, cfg config.MazeConfig) *Game {
	return &Game{level: level, cfg: cfg, configured: true}
}

// ID returns the level ID.
func (g *Game) ID() string {
	return g.level.ID
}

// Title returns the level name.
func (g *Game) Title() string {
	return g.level.Name
}

// Level returns the level being played.
func (g *Game) Level() levels.Level {
	return g.level
}

// Config returns the tuning in use.
func (g *Game) Config() config.MazeConfig {
	return g.cfg
}

// Reset rebuilds the wall volumes and puts the player at the spawn cell,
// unlocked and at rest.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	if !g.configured {
		cfg, err := config.LoadMaze(configPath)
		if err != nil {
			cfg = config.DefaultMazeConfig()
		}
		g.cfg = cfg
		g.configured = true
	}

	if g.sim != nil {
		g.sim.Teardown()
	}

	g.vols = g.level.Volumes(g.cfg.WallSize())
	g.look = sim.NewLookController(g.level.SpawnYaw)
	g.sim = sim.New(g.vols, g.cfg.Params(), g.level.Spawn.Center(), g.look)

	g.frame = 0
	g.finished = false
	g.elapsed = 0
	g.distance = 0
}

// Step applies one frame of input and advances the simulation.
//
// Order within a frame: capture actions, intent events in arrival order,
// look rotation, then the tick. Intent flags follow the keys even while
// unlocked; look rotation only applies while locked.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.sim == nil {
		return core.StepResult{State: g.State(), Skipped: true}
	}
	g.frame++

	if in.Has(core.ActionRestart) && g.finished {
		g.restart()
	}
	if in.Has(core.ActionRelease) {
		g.sim.Release()
	}
	if in.Has(core.ActionCapture) && !g.finished {
		g.sim.Acquire()
	}

	for _, ev := range in.Intents {
		if !ev.Direction.Valid() {
			continue
		}
		if ev.Active {
			g.sim.StartIntent(ev.Direction)
		} else {
			g.sim.StopIntent(ev.Direction)
		}
	}

	if g.sim.Locked() && (in.LookYaw != 0 || in.LookPitch != 0) {
		g.look.Turn(in.LookYaw, in.LookPitch)
	}

	if g.finished {
		return core.StepResult{State: g.State(), Skipped: true}
	}

	res := g.sim.Tick(in.Delta)
	if res.Skipped {
		return core.StepResult{State: g.State(), Skipped: true}
	}

	g.elapsed += seconds(g.integratedDelta(in.Delta))
	g.distance += math.Hypot(res.Moved.X, res.Moved.Z)

	if g.atGoal() {
		g.finished = true
		g.sim.Release()
	}

	return core.StepResult{State: g.State()}
}

// restart respawns the player and clears the run counters. Held intents
// are kept so a key still down keeps working.
func (g *Game) restart() {
	g.sim.Respawn(g.level.Spawn.Center())
	g.look.Yaw, g.look.Pitch = 0, 0
	g.look.Turn(g.level.SpawnYaw, 0)
	g.finished = false
	g.elapsed = 0
	g.distance = 0
}

// integratedDelta mirrors the simulation's dt cap so elapsed time matches
// the motion that was integrated.
func (g *Game) integratedDelta(dt float64) float64 {
	if limit := g.cfg.Physics.MaxDelta; limit > 0 && dt > limit {
		return limit
	}
	return dt
}

// atGoal reports whether the player stands in the goal cell.
func (g *Game) atGoal() bool {
	if g.level.Goal == nil {
		return false
	}
	pos := g.sim.Position()
	col, row := g.level.Map.CellAt(pos.X, pos.Z)
	return col == g.level.Goal.Col && row == g.level.Goal.Row
}

// State returns the current run state.
func (g *Game) State() core.GameState {
	locked := g.sim != nil && g.sim.Locked()
	return core.GameState{
		Locked:   locked,
		Finished: g.finished,
		Elapsed:  g.elapsed,
		Distance: g.distance,
	}
}

// Position returns the player's eye position.
func (g *Game) Position() core.Vec3 {
	if g.sim == nil {
		return g.level.Spawn.Center()
	}
	return g.sim.Position()
}

// Yaw returns the current view yaw in radians.
func (g *Game) Yaw() float64 {
	if g.look == nil {
		return g.level.SpawnYaw
	}
	return g.look.Yaw
}

// Speed returns the magnitude of the player's velocity.
func (g *Game) Speed() float64 {
	if g.sim == nil {
		return 0
	}
	return g.sim.Velocity().Len()
}

// Close tears the simulation down.
func (g *Game) Close() {
	if g.sim != nil {
		g.sim.Teardown()
	}
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// RegisterLevels adds levels found at run time to the registry.
// Levels whose ID is already registered are reported and skipped.
func RegisterLevels(lvls []levels.Level) []error {
	var errs []error
	for _, lvl := range lvls {
		err := registry.TryRegister(lvl.ID, func() registry.Game {
			return New(lvl)
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("level %s from %s: %w", lvl.ID, lvl.FilePath, err))
		}
	}
	return errs
}

// Register the built-in levels with the registry
func init() {
	for _, lvl := range levels.MustBuiltin() {
		registry.Register(lvl.ID, func() registry.Game {
			return New(lvl)
		})
	}
}
