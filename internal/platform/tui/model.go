package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-maze/internal/config"
	"github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/registry"
	"github.com/vovakirdan/tui-maze/internal/storage"
)

// Controls are the player-facing input settings.
type Controls struct {
	HoldTimeout time.Duration
	RepeatDelay time.Duration
	Sensitivity float64 // radians per mouse cell
	TurnRate    float64 // radians per turn key press
	InvertY     bool
}

// DefaultControls returns the controls of the default config.
func DefaultControls() Controls {
	return ControlsFromConfig(config.DefaultMazeConfig())
}

// ControlsFromConfig extracts the input settings from a maze config.
func ControlsFromConfig(cfg config.MazeConfig) Controls {
	return Controls{
		HoldTimeout: cfg.Input.HoldTimeout,
		RepeatDelay: DefaultRepeatDelay,
		Sensitivity: cfg.Look.Sensitivity,
		TurnRate:    cfg.Look.TurnRate,
		InvertY:     cfg.Look.InvertY,
	}
}

// RunSaver records finished runs. *storage.Store implements it.
type RunSaver interface {
	SaveRun(levelID string, duration time.Duration, distance float64) (string, error)
}

// GameModel is the Bubble Tea model that drives one level.
// Every tick collects the input gathered since the previous one into an
// InputFrame, steps the game with the measured frame time and renders.
type GameModel struct {
	game     registry.Game
	screen   *core.Screen
	renderer *ScreenRenderer
	runs     RunSaver
	config   core.RuntimeConfig
	controls Controls

	keyMapper *KeyMapper
	holds     *HoldTracker
	clock     func() time.Time

	inputFrame core.InputFrame
	gameState  core.GameState
	lastTick   time.Time

	mouseX, mouseY int
	mouseSeen      bool

	runSaved   bool // Whether the current finished run has been saved
	lastRunID  string
	quitting   bool
	backToMenu bool
	standalone bool // Back quits the program instead of returning to a menu
}

// NewGameModel creates a new game model. A nil runs disables run history.
func NewGameModel(game registry.Game, runs RunSaver, cfg core.RuntimeConfig, controls Controls) GameModel {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		renderer:   defaultScreenRenderer,
		runs:       runs,
		config:     cfg,
		controls:   controls,
		keyMapper:  NewKeyMapper(),
		holds:      NewHoldTracker(controls.HoldTimeout, controls.RepeatDelay),
		clock:      time.Now,
		inputFrame: core.NewInputFrame(),
	}
}

// Init initializes the game and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		// The view scales and scrolls, so a resize never resets the run.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case tea.BlurMsg:
		// Losing focus loses capture, like a browser losing pointer lock.
		m.inputFrame.Set(core.ActionRelease)
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	r := m.keyMapper.MapKey(msg)
	if r.Quit {
		m.quitting = true
		return m, tea.Quit
	}

	switch {
	case r.Move:
		if m.holds.Press(r.Direction, m.clock()) {
			m.inputFrame.Start(r.Direction)
		}
	case r.Turn != TurnNone:
		m.inputFrame.Look(float64(r.Turn)*m.controls.TurnRate, 0)
	case r.Action == core.ActionBack:
		// Back only leaves a run that does not own the input.
		if !m.gameState.Locked {
			m.backToMenu = true
			if m.standalone {
				return m, tea.Quit
			}
		}
	case r.Action != core.ActionNone:
		m.inputFrame.Set(r.Action)
	}

	return m, nil
}

// handleMouse turns clicks into capture and motion into look rotation.
func (m GameModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		m.inputFrame.Set(core.ActionCapture)
	}

	if msg.Action == tea.MouseActionMotion || msg.Action == tea.MouseActionPress {
		if m.mouseSeen {
			dx := float64(msg.X - m.mouseX)
			dy := float64(msg.Y - m.mouseY)
			pitch := -dy * m.controls.Sensitivity
			if m.controls.InvertY {
				pitch = -pitch
			}
			m.inputFrame.Look(-dx*m.controls.Sensitivity, pitch)
		}
		m.mouseX, m.mouseY = msg.X, msg.Y
		m.mouseSeen = true
	}

	return m, nil
}

// handleTick steps the game by the wall-clock time since the last tick.
func (m GameModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	for _, d := range m.holds.Expire(now) {
		m.inputFrame.Stop(d)
	}

	m.inputFrame.Delta = frameDelta(m.lastTick, now)
	m.lastTick = now

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	// Save the run once when the goal is reached
	if m.gameState.Finished {
		if !m.runSaved {
			m.saveRun()
			m.runSaved = true
		}
	} else {
		m.runSaved = false
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	// Continue ticking
	return m, tickCmd(m.config.TickRate)
}

// saveRun stores the finished run, best effort.
func (m *GameModel) saveRun() {
	if m.runs == nil || m.gameState.Elapsed <= 0 {
		return
	}
	id, err := m.runs.SaveRun(m.game.ID(), m.gameState.Elapsed, m.gameState.Distance)
	if err == nil {
		m.lastRunID = id
	}
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	// Render current state
	m.game.Render(m.screen)

	// Create screenshots directory
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".maze", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	// Generate filename with timestamp
	timestamp := m.clock().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	// Render game to screen buffer
	m.game.Render(m.screen)

	// Convert screen to string
	return m.renderer.Render(m.screen)
}

// WithRenderer returns the model drawing through r.
func (m GameModel) WithRenderer(r *ScreenRenderer) GameModel {
	if r != nil {
		m.renderer = r
	}
	return m
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// State returns the game state after the last tick.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// LastRunID returns the ID of the most recently saved run, if any.
func (m GameModel) LastRunID() string {
	return m.lastRunID
}

// Run plays one level in the local terminal until the player quits or
// goes back.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, controls Controls) error {
	var runs RunSaver
	if store != nil {
		runs = store
	}

	model := NewGameModel(game, runs, cfg, controls)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),      // Use alternate screen buffer
		tea.WithMouseAllMotion(), // Mouse motion turns the view
		tea.WithReportFocus(),    // Focus loss releases capture
	)

	_, err := p.Run()
	if c, ok := game.(interface{ Close() }); ok {
		c.Close()
	}
	return err
}
