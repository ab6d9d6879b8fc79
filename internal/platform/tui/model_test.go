package tui

import (
	"math"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/storage"
)

// recordingGame records every frame it is stepped with.
type recordingGame struct {
	frames []core.InputFrame
	state  core.GameState
	resets int
}

func (g *recordingGame) ID() string { return "stub" }
func (g *recordingGame) Title() string { return "Stub" }
func (g *recordingGame) Reset(core.RuntimeConfig) { g.resets++ }
func (g *recordingGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "stub") }
func (g *recordingGame) State() core.GameState { return g.state }

func (g *recordingGame) Step(in core.InputFrame) core.StepResult {
	g.frames = append(g.frames, in.Clone())
	return core.StepResult{State: g.state}
}

func (g *recordingGame) last() core.InputFrame {
	return g.frames[len(g.frames)-1]
}

type recordingSaver struct {
	calls int
	level string
	dur   time.Duration
}

func (s *recordingSaver) SaveRun(levelID string, d time.Duration, _ float64) (string, error) {
	s.calls++
	s.level = levelID
	s.dur = d
	return "run-1", nil
}

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func newTestModel(g *recordingGame, saver RunSaver) (GameModel, *fakeClock) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	cfg := core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60}
	m := NewGameModel(g, saver, cfg, DefaultControls())
	m.clock = clock.Now
	return m, clock
}

func update(t *testing.T, m GameModel, msg tea.Msg) GameModel {
	t.Helper()
	next, _ := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return gm
}

func TestGameModelInitResets(t *testing.T) {
	g := &recordingGame{}
	m, _ := newTestModel(g, nil)
	if cmd := m.Init(); cmd == nil {
		t.Error("Init should start ticking")
	}
	if g.resets != 1 {
		t.Errorf("resets = %d, want 1", g.resets)
	}
}

func TestGameModelTickDelta(t *testing.T) {
	g := &recordingGame{}
	m, clock := newTestModel(g, nil)

	m = update(t, m, TickMsg(clock.now))
	if d := g.last().Delta; d != 0 {
		t.Errorf("first tick delta = %v, want 0", d)
	}

	m = update(t, m, TickMsg(clock.now.Add(20*time.Millisecond)))
	if d := g.last().Delta; math.Abs(d-0.02) > 1e-9 {
		t.Errorf("second tick delta = %v, want 0.02", d)
	}
	_ = m
}

func TestGameModelHeldKeyStartsAndExpires(t *testing.T) {
	g := &recordingGame{}
	m, clock := newTestModel(g, nil)

	m = update(t, m, runeKey("w"))
	m = update(t, m, TickMsg(clock.now.Add(16*time.Millisecond)))
	want := []core.IntentEvent{{Direction: core.DirForward, Active: true}}
	if got := g.last().Intents; len(got) != 1 || got[0] != want[0] {
		t.Fatalf("intents = %v, want %v", got, want)
	}

	// A repeat extends the hold without another start.
	clock.now = clock.now.Add(500 * time.Millisecond)
	m = update(t, m, runeKey("w"))
	m = update(t, m, TickMsg(clock.now))
	if got := g.last().Intents; len(got) != 0 {
		t.Errorf("repeat produced intents %v", got)
	}

	// No repeat for longer than the hold timeout stops the intent.
	m = update(t, m, TickMsg(clock.now.Add(DefaultHoldTimeout)))
	got := g.last().Intents
	if len(got) != 1 || got[0] != (core.IntentEvent{Direction: core.DirForward, Active: false}) {
		t.Errorf("intents after timeout = %v, want forward stop", got)
	}
	_ = m
}

func TestGameModelTurnKeys(t *testing.T) {
	g := &recordingGame{}
	m, clock := newTestModel(g, nil)
	rate := m.controls.TurnRate

	m = update(t, m, runeKey(","))
	m = update(t, m, runeKey(","))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = update(t, m, TickMsg(clock.now))

	if got := g.last().LookYaw; math.Abs(got-rate) > 1e-12 {
		t.Errorf("LookYaw = %v, want %v", got, rate)
	}
	_ = m
}

func TestGameModelMouse(t *testing.T) {
	g := &recordingGame{}
	m, clock := newTestModel(g, nil)
	sens := m.controls.Sensitivity

	m = update(t, m, tea.MouseMsg{X: 10, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = update(t, m, tea.MouseMsg{X: 13, Y: 4, Action: tea.MouseActionMotion})
	m = update(t, m, TickMsg(clock.now))

	f := g.last()
	if !f.Has(core.ActionCapture) {
		t.Error("left click should capture")
	}
	if math.Abs(f.LookYaw-(-3*sens)) > 1e-12 {
		t.Errorf("LookYaw = %v, want %v", f.LookYaw, -3*sens)
	}
	if math.Abs(f.LookPitch-sens) > 1e-12 {
		t.Errorf("LookPitch = %v, want %v", f.LookPitch, sens)
	}
	_ = m
}

func TestGameModelBlurReleases(t *testing.T) {
	g := &recordingGame{}
	m, clock := newTestModel(g, nil)

	m = update(t, m, tea.BlurMsg{})
	m = update(t, m, TickMsg(clock.now))
	if !g.last().Has(core.ActionRelease) {
		t.Error("blur should release capture")
	}
	_ = m
}

func TestGameModelBackOnlyWhileUnlocked(t *testing.T) {
	g := &recordingGame{state: core.GameState{Locked: true}}
	m, clock := newTestModel(g, nil)

	m = update(t, m, TickMsg(clock.now))
	m = update(t, m, runeKey("b"))
	if m.BackToMenu() {
		t.Error("back must be ignored while locked")
	}

	g.state.Locked = false
	m = update(t, m, TickMsg(clock.now.Add(time.Second)))
	m = update(t, m, runeKey("b"))
	if !m.BackToMenu() {
		t.Error("back should leave an unlocked level")
	}
}

func TestGameModelSavesFinishedRunOnce(t *testing.T) {
	g := &recordingGame{}
	saver := &recordingSaver{}
	m, clock := newTestModel(g, saver)

	g.state = core.GameState{Finished: true, Elapsed: 2 * time.Second, Distance: 7}
	for i := range 3 {
		m = update(t, m, TickMsg(clock.now.Add(time.Duration(i)*time.Second)))
	}
	if saver.calls != 1 {
		t.Fatalf("SaveRun calls = %d, want 1", saver.calls)
	}
	if saver.level != "stub" || saver.dur != 2*time.Second {
		t.Errorf("saved %q %v", saver.level, saver.dur)
	}
	if m.LastRunID() != "run-1" {
		t.Errorf("LastRunID = %q", m.LastRunID())
	}

	// A restarted run finishing again is saved again.
	g.state = core.GameState{}
	m = update(t, m, TickMsg(clock.now.Add(4*time.Second)))
	g.state = core.GameState{Finished: true, Elapsed: time.Second}
	m = update(t, m, TickMsg(clock.now.Add(5*time.Second)))
	if saver.calls != 2 {
		t.Errorf("SaveRun calls = %d, want 2", saver.calls)
	}
}

func TestGameModelQuitAndView(t *testing.T) {
	g := &recordingGame{}
	m, _ := newTestModel(g, nil)

	if !strings.Contains(m.View(), "stub") {
		t.Error("view should contain rendered screen")
	}

	next, cmd := m.Update(runeKey("q"))
	m = next.(GameModel)
	if !m.IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
	if m.View() != "" {
		t.Error("quitting view should be empty")
	}
}

func TestSessionModelMenuToRunsAndBack(t *testing.T) {
	store, err := storage.Open(t.TempDir() + "/runs.db")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	m := NewSessionModel(store, core.RuntimeConfig{ScreenW: 100, ScreenH: 30, TickRate: 60}, DefaultControls())

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(SessionModel)
	if m.screen != screenRuns {
		t.Fatalf("screen = %d, want runs board", m.screen)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(SessionModel)
	if m.screen != screenMenu {
		t.Errorf("screen = %d, want menu", m.screen)
	}
	if m.quitting {
		t.Error("going back must not end the session")
	}
}
