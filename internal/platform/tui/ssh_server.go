package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/registry"
	"github.com/vovakirdan/tui-maze/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23235").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.maze/host_key.
	HostKeyPath string

	// DBPath is the path to the runs database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// TickRate is the frame rate of every session.
	TickRate int

	// Controls are the input settings of every session.
	Controls Controls

	// Logger receives session events. Nil logs to stderr.
	Logger *log.Logger
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23235",
		DBPath:      "~/.maze/runs.db",
		IdleTimeout: 30 * time.Minute,
		TickRate:    60,
		Controls:    DefaultControls(),
	}
}

// SSHServer serves the maze over SSH, one independent run per session.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "maze-ssh",
		})
	}

	// Open storage
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open runs database", "error", err)
		// Continue without run history
		store = nil
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".maze", "host_key")
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sess.User())
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
	}

	model := NewSessionModel(s.store, cfg, s.config.Controls).
		WithRenderer(NewScreenRenderer(bubbletea.MakeRenderer(sess)))
	model.logger = s.logger.With("user", sess.User())

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithReportFocus(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		start := time.Now()
		s.logger.Info("session started",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)
		next(sess)
		s.logger.Info("session ended",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Second),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.store != nil {
		s.store.Close()
	}

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenRuns
)

// SessionModel manages one session flow: menu -> level or runs board -> menu.
// Menus and boards end their own programs with tea.Quit when used
// standalone, so the session swallows those commands and switches screens.
type SessionModel struct {
	store    *storage.Store
	config   core.RuntimeConfig
	controls Controls
	renderer *ScreenRenderer
	logger   *log.Logger

	screen   sessionScreen
	menu     MenuModel
	runs     RunsModel
	game     *GameModel
	quitting bool
}

// NewSessionModel creates a new session model starting at the menu.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, controls Controls) SessionModel {
	m := SessionModel{
		store:    store,
		config:   cfg,
		controls: controls,
		renderer: defaultScreenRenderer,
		logger:   log.Default(),
	}
	m.menu = m.newMenu()
	return m
}

// WithRenderer returns the session drawing levels through r.
func (m SessionModel) WithRenderer(r *ScreenRenderer) SessionModel {
	if r != nil {
		m.renderer = r
	}
	return m
}

func (m SessionModel) newMenu() MenuModel {
	var best BestTimer
	if m.store != nil {
		best = m.store
	}
	return NewMenuModel(best, m.config)
}

func (m SessionModel) runSaver() RunSaver {
	if m.store == nil {
		return nil
	}
	return m.store
}

func (m SessionModel) runLister() RunLister {
	if m.store == nil {
		return nil
	}
	return m.store
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenRuns:
		return m.updateRuns(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsRuns() {
		m.runs = NewRunsModel(m.runLister(), m.config.ScreenW, m.config.ScreenH, "")
		m.screen = screenRuns
		return m, m.runs.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		game, err := registry.Create(selected.LevelID)
		if err != nil {
			m.logger.Warn("cannot create level", "level", selected.LevelID, "error", err)
			m.menu = m.newMenu()
			return m, nil
		}

		m.config = m.menu.Config()
		gm := NewGameModel(game, m.runSaver(), m.config, m.controls).WithRenderer(m.renderer)
		m.game = &gm
		m.screen = screenGame
		m.logger.Info("level started", "level", selected.LevelID)

		return m, m.game.Init()
	}

	return m, cmd
}

// updateGame handles updates while a level runs.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gm, ok := newModel.(GameModel); ok {
		m.game = &gm
	}

	if m.game.IsQuitting() {
		m.closeGame()
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.BackToMenu() {
		m.closeGame()
		m.menu = m.newMenu()
		m.screen = screenMenu
		return m, m.menu.Init()
	}

	return m, cmd
}

// updateRuns handles updates on the runs board.
func (m SessionModel) updateRuns(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.runs.Update(msg)
	if rm, ok := newModel.(RunsModel); ok {
		m.runs = rm
	}

	if m.runs.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.runs.IsGoingBack() {
		m.menu = m.newMenu()
		m.screen = screenMenu
		return m, m.menu.Init()
	}

	return m, cmd
}

// closeGame releases the running level.
func (m *SessionModel) closeGame() {
	if m.game == nil {
		return
	}
	if c, ok := m.game.game.(interface{ Close() }); ok {
		c.Close()
	}
	m.game = nil
}

// View renders the current screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		if m.game != nil {
			return m.game.View()
		}
	case screenRuns:
		return m.runs.View()
	}

	return m.menu.View()
}
