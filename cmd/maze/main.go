// maze is a terminal maze walker: first-person movement and wall collision
// shown as a top-down view.
//
// Usage:
//
//	maze list                 - List available levels
//	maze play <level>         - Play a level
//	maze play --file l.yaml   - Play a level file
//	maze menu                 - Pick levels interactively
//	maze runs [level]         - Show best runs
//	maze serve                - Start SSH server for remote play
//	maze check <file>...      - Validate level files
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--db <path>         - Set database path (default: ~/.maze/runs.db)
//	--config <path>     - Load tuning from a YAML file
//	--levels <dir>      - Load extra levels from a directory
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-maze/internal/config"
	"github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/games/maze"
	"github.com/vovakirdan/tui-maze/internal/games/maze/levels"
	"github.com/vovakirdan/tui-maze/internal/platform/tui"
	"github.com/vovakirdan/tui-maze/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagDBPath   string
	flagConfig   string
	flagLevels   string
	flagLogLevel string

	logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "maze"})
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "maze",
	Short: "TUI Maze - Walk first-person mazes in your terminal",
	Long: `TUI Maze drops you into a grid maze. Walk with WASD, turn with the
mouse or the arrow keys, and find the goal cell.

Available commands:
  list     - Show all available levels
  play     - Play a specific level directly
  menu     - Interactive level picker
  runs     - View best runs
  serve    - Start SSH server for remote play
  check    - Validate level files

Examples:
  maze list
  maze play reference
  maze play --file ./levels/cave.yaml
  maze menu --levels ./levels
  maze serve --ssh :2222
  maze runs spiral`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.maze/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom maze config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLevels, "levels", "", "Directory with extra level files")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(checkCmd)
}

// setup applies the global flags before any command runs.
func setup(_ *cobra.Command, _ []string) error {
	lvl, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	logger.SetLevel(lvl)

	maze.SetConfigPath(flagConfig)

	if flagLevels != "" {
		registerLevelDir(flagLevels)
	}
	return nil
}

// registerLevelDir registers every level file under dir. Bad files and
// IDs that clash with a built-in level are reported and skipped.
func registerLevelDir(dir string) {
	loader := levels.NewLoader(dir)
	all, err := loader.LoadAll()
	if err != nil {
		logger.Warn("could not load levels", "dir", dir, "error", err)
		return
	}
	for _, fe := range loader.Skipped {
		logger.Warn("skipping level file", "path", fe.Path, "error", fe.Err)
	}

	var extra []levels.Level
	for _, l := range all {
		if !l.Builtin() {
			extra = append(extra, l)
		}
	}
	for _, err := range maze.RegisterLevels(extra) {
		logger.Warn("skipping level", "error", err)
	}
	logger.Debug("registered levels", "dir", dir, "count", len(extra))
}

// loadTuning loads the maze config, falling back to the defaults.
func loadTuning() config.MazeConfig {
	cfg, err := config.LoadMaze(flagConfig)
	if err != nil {
		logger.Warn("using default tuning", "error", err)
		return config.DefaultMazeConfig()
	}
	return cfg
}

// runtimeConfig sizes the runtime config to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
	}
}

// openStore opens the runs database. A failure is logged and play goes
// on without run history.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open runs database", "error", err)
		return nil
	}
	return store
}

func controls() tui.Controls {
	return tui.ControlsFromConfig(loadTuning())
}
