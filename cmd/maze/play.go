package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-maze/internal/games/maze"
	"github.com/vovakirdan/tui-maze/internal/games/maze/levels"
	"github.com/vovakirdan/tui-maze/internal/platform/tui"
	"github.com/vovakirdan/tui-maze/internal/registry"
)

var flagFile string

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play a level",
	Long: `Start playing the specified level.

Press Enter or click to take control. Esc hands the keyboard and mouse
back. A key held down keeps moving until the terminal stops repeating it.

Controls:
  W/S, Up/Down - Move forward/back
  A/D          - Strafe left/right
  Mouse        - Look around (while in control)
  ,/. Left/Right - Turn
  Enter/Click  - Take control
  Esc          - Release control
  R            - Restart (after reaching the goal)
  B            - Back (while released)
  Ctrl+S       - Save a screenshot
  Q/Ctrl+C     - Quit

Examples:
  maze play reference
  maze play spiral --fps 30
  maze play --file ./cave.yaml
  maze play corridor --config ./slippery.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagFile, "file", "", "Play a level file instead of a registered level")
}

func runPlay(_ *cobra.Command, args []string) error {
	var game registry.Game

	switch {
	case flagFile != "":
		lvl, err := levels.NewLoader("").LoadFile(flagFile)
		if err != nil {
			return err
		}
		game = maze.NewWithConfig(lvl, loadTuning())

	case len(args) == 1:
		id := args[0]
		g, err := registry.Create(id)
		if errors.Is(err, registry.ErrUnknown) {
			return fmt.Errorf("unknown level %q, run 'maze list' to see available levels", id)
		}
		if err != nil {
			return err
		}
		game = g

	default:
		return errors.New("play needs a level ID or --file")
	}

	store := openStore()
	err := tui.Run(game, store, runtimeConfig(), controls())
	if store != nil {
		store.Close()
	}
	if err != nil {
		return fmt.Errorf("running level: %w", err)
	}
	return nil
}
