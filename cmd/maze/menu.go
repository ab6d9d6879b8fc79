package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-maze/internal/platform/tui"
	"github.com/vovakirdan/tui-maze/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a level picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a level, Tab for the
best runs. Going back from a level returns to the menu.

Examples:
  maze menu
  maze menu --levels ./levels
  maze menu --db ./runs.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	store := openStore()
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	cfg := runtimeConfig()
	ctl := controls()

	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsRuns {
			goBack, err := tui.RunRunsBoard(store, cfg.ScreenW, cfg.ScreenH, "")
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}
			continue
		}

		if menuResult.LevelID == "" {
			return nil
		}

		game, err := registry.Create(menuResult.LevelID)
		if err != nil {
			logger.Warn("cannot create level", "level", menuResult.LevelID, "error", err)
			continue
		}

		if err := tui.Run(game, store, cfg, ctl); err != nil {
			logger.Error("running level", "level", menuResult.LevelID, "error", err)
		}
	}
}
