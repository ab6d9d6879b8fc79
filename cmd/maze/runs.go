package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-maze/internal/platform/tui"
	"github.com/vovakirdan/tui-maze/internal/registry"
	"github.com/vovakirdan/tui-maze/internal/storage"
)

var flagRunsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs [level]",
	Short: "Show best runs",
	Long: `Print the fastest runs for a level, or open the interactive runs
board when no level is given.

Examples:
  maze runs
  maze runs reference
  maze runs spiral --limit 20`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 10, "Number of runs to show")
}

func runRuns(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening runs database: %w", err)
	}
	defer store.Close()

	if len(args) == 0 {
		cfg := runtimeConfig()
		_, err := tui.RunRunsBoard(store, cfg.ScreenW, cfg.ScreenH, "")
		return err
	}

	levelID := args[0]
	game, err := registry.Create(levelID)
	if err != nil {
		return fmt.Errorf("unknown level %q, run 'maze list' to see available levels", levelID)
	}

	runs, err := store.BestRuns(levelID, flagRunsLimit)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	fmt.Printf("Best Runs - %s\n", game.Title())
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'maze play %s' and reach the goal to set the first time!\n", levelID)
		return nil
	}

	fmt.Printf("  %-4s  %-9s  %-8s  %s\n", "Rank", "Time", "Distance", "Date")
	fmt.Printf("  %-4s  %-9s  %-8s  %s\n", "----", "----", "--------", "----")

	for i, r := range runs {
		fmt.Printf("  %-4d  %-9s  %-8.1f  %s\n",
			i+1, fmt.Sprintf("%.2fs", r.Duration.Seconds()), r.Distance, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.LevelStats(levelID)
	if err == nil {
		fmt.Println()
		fmt.Printf("Runs: %d  Average: %.2fs  Total distance: %.1f\n",
			stats.Runs, stats.AvgTime.Seconds(), stats.TotalDistance)
	}
	return nil
}
