package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-maze/internal/games/maze/levels"
)

var checkCmd = &cobra.Command{
	Use:   "check <file>...",
	Short: "Validate level files",
	Long: `Parse each level file and report its size and wall count, or why it
cannot be played.

Examples:
  maze check ./levels/cave.yaml
  maze check ./levels/*.yaml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func runCheck(_ *cobra.Command, args []string) error {
	loader := levels.NewLoader("")
	failed := 0

	for _, path := range args {
		lvl, err := loader.LoadFile(path)
		if err != nil {
			failed++
			fmt.Printf("FAIL  %s\n      %v\n", path, err)
			continue
		}

		goal := "none"
		if lvl.HasGoal() {
			goal = fmt.Sprintf("(%d,%d)", lvl.Goal.Col, lvl.Goal.Row)
		}
		fmt.Printf("ok    %s  id=%s  %dx%d  walls=%d  spawn=(%d,%d)  goal=%s\n",
			path, lvl.ID, lvl.Map.Cols(), lvl.Map.Rows(), lvl.Map.WallCount(),
			lvl.Spawn.Col, lvl.Spawn.Row, goal)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d level files invalid", failed, len(args))
	}
	return nil
}
