package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-maze/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available levels",
	Long:  `Shows every built-in level plus any loaded with --levels.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	lvls := registry.List()

	if len(lvls) == 0 {
		fmt.Println("No levels available.")
		return
	}

	fmt.Println("Available levels:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, l := range lvls {
		maxIDLen = max(maxIDLen, len(l.ID))
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")

	for _, l := range lvls {
		fmt.Printf("  %-*s  %s\n", maxIDLen, l.ID, l.Title)
	}

	fmt.Println()
	fmt.Println("Run 'maze play <id>' to play a level.")
}
