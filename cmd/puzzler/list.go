package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-puzzler/internal/games/puzzler"
	"github.com/vovakirdan/tui-puzzler/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all game modes and builtin layouts",
	Long:  `Shows the registered game modes and the layouts that ship with puzzler.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Available games:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, g := range games {
		if len(g.ID) > maxIDLen {
			maxIDLen = len(g.ID)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, g := range games {
		fmt.Printf("  %-*s  %s\n", maxIDLen, g.ID, g.Title)
	}

	if ids := puzzler.Layouts(); len(ids) > 0 {
		fmt.Println()
		fmt.Printf("Builtin layouts: %s\n", strings.Join(ids, ", "))
	}

	fmt.Println()
	fmt.Println("Run 'puzzler play <id>' to play a game.")
}
