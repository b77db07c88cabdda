package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-puzzler/internal/games/puzzler"
	"github.com/vovakirdan/tui-puzzler/internal/platform/tui"
	"github.com/vovakirdan/tui-puzzler/internal/registry"
	"github.com/vovakirdan/tui-puzzler/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start puzzler with an interactive menu",
	Long: `Start puzzler in interactive menu mode.

Pick a game mode, a difficulty and a starting layout. After a game,
Esc or B returns to the menu.

Controls:
  Up/Down/j/k     - Navigate menu
  Left/Right/h/l  - Change difficulty or layout
  Enter/Space     - Select
  Tab             - Scoreboard
  Q               - Quit

Examples:
  puzzler menu
  puzzler menu --fps 30
  puzzler menu --layout-dir ./layouts`,
	Run: runMenu,
}

func init() {
	addGameFlags(menuCmd)
}

// menuOptions offers the builtin layouts plus the one given on the
// command line.
func menuOptions() tui.MenuOptions {
	opts := tui.DefaultMenuOptions()
	opts.Layouts = append(opts.Layouts, puzzler.Layouts()...)
	if flagLayout != "" {
		found := false
		for _, id := range opts.Layouts {
			found = found || id == flagLayout
		}
		if !found {
			opts.Layouts = append(opts.Layouts, flagLayout)
		}
	}
	opts.Difficulty = flagDifficulty
	opts.Layout = flagLayout
	return opts
}

func runMenu(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}

	cfg := terminalConfig()
	opts := menuOptions()

	for {
		menuResult, err := tui.RunMenu(store, cfg, opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Keep size changes and choices for the next round
		cfg = menuResult.Config
		opts.Difficulty = menuResult.Difficulty
		opts.Layout = menuResult.Layout

		if menuResult.Quit {
			break
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from scoreboard
		}

		if menuResult.GameID == "" {
			break
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}
		if c, ok := game.(registry.Configurable); ok {
			c.Configure(registry.Options{
				Difficulty: menuResult.Difficulty,
				Layout:     menuResult.Layout,
			})
		}

		backToMenu, err := tui.RunFromMenu(game, store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
		if !backToMenu {
			break
		}
	}

	if store != nil {
		store.Close()
	}
}
