package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-puzzler/internal/core"
	"github.com/vovakirdan/tui-puzzler/internal/platform/tui"
	"github.com/vovakirdan/tui-puzzler/internal/registry"
	"github.com/vovakirdan/tui-puzzler/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game mode.

Controls:
  Arrows/WASD/HJKL  - Move the cursor
  Enter/Space       - Move your piece to the cursor
  Mouse click       - Move your piece to the clicked cell
  T/1               - Arm teleport
  E/2               - Heal
  P                 - Pause
  R                 - Restart (after the game ends)
  Q/Ctrl+C          - Quit
  Ctrl+S            - Save a screenshot

Difficulty options:
  easy   - More lives, fewer turns to survive, a slower Puzzler
  normal - The config as written
  hard   - Fewer lives, more turns, a deeper and faster Puzzler

Examples:
  puzzler play puzzler
  puzzler play puzzler --difficulty hard
  puzzler play puzzler --layout crossfire
  puzzler play puzzler_shrink --config ./my-puzzler.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	addGameFlags(playCmd)
}

// terminalConfig builds a runtime config sized to the current terminal.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := args[0]

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'puzzler list' to see available games.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := tui.Run(game, store, terminalConfig())

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
