// puzzler is a terminal match-3 duel: keep your piece alive while the
// Puzzler swaps tokens to land matches on it.
//
// Usage:
//
//	puzzler list              - List available game modes
//	puzzler play <game>       - Play a game mode
//	puzzler menu              - Start menu to pick a mode interactively
//	puzzler serve             - Start SSH server for remote play
//	puzzler scores <game>     - Show high scores or recent runs
//	puzzler simulate          - Play games headlessly with the autopilot
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.puzzler/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-puzzler/internal/games/puzzler"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string

	// Game flags shared by play, menu and simulate
	flagConfig     string
	flagDifficulty string
	flagLayout     string
	flagLayoutDir  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "puzzler",
	Short: "Puzzler - a match-3 duel in your terminal",
	Long: `Puzzler is a terminal match-3 duel. You move a piece across a board of
colored tokens; the Puzzler swaps tokens to land matches on you.
Survive enough turns to win.

Available commands:
  list      - Show all game modes
  play      - Play a specific mode directly
  menu      - Interactive menu
  serve     - Start SSH server for remote play
  scores    - View high scores and recent runs
  simulate  - Play headless games with the autopilot

Examples:
  puzzler list
  puzzler play puzzler
  puzzler play puzzler_shrink --difficulty hard
  puzzler menu
  puzzler serve --ssh :2222
  puzzler simulate --games 20`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		applyGameFlags()
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.puzzler/scores.db", "Path to scores database")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simulateCmd)
}

// addGameFlags registers the flags that shape a game.
func addGameFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	cmd.Flags().StringVar(&flagLayout, "layout", "", "Starting layout ID or YAML file (default: random board)")
	cmd.Flags().StringVar(&flagLayoutDir, "layout-dir", "", "Directory searched for layout IDs")
}

// applyGameFlags hands the game flags to the puzzler package.
func applyGameFlags() {
	puzzler.SetConfigPath(flagConfig)
	puzzler.SetDifficultyPreset(flagDifficulty)
	puzzler.SetLayout(flagLayout)
	puzzler.SetLayoutDir(flagLayoutDir)
}

// newLogger creates the command-line logger.
func newLogger(prefix string, verbose bool) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
