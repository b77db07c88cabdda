package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-puzzler/internal/core"
	"github.com/vovakirdan/tui-puzzler/internal/games/puzzler"
	puzzlecore "github.com/vovakirdan/tui-puzzler/internal/games/puzzler/core"
	"github.com/vovakirdan/tui-puzzler/internal/registry"
	"github.com/vovakirdan/tui-puzzler/internal/storage"
)

const simulateStepLimit = 200000

var (
	flagSimGames   int
	flagSimGame    string
	flagSimVerbose bool
	flagSimSave    bool
	flagSimNoHeal  bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Play headless games with the autopilot",
	Long: `Play games without a terminal, with the autopilot on the player's side.
The clock jumps between scheduled events, so runs finish instantly.
Seeds are --seed, --seed+1, ... (time-based when --seed is 0).

Examples:
  puzzler simulate
  puzzler simulate --games 50 --difficulty hard
  puzzler simulate --game puzzler_shrink --layout deadlock --verbose
  puzzler simulate --games 10 --save`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	addGameFlags(simulateCmd)
	simulateCmd.Flags().IntVar(&flagSimGames, "games", 1, "Number of games to play")
	simulateCmd.Flags().StringVar(&flagSimGame, "game", "puzzler", "Game mode to simulate")
	simulateCmd.Flags().BoolVarP(&flagSimVerbose, "verbose", "v", false, "Log every simulation event")
	simulateCmd.Flags().BoolVar(&flagSimSave, "save", false, "Save scores and runs to the database")
	simulateCmd.Flags().BoolVar(&flagSimNoHeal, "no-heal", false, "Never spend mana on healing")
}

func runSimulate(_ *cobra.Command, _ []string) error {
	logger := newLogger("simulate", flagSimVerbose)
	if flagSimVerbose {
		puzzler.SetEventLogger(logger)
	}

	if !registry.Exists(flagSimGame) {
		return fmt.Errorf("unknown game %q", flagSimGame)
	}

	var store *storage.Store
	if flagSimSave {
		s, err := storage.Open(flagDBPath)
		if err != nil {
			return fmt.Errorf("open scores database: %w", err)
		}
		defer s.Close()
		store = s
	}

	base := flagSeed
	if base == 0 {
		base = time.Now().UnixNano()
	}
	pilot := puzzlecore.Autopilot{Heal: !flagSimNoHeal}

	var played, wins, turns, score int
	for i := range flagSimGames {
		seed := base + int64(i)
		sum, err := simulateOne(seed, pilot)
		if err != nil {
			logger.Error("run failed", "seed", seed, "error", err)
			continue
		}

		logger.Info("run finished",
			"seed", seed,
			"outcome", sum.Outcome,
			"score", sum.Score,
			"turns", sum.Turns,
			"lives", sum.LivesLeft,
			"favorite", sum.Favorite,
			"reshuffles", sum.Reshuffles,
		)

		played++
		if sum.Outcome == core.OutcomeWin {
			wins++
		}
		turns += sum.Turns
		score += sum.Score

		if store != nil {
			if _, err := store.SaveRun(sum); err != nil {
				logger.Warn("could not save run", "seed", seed, "error", err)
			}
			if sum.Score > 0 {
				if _, err := store.SaveScore(sum.GameID, sum.Score); err != nil {
					logger.Warn("could not save score", "seed", seed, "error", err)
				}
			}
		}
	}

	if played > 0 {
		n := float64(played)
		fmt.Fprintf(os.Stdout, "%d games: %d wins (%.0f%%), avg turns %.1f, avg score %.0f\n",
			played, wins, 100*float64(wins)/n, float64(turns)/n, float64(score)/n)
	}
	return nil
}

// simulateOne plays one game to the end.
func simulateOne(seed int64, pilot puzzlecore.Autopilot) (core.RunSummary, error) {
	game, err := registry.Create(flagSimGame)
	if err != nil {
		return core.RunSummary{}, err
	}
	g, ok := game.(*puzzler.Game)
	if !ok {
		return core.RunSummary{}, fmt.Errorf("game %q cannot be simulated", flagSimGame)
	}

	g.Reset(core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: flagFPS,
		Seed:     seed,
	})
	return g.Autoplay(pilot, simulateStepLimit)
}
