package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-puzzler/internal/registry"
	"github.com/vovakirdan/tui-puzzler/internal/storage"
)

var flagShowRuns bool

var scoresCmd = &cobra.Command{
	Use:   "scores <game>",
	Short: "Show high scores for a game",
	Long: `Display the top 10 high scores for the specified game mode, or its
most recent runs with --runs.

Examples:
  puzzler scores puzzler
  puzzler scores puzzler_shrink --runs`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagShowRuns, "runs", false, "Show recent runs instead of high scores")
}

func runScores(_ *cobra.Command, args []string) {
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
	title := game.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagShowRuns {
		if err := printRuns(store, gameID, title); err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
			os.Exit(1)
		}
		return
	}

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'puzzler play %s' to set the first high score!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, dateStr)
	}

	fmt.Println()
	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Printf("Best: %d  Games: %d", stats.HighScore, stats.GamesCount)
		if stats.Runs > 0 {
			fmt.Printf("  Wins: %d/%d  Avg turns: %.1f", stats.Wins, stats.Runs, stats.AvgTurns)
		}
		if stats.TopFavorite != "" {
			fmt.Printf("  Favorite: %s", stats.TopFavorite)
		}
		fmt.Println()
	}
}

func printRuns(store *storage.Store, gameID, title string) error {
	runs, err := store.RecentRuns(gameID, 20)
	if err != nil {
		return err
	}

	fmt.Printf("Recent Runs - %s\n", title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	fmt.Printf("  %-16s  %-10s  %6s  %5s  %5s  %-8s  %s\n", "Date", "Outcome", "Score", "Turns", "Lives", "Favorite", "Run")
	fmt.Printf("  %-16s  %-10s  %6s  %5s  %5s  %-8s  %s\n", "----", "-------", "-----", "-----", "-----", "--------", "---")
	for _, r := range runs {
		fav := r.Favorite
		if fav == "" {
			fav = "-"
		}
		fmt.Printf("  %-16s  %-10s  %6d  %5d  %5d  %-8s  %s\n",
			r.CreatedAt.Local().Format("2006-01-02 15:04"), r.Outcome, r.Score, r.Turns, r.LivesLeft, fav, shortID(r.RunID))
	}
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
