package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// TickInterval returns the simulated time covered by one tick.
func (c RuntimeConfig) TickInterval() time.Duration {
	if c.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.TickRate)
}

// GameState represents the current state of a game.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the game has ended
	Won      bool // Whether the game ended in the player's favor
	Paused   bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}

// Outcome values recorded for finished runs.
const (
	OutcomeWin       = "win"
	OutcomeGameOver  = "game_over"
	OutcomeStalemate = "stalemate"
	OutcomeAbandoned = "abandoned"
)

// RunSummary describes one finished game for persistence.
type RunSummary struct {
	RunID        string
	GameID       string
	Seed         int64
	Outcome      string
	Score        int
	Turns        int
	LivesLeft    int
	ManaLeft     int
	Favorite     string
	Reshuffles   int
	CellsCleared int
	Duration     time.Duration
	CreatedAt    time.Time
}
