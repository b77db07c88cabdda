// Package config provides YAML-based game configuration loading and
// difficulty management for puzzler.
package config

import (
	"errors"
	"fmt"
	"time"
)

// PuzzlerConfig contains all configuration for the puzzler game.
type PuzzlerConfig struct {
	Board    BoardConfig    `yaml:"board"`
	Timing   TimingConfig   `yaml:"timing"`
	Player   PlayerConfig   `yaml:"player"`
	Search   SearchConfig   `yaml:"search"`
	Opponent OpponentConfig `yaml:"opponent"`
	Shrink   ShrinkConfig   `yaml:"shrink"`
	Pressure PressureConfig `yaml:"pressure"`
}

// BoardConfig defines the board and how a game is won.
type BoardConfig struct {
	Width                   int  `yaml:"width"`
	Height                  int  `yaml:"height"`
	TurnsToWin              int  `yaml:"turns_to_win"`
	MaxReshuffles           int  `yaml:"max_reshuffles"`
	ReshufflePreventMatches bool `yaml:"reshuffle_prevent_matches"`
}

// TimingConfig defines the pacing of turns and match resolution.
type TimingConfig struct {
	Setup   time.Duration `yaml:"setup"`
	Phase   time.Duration `yaml:"phase"`
	Cascade time.Duration `yaml:"cascade"`
	Combo   time.Duration `yaml:"combo"`
}

// PlayerConfig defines the player piece.
type PlayerConfig struct {
	Lives        int `yaml:"lives"`
	StartMana    int `yaml:"start_mana"`
	MaxMana      int `yaml:"max_mana"`
	MoveRange    int `yaml:"move_range"`
	TeleportCost int `yaml:"teleport_cost"`
	HealCost     int `yaml:"heal_cost"`
}

// SearchConfig defines how far the opponent looks ahead.
type SearchConfig struct {
	CascadeDepth int `yaml:"cascade_depth"`
}

// OpponentConfig defines the opponent's thinking time.
type OpponentConfig struct {
	DelayMin time.Duration `yaml:"delay_min"`
	DelayMax time.Duration `yaml:"delay_max"`
}

// ShrinkConfig defines the shrinking-board mode.
type ShrinkConfig struct {
	Every   int `yaml:"every"`    // Completed turns between shrinks
	MinSize int `yaml:"min_size"` // Board never shrinks below this
}

// PressureConfig defines how the opponent speeds up as turns pass.
type PressureConfig struct {
	Enabled        bool    `yaml:"enabled"`
	InitialLevel   float64 `yaml:"initial_level"`   // 0.0 = relaxed, 1.0 = full pressure
	MaxAtTurn      int     `yaml:"max_at_turn"`     // Turn at which full pressure is reached
	DelayReduction float64 `yaml:"delay_reduction"` // Fraction of opponent delay removed at full pressure
}

// Validate checks the configuration for values the game cannot run with.
func (c PuzzlerConfig) Validate() error {
	var errs []error

	if c.Board.Width < 3 || c.Board.Height < 3 {
		errs = append(errs, fmt.Errorf("board must be at least 3x3, got %dx%d", c.Board.Width, c.Board.Height))
	}
	if c.Board.TurnsToWin < 1 {
		errs = append(errs, fmt.Errorf("turns_to_win must be positive, got %d", c.Board.TurnsToWin))
	}
	if c.Board.MaxReshuffles < 1 {
		errs = append(errs, fmt.Errorf("max_reshuffles must be at least 1, got %d", c.Board.MaxReshuffles))
	}
	for name, d := range map[string]time.Duration{
		"timing.setup":       c.Timing.Setup,
		"timing.phase":       c.Timing.Phase,
		"timing.cascade":     c.Timing.Cascade,
		"timing.combo":       c.Timing.Combo,
		"opponent.delay_min": c.Opponent.DelayMin,
		"opponent.delay_max": c.Opponent.DelayMax,
	} {
		if d < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative, got %s", name, d))
		}
	}
	if c.Opponent.DelayMin > c.Opponent.DelayMax {
		errs = append(errs, fmt.Errorf("opponent.delay_min %s exceeds delay_max %s", c.Opponent.DelayMin, c.Opponent.DelayMax))
	}
	if c.Search.CascadeDepth < 0 {
		errs = append(errs, fmt.Errorf("search.cascade_depth must not be negative, got %d", c.Search.CascadeDepth))
	}
	if c.Player.Lives < 1 {
		errs = append(errs, fmt.Errorf("player.lives must be positive, got %d", c.Player.Lives))
	}
	if c.Player.MoveRange < 1 {
		errs = append(errs, fmt.Errorf("player.move_range must be positive, got %d", c.Player.MoveRange))
	}
	if c.Player.StartMana < 0 || c.Player.StartMana > c.Player.MaxMana {
		errs = append(errs, fmt.Errorf("player.start_mana must be within [0, %d], got %d", c.Player.MaxMana, c.Player.StartMana))
	}
	if c.Shrink.Every < 0 {
		errs = append(errs, fmt.Errorf("shrink.every must not be negative, got %d", c.Shrink.Every))
	}
	if c.Shrink.MinSize < 3 {
		errs = append(errs, fmt.Errorf("shrink.min_size must be at least 3, got %d", c.Shrink.MinSize))
	}
	if c.Pressure.DelayReduction < 0 || c.Pressure.DelayReduction > 1 {
		errs = append(errs, fmt.Errorf("pressure.delay_reduction must be within [0, 1], got %g", c.Pressure.DelayReduction))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParseDifficulty accepts a preset name. The empty string means normal.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyHard:
		return DifficultyPreset(s), nil
	}
	return "", fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", s)
}
