package config

import (
	"math"
	"time"
)

// minOpponentDelay keeps the opponent's move readable at full pressure.
const minOpponentDelay = 250 * time.Millisecond

// DifficultyManager calculates the opponent's pace from the turn count.
type DifficultyManager struct {
	cfg          PressureConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg PressureConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// SetInitialLevel overrides the initial pressure level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// SetEnabled enables or disables pressure progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether pressure progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled
}

// Level returns the pressure level (0.0 to 1.0) after the given number of
// completed turns.
func (d *DifficultyManager) Level(turn int) float64 {
	if !d.cfg.Enabled {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.MaxAtTurn)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}
	progress := clampF(float64(turn)/maxAt, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// OpponentDelay shortens a base opponent delay according to the pressure
// level. Disabled pressure returns base unchanged.
func (d *DifficultyManager) OpponentDelay(base time.Duration, turn int) time.Duration {
	if !d.cfg.Enabled || base <= 0 {
		return base
	}
	scale := 1.0 - d.Level(turn)*d.cfg.DelayReduction
	result := time.Duration(float64(base) * scale)
	if result < minOpponentDelay {
		result = min(base, minOpponentDelay)
	}
	return result
}

// clampF restricts a float64 to [lo, hi].
func clampF(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}
