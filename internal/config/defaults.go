package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/puzzler.yaml
var defaultPuzzlerYAML []byte

// DefaultPuzzlerConfig returns the default puzzler configuration.
func DefaultPuzzlerConfig() PuzzlerConfig {
	return PuzzlerConfig{
		Board: BoardConfig{
			Width:         5,
			Height:        5,
			TurnsToWin:    12,
			MaxReshuffles: 100,
		},
		Timing: TimingConfig{
			Setup:   250 * time.Millisecond,
			Phase:   500 * time.Millisecond,
			Cascade: 250 * time.Millisecond,
			Combo:   500 * time.Millisecond,
		},
		Player: PlayerConfig{
			Lives:        3,
			StartMana:    5,
			MaxMana:      20,
			MoveRange:    2,
			TeleportCost: 5,
			HealCost:     10,
		},
		Search: SearchConfig{
			CascadeDepth: 4,
		},
		Opponent: OpponentConfig{
			DelayMin: 3 * time.Second,
			DelayMax: 4 * time.Second,
		},
		Shrink: ShrinkConfig{
			Every:   0,
			MinSize: 3,
		},
		Pressure: PressureConfig{
			Enabled:        false,
			InitialLevel:   0.0,
			MaxAtTurn:      12,
			DelayReduction: 0.5,
		},
	}
}
