package puzzler

import (
	"github.com/vovakirdan/tui-puzzler/internal/config"
	"github.com/vovakirdan/tui-puzzler/internal/games/puzzler/core"
)

// defaultShrinkEvery is used by the shrink mode when the config leaves
// shrinking disabled.
const defaultShrinkEvery = 2

// RulesFromConfig converts a loaded configuration into simulation rules.
// With shrink set the board loses a row and a column every few turns.
func RulesFromConfig(cfg config.PuzzlerConfig, shrink bool) core.Rules {
	rules := core.Rules{
		Width:      cfg.Board.Width,
		Height:     cfg.Board.Height,
		TurnsToWin: cfg.Board.TurnsToWin,

		SetupDelay:   cfg.Timing.Setup,
		PhaseDelay:   cfg.Timing.Phase,
		CascadeDelay: cfg.Timing.Cascade,
		ComboDelay:   cfg.Timing.Combo,

		OpponentDelayMin: cfg.Opponent.DelayMin,
		OpponentDelayMax: cfg.Opponent.DelayMax,

		CascadeDepth:            cfg.Search.CascadeDepth,
		MaxReshuffles:           cfg.Board.MaxReshuffles,
		ReshufflePreventMatches: cfg.Board.ReshufflePreventMatches,

		MinSize: max(cfg.Shrink.MinSize, core.MinShrinkSize),

		Player: core.PlayerRules{
			MaxLives:     cfg.Player.Lives,
			StartMana:    cfg.Player.StartMana,
			MaxMana:      cfg.Player.MaxMana,
			MoveRange:    cfg.Player.MoveRange,
			TeleportCost: cfg.Player.TeleportCost,
			HealCost:     cfg.Player.HealCost,
		},
	}

	if shrink {
		rules.ShrinkEvery = cfg.Shrink.Every
		if rules.ShrinkEvery <= 0 {
			rules.ShrinkEvery = defaultShrinkEvery
		}
	}
	return rules
}
