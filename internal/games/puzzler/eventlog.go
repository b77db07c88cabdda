package puzzler

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-puzzler/internal/games/puzzler/core"
)

// EventLogger writes simulation events to a structured logger. Board-level
// chatter goes to debug, turn and player events to info.
type EventLogger struct {
	logger *log.Logger
}

// NewEventLogger creates an event logger writing to l.
func NewEventLogger(l *log.Logger) *EventLogger {
	return &EventLogger{logger: l}
}

// Listen handles one event. Pass it to Puzzle.Subscribe.
func (e *EventLogger) Listen(ev core.Event) {
	switch ev := ev.(type) {
	case core.PhaseEntered:
		e.logger.Info("phase", "state", ev.State, "turn", ev.Turn)
	case core.PlayerMoved:
		e.logger.Info("player moved", "from", ev.From, "to", ev.To, "chosen", ev.Chosen)
	case core.OpponentMoved:
		e.logger.Info("opponent swap", "from", ev.Move.From, "to", ev.Move.To,
			"score", ev.Move.Score, "at", ev.At)
	case core.LivesChanged:
		e.logger.Info("lives", "lives", ev.Lives, "delta", ev.Delta)
	case core.ManaChanged:
		e.logger.Debug("mana", "mana", ev.Mana, "delta", ev.Delta)
	case core.SkillUsed:
		e.logger.Info("skill", "skill", ev.Skill)
	case core.Stalemate:
		e.logger.Warn("stalemate", "reshuffles", ev.Reshuffles)
	case core.BoardResized:
		e.logger.Info("board resized", "width", ev.Width, "height", ev.Height)
	case core.Matched:
		e.logger.Debug("matched", "cell", ev.Cell, "token", ev.Token)
	case core.Moved:
		e.logger.Debug("moved", "from", ev.From, "to", ev.To)
	case core.SwapOccurred:
		e.logger.Debug("swap", "a", ev.A, "b", ev.B)
	case core.CellChanged:
		e.logger.Debug("cell", "cell", ev.Cell)
	case core.Highlight:
		e.logger.Debug("highlight", "cell", ev.Cell)
	}
}
