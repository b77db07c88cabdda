package puzzler

import (
	platformcore "github.com/vovakirdan/tui-puzzler/internal/core"
	"github.com/vovakirdan/tui-puzzler/internal/games/puzzler/core"
)

// Autoplay plays the current run to the end with pilot on the player's
// side. The clock jumps from one scheduled callback to the next instead of
// following the tick rate. It gives up with core.ErrStepLimit after
// maxSteps callbacks.
func (g *Game) Autoplay(pilot core.Autopilot, maxSteps int) (platformcore.RunSummary, error) {
	for step := 0; !g.gameOver; step++ {
		if step >= maxSteps {
			return g.Summary(), core.ErrStepLimit
		}
		if err := pilot.Act(g.puzzle); err != nil {
			return g.Summary(), err
		}
		idle := !g.puzzle.AwaitingPlayer() && !g.puzzle.RunNext()
		g.consumeEvents()
		g.checkEnd()
		if idle {
			break
		}
	}
	return g.Summary(), nil
}
