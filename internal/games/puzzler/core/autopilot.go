package core

import "fmt"

// Autopilot plays the player's side. It heals when hurt and affordable,
// then moves to the reachable cell where the opponent's best swap scores
// lowest, preferring cells that pay more mana.
type Autopilot struct {
	// Heal enables spending mana on SkillHeal.
	Heal bool
}

// Plan returns the cell the autopilot would move to. ok is false when no
// cell is reachable.
func (a Autopilot) Plan(p *Puzzle) (dest Coord, ok bool) {
	b := p.board
	pos := p.player.pos
	rng := p.player.rules.MoveRange
	if p.player.teleport {
		rng = max(b.Width(), b.Height())
	}

	bestThreat, bestGain := 0.0, 0
	for _, c := range b.Adjacent(pos.X, pos.Y, false, rng) {
		threat := 0.0
		moves := FindMoves(b, SearchOptions{Priority: c, CascadeDepth: p.rules.CascadeDepth})
		if len(moves) > 0 {
			threat = BestMove(moves).Score
		}
		gain := manaFromNeighbors(b, c)

		if !ok || threat < bestThreat || (threat == bestThreat && gain > bestGain) {
			dest, bestThreat, bestGain, ok = c, threat, gain, true
		}
	}
	return dest, ok
}

// Act takes the player's turn. It is a no-op outside PlayerTurnStart.
func (a Autopilot) Act(p *Puzzle) error {
	if !p.AwaitingPlayer() {
		return nil
	}

	st := p.player.status()
	if a.Heal && st.Lives < st.MaxLives && st.Mana >= p.player.rules.HealCost {
		if err := p.UseSkill(SkillHeal); err != nil {
			return fmt.Errorf("autopilot heal: %w", err)
		}
	}

	dest, ok := a.Plan(p)
	if !ok {
		return fmt.Errorf("autopilot: %w", ErrOutOfReach)
	}
	return p.MovePlayer(dest)
}

// Run starts the puzzle if needed and plays it to the end with the
// autopilot on the player's side. It gives up with ErrStepLimit after
// maxSteps scheduled callbacks.
func (a Autopilot) Run(p *Puzzle, maxSteps int) (Snapshot, error) {
	if p.State() == None {
		p.Start()
	}

	for step := 0; !p.Finished(); step++ {
		if step >= maxSteps {
			return p.Snapshot(), ErrStepLimit
		}
		if err := a.Act(p); err != nil {
			return p.Snapshot(), err
		}
		if !p.AwaitingPlayer() && !p.RunNext() {
			break
		}
	}
	return p.Snapshot(), nil
}
