package core

import (
	"fmt"
	"sort"
)

// DefaultCascadeDepth is how many clear-gravity-rematch rounds the move
// search simulates after the initial matches.
const DefaultCascadeDepth = 4

// Proximity bonuses applied when a matched cell is near the priority cell.
const (
	bonusOnPriority   = 6.0
	bonusOrthogonal   = 3.0
	bonusDiagonalRing = 1.25
)

// Move is a candidate swap together with every match its cascade produced
// and the resulting score.
type Move struct {
	From    Coord
	To      Coord
	Matches []Match
	Score   float64
}

// String returns a short description of the move.
func (m Move) String() string {
	return fmt.Sprintf("%v->%v score=%.2f matches=%d", m.From, m.To, m.Score, len(m.Matches))
}

// Cleared returns the number of cells cleared across the cascade.
func (m Move) Cleared() int {
	n := 0
	for _, mt := range m.Matches {
		n += mt.Size()
	}
	return n
}

// SearchOptions tunes FindMoves.
type SearchOptions struct {
	// Priority is the cell that proximity scoring is measured against.
	Priority Coord

	// CascadeDepth bounds the simulated cascade rounds. Negative values
	// mean DefaultCascadeDepth.
	CascadeDepth int
}

// FindMoves enumerates every swap that produces a match and scores its
// simulated cascade. Candidates come out in row-major cell order and, per
// cell, in the order left, down, up, right. The given board is never
// modified; all work happens on private copies.
func FindMoves(b *Board, opts SearchOptions) []Move {
	depth := opts.CascadeDepth
	if depth < 0 {
		depth = DefaultCascadeDepth
	}

	work := b.Clone()
	var moves []Move

	for y := 0; y < work.Height(); y++ {
		for x := 0; x < work.Width(); x++ {
			for _, d := range orthogonal {
				x2, y2 := x+d.X, y+d.Y
				if !work.TrySwap(x, y, x2, y2) {
					continue
				}

				work.Swap(x, y, x2, y2, false)
				matches := simulateCascade(work, depth)
				moves = append(moves, Move{
					From:    C(x, y),
					To:      C(x2, y2),
					Matches: matches,
					Score:   ScoreMatches(work, matches, opts.Priority),
				})
				work.Swap(x, y, x2, y2, false)
			}
		}
	}
	return moves
}

// simulateCascade returns the immediate matches on b plus those found by
// up to depth rounds of clear, gravity and rematch on copies of b.
func simulateCascade(b *Board, depth int) []Match {
	all := b.GetMatches()
	current := all
	scratch := b
	for i := 0; i < depth && len(current) > 0; i++ {
		scratch = scratch.Clone()
		for _, m := range current {
			scratch.Match(m.Origin.X, m.Origin.Y, m.Shape)
		}
		scratch.ApplyGravity()
		current = scratch.GetMatches()
		all = append(all, current...)
	}
	return all
}

// ScoreMatches sums the score of each match against the priority cell.
//
// A match touching the priority cell scores size*6, one orthogonally next
// to it size*3 and one on its diagonal ring size*1.25. Any other match
// scores its size plus a decay term that shrinks with the distance from
// the priority cell to the match origin.
func ScoreMatches(b *Board, matches []Match, priority Coord) float64 {
	half := float64((b.Width() + b.Height()) / 2)
	score := 0.0

	for _, m := range matches {
		bonus := proximityBonus(b, m, priority)
		if bonus == 0 {
			decay := 0.0
			if half > 0 {
				decay = (half - priority.Distance(m.Origin)) / half
			}
			score += float64(m.Size()) + decay
			continue
		}
		score += float64(m.Size()) * bonus
	}
	return score
}

func proximityBonus(b *Board, m Match, priority Coord) float64 {
	bonus := 0.0
	for _, c := range m.Cells() {
		switch {
		case c == priority:
			return bonusOnPriority
		case b.IsAdjacent(priority.X, priority.Y, c.X, c.Y, true, 1):
			bonus = max(bonus, bonusOrthogonal)
		case b.IsAdjacent(priority.X, priority.Y, c.X, c.Y, false, 1):
			bonus = max(bonus, bonusDiagonalRing)
		}
	}
	return bonus
}

// RankMoves returns a copy of moves sorted by descending score. Equal
// scores keep their enumeration order.
func RankMoves(moves []Move) []Move {
	ranked := make([]Move, len(moves))
	copy(ranked, moves)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// BestMove returns the highest scoring move. Callers must not pass an
// empty slice; doing so is a logic error and panics.
func BestMove(moves []Move) Move {
	if len(moves) == 0 {
		panic("core: BestMove called with no candidate moves")
	}
	best := moves[0]
	for _, m := range moves[1:] {
		if m.Score > best.Score {
			best = m
		}
	}
	return best
}
