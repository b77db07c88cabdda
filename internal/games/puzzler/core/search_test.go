package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noMoveRows is a 5x5 layout on which no swap produces a match.
func noMoveRows() []string {
	rows := make([]string, 5)
	for y := 0; y < 5; y++ {
		row := make([]rune, 5)
		for x := 0; x < 5; x++ {
			row[x] = Token((x+2*y)%PaletteSize + 1).Rune()
		}
		rows[4-y] = string(row)
	}
	return rows
}

func TestFindMovesNoCandidates(t *testing.T) {
	b := newTestBoard(noMoveRows()...)
	assert.Empty(t, b.GetMatches())
	assert.Empty(t, FindMoves(b, SearchOptions{CascadeDepth: -1}))
	assert.Empty(t, FindMoves(NewBoard(4, 4, NewSequenceRandom(0), nil), SearchOptions{}))
}

func TestFindMovesLeavesBoardUnchanged(t *testing.T) {
	rec := NewRecorder(0)
	b := BoardFromRows([]string{"BYP", "GBR", "RRG"}, NewSequenceRandom(0), rec)
	before := b.Rows()

	moves := FindMoves(b, SearchOptions{Priority: C(1, 1), CascadeDepth: -1})
	require.NotEmpty(t, moves)
	assert.Equal(t, before, b.Rows())
	assert.Zero(t, rec.Len())

	assert.Contains(t, moveEnds(moves), [2]Coord{C(2, 0), C(2, 1)})
	for _, m := range moves {
		assert.True(t, b.TrySwap(m.From.X, m.From.Y, m.To.X, m.To.Y), "move %v", m)
		assert.NotEmpty(t, m.Matches)
		assert.Greater(t, m.Score, 0.0)
	}
}

func TestFindMovesEnumerationOrder(t *testing.T) {
	b := newTestBoard("BYP", "GBR", "RRG")
	moves := FindMoves(b, SearchOptions{})

	for i := 1; i < len(moves); i++ {
		prev, cur := moves[i-1].From, moves[i].From
		assert.True(t, prev.Y < cur.Y || (prev.Y == cur.Y && prev.X <= cur.X),
			"%v listed before %v", prev, cur)
	}
}

func moveEnds(moves []Move) [][2]Coord {
	out := make([][2]Coord, len(moves))
	for i, m := range moves {
		out[i] = [2]Coord{m.From, m.To}
	}
	return out
}

func TestSimulateCascadeDepth(t *testing.T) {
	b := newTestBoard(
		"G..",
		"RPO",
		"RBY",
		"RGG",
	)

	assert.Len(t, simulateCascade(b, 0), 1)

	all := simulateCascade(b, 4)
	require.Len(t, all, 2)
	assert.Equal(t, Red, all[0].Token)
	assert.Equal(t, Green, all[1].Token)
	assert.Equal(t, C(0, 0), all[1].Origin)

	assert.Equal(t, []string{"G..", "RPO", "RBY", "RGG"}, b.Rows())
}

func TestScoreMatchesProximity(t *testing.T) {
	b := newTestBoard(
		".....",
		".....",
		".....",
		".....",
		"RRR..",
	)
	matches := b.GetMatches()
	require.Len(t, matches, 1)

	tests := []struct {
		name     string
		priority Coord
		want     float64
	}{
		{name: "on the match", priority: C(1, 0), want: 18},
		{name: "orthogonally adjacent", priority: C(1, 1), want: 9},
		{name: "diagonal ring", priority: C(3, 1), want: 3.75},
		{name: "far away", priority: C(4, 4), want: 3 + (5-C(4, 4).Distance(C(0, 0)))/5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, ScoreMatches(b, matches, tc.priority), 1e-9)
		})
	}
}

func TestScoreMatchesBonusPerMatch(t *testing.T) {
	b := newTestBoard(
		"GGG..",
		".....",
		".....",
		".....",
		"RRR..",
	)
	matches := b.GetMatches()
	require.Len(t, matches, 2)

	// The red match touches the priority cell; the green one is scored on
	// distance alone.
	priority := C(0, 0)
	want := 3*6 + 3 + (5-priority.Distance(C(0, 4)))/5
	assert.InDelta(t, want, ScoreMatches(b, matches, priority), 1e-9)
}

func TestBestMoveFollowsPriority(t *testing.T) {
	b := newTestBoard(
		"RR.R.",
		".....",
		".....",
		".....",
		"BB.B.",
	)

	tests := []struct {
		name     string
		priority Coord
		from, to Coord
		score    float64
	}{
		{name: "near the bottom", priority: C(0, 0), from: C(2, 0), to: C(3, 0), score: 18},
		{name: "near the top", priority: C(1, 3), from: C(2, 4), to: C(3, 4), score: 9},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			moves := FindMoves(b, SearchOptions{Priority: tc.priority, CascadeDepth: 0})
			require.Len(t, moves, 4)

			best := BestMove(moves)
			assert.Equal(t, tc.from, best.From)
			assert.Equal(t, tc.to, best.To)
			assert.InDelta(t, tc.score, best.Score, 1e-9)
		})
	}
}

func TestRankMovesStable(t *testing.T) {
	moves := []Move{
		{From: C(0, 0), Score: 1},
		{From: C(1, 0), Score: 3},
		{From: C(2, 0), Score: 3},
		{From: C(3, 0), Score: 2},
	}

	ranked := RankMoves(moves)
	assert.Equal(t, []Coord{C(1, 0), C(2, 0), C(3, 0), C(0, 0)}, []Coord{
		ranked[0].From, ranked[1].From, ranked[2].From, ranked[3].From,
	})
	assert.Equal(t, C(0, 0), moves[0].From, "input untouched")
	assert.Equal(t, C(1, 0), BestMove(moves).From)
}

func TestBestMovePanicsOnEmpty(t *testing.T) {
	assert.Panics(t, func() { BestMove(nil) })
}
