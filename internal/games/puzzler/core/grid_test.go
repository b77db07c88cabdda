package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridGetOutOfBoundsReturnsFallback(t *testing.T) {
	g := NewGrid(3, 2, -1)
	g.Set(2, 1, 7)

	assert.Equal(t, 7, g.Get(2, 1))
	assert.Equal(t, -1, g.Get(3, 0))
	assert.Equal(t, -1, g.Get(0, -1))
}

func TestGridSetOutOfBoundsIsIgnored(t *testing.T) {
	g := NewGrid(2, 2, 0)
	calls := 0
	g.OnChange(func(x, y int) { calls++ })

	g.Set(5, 5, 1)
	assert.Equal(t, 0, calls)

	g.Set(1, 1, 1)
	assert.Equal(t, 1, calls)
}

func TestGridIsAdjacent(t *testing.T) {
	g := NewGrid(5, 5, 0)

	tests := []struct {
		name       string
		x1, y1     int
		x2, y2     int
		orthogonal bool
		rng        int
		want       bool
	}{
		{name: "orthogonal neighbor", x1: 2, y1: 2, x2: 3, y2: 2, orthogonal: true, rng: 1, want: true},
		{name: "diagonal rejected when orthogonal", x1: 2, y1: 2, x2: 3, y2: 3, orthogonal: true, rng: 1, want: false},
		{name: "diagonal accepted", x1: 2, y1: 2, x2: 3, y2: 3, orthogonal: false, rng: 1, want: true},
		{name: "same cell", x1: 2, y1: 2, x2: 2, y2: 2, orthogonal: false, rng: 1, want: false},
		{name: "out of range", x1: 0, y1: 0, x2: 3, y2: 0, orthogonal: true, rng: 2, want: false},
		{name: "range two", x1: 0, y1: 0, x2: 2, y2: 2, orthogonal: false, rng: 2, want: true},
		{name: "invalid cell", x1: 4, y1: 4, x2: 5, y2: 4, orthogonal: true, rng: 1, want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := g.IsAdjacent(tc.x1, tc.y1, tc.x2, tc.y2, tc.orthogonal, tc.rng)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestGridAdjacentOrder(t *testing.T) {
	g := NewGrid(3, 3, 0)

	assert.Equal(t,
		[]Coord{{0, 0}, {0, 1}, {0, 2}, {1, 0}, {1, 2}, {2, 0}, {2, 1}, {2, 2}},
		g.Adjacent(1, 1, false, 1))
	assert.Equal(t,
		[]Coord{{0, 1}, {1, 0}, {1, 2}, {2, 1}},
		g.Adjacent(1, 1, true, 1))
	assert.Equal(t,
		[]Coord{{0, 1}, {1, 0}},
		g.Adjacent(0, 0, true, 1))
}

func TestGridResizeKeepsOverlap(t *testing.T) {
	g := NewGrid(3, 3, 0)
	g.Set(0, 0, 1)
	g.Set(2, 2, 9)
	g.Set(1, 0, 4)

	g.Resize(2, 4)
	require.Equal(t, 2, g.Width())
	require.Equal(t, 4, g.Height())
	assert.Equal(t, 1, g.Get(0, 0))
	assert.Equal(t, 4, g.Get(1, 0))
	assert.Equal(t, 0, g.Get(1, 3))

	g.Resize(4, 4)
	assert.Equal(t, 0, g.Get(2, 2))
}

func TestGridPlacementRoundTrip(t *testing.T) {
	g := NewGrid(5, 4, 0)
	g.SetOriginAndCellSize(Point{X: 10, Y: -3}, 2)

	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			cx, cy := g.Coordinates(g.WorldPosition(x, y, true))
			assert.Equal(t, x, cx)
			assert.Equal(t, y, cy)
		}
	}

	corner := g.WorldPosition(0, 0, false)
	assert.InDelta(t, 5.0, corner.X, 1e-9)
	assert.InDelta(t, -7.0, corner.Y, 1e-9)

	x, y := g.Coordinates(Point{X: -100, Y: 0})
	assert.False(t, g.IsValidCell(x, y))
}

func TestGridAlternation(t *testing.T) {
	g := NewGrid(2, 2, 0)
	assert.Equal(t, 1, g.Alternation(0, 0, false))
	assert.Equal(t, 0, g.Alternation(1, 0, false))
	assert.Equal(t, 0, g.Alternation(0, 0, true))
	assert.Equal(t, 1, g.Alternation(0, 1, true))
}

func TestGridCloneIsDetached(t *testing.T) {
	g := NewGrid(2, 2, 0)
	calls := 0
	g.OnChange(func(x, y int) { calls++ })

	c := g.Clone()
	c.Set(0, 0, 3)
	assert.Equal(t, 0, calls)
	assert.Equal(t, 0, g.Get(0, 0))
}
