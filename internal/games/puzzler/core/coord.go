// Package core is the deterministic simulation behind the puzzler game:
// the token board, match detection, gravity, the brute-force move search
// and the timed turn state machine that sequences player and opponent.
//
// Board coordinates have x growing to the right and y growing upward, so
// row 0 is the bottom row and gravity pulls tokens toward y = 0.
package core

import (
	"fmt"
	"math"
)

// Coord is a cell on the board.
type Coord struct {
	X int
	Y int
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns a new Coord offset by (dx, dy).
func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// Distance returns the Euclidean distance to another coordinate.
func (c Coord) Distance(other Coord) float64 {
	dx := float64(c.X - other.X)
	dy := float64(c.Y - other.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// Point is a placement coordinate in whatever continuous space the
// presentation layer uses. The core never interprets it.
type Point struct {
	X float64
	Y float64
}
