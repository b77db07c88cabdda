package core

import "math"

// Grid is a resizable width x height container with bounds checking and
// placement mapping. Reads outside the grid return the fallback value and
// writes outside it are ignored.
type Grid[T any] struct {
	width    int
	height   int
	cells    []T // row-major: index = y*width + x
	fallback T

	cellSize float64
	origin   Point

	// onChange fires after every in-bounds Set.
	onChange func(x, y int)
}

// NewGrid creates a grid filled with the fallback value.
func NewGrid[T any](width, height int, fallback T) *Grid[T] {
	g := &Grid[T]{
		width:    width,
		height:   height,
		fallback: fallback,
		cellSize: 1,
	}
	g.cells = make([]T, width*height)
	for i := range g.cells {
		g.cells[i] = fallback
	}
	return g
}

// Width returns the number of columns.
func (g *Grid[T]) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid[T]) Height() int { return g.height }

// CellSize returns the placement size of one cell.
func (g *Grid[T]) CellSize() float64 { return g.cellSize }

// Origin returns the placement coordinate of the grid center.
func (g *Grid[T]) Origin() Point { return g.origin }

// OnChange installs the cell-changed hook.
func (g *Grid[T]) OnChange(fn func(x, y int)) {
	g.onChange = fn
}

// IsValidCell reports whether (x, y) lies inside the grid.
func (g *Grid[T]) IsValidCell(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.width && y < g.height
}

// Get returns the value at (x, y), or the fallback for invalid cells.
func (g *Grid[T]) Get(x, y int) T {
	if !g.IsValidCell(x, y) {
		return g.fallback
	}
	return g.cells[y*g.width+x]
}

// Set stores a value and fires the change hook. Invalid cells are ignored.
func (g *Grid[T]) Set(x, y int, v T) {
	if !g.IsValidCell(x, y) {
		return
	}
	g.cells[y*g.width+x] = v
	if g.onChange != nil {
		g.onChange(x, y)
	}
}

// put stores a value without notifying.
func (g *Grid[T]) put(x, y int, v T) {
	if g.IsValidCell(x, y) {
		g.cells[y*g.width+x] = v
	}
}

// IsAdjacent reports whether two distinct valid cells lie within range of
// each other. With orthogonalOnly, offsets on both axes never count.
func (g *Grid[T]) IsAdjacent(x1, y1, x2, y2 int, orthogonalOnly bool, rng int) bool {
	if x1 == x2 && y1 == y2 {
		return false
	}
	if !g.IsValidCell(x1, y1) || !g.IsValidCell(x2, y2) {
		return false
	}

	dx, dy := x2-x1, y2-y1
	if orthogonalOnly && dx != 0 && dy != 0 {
		return false
	}
	return abs(dx) <= rng && abs(dy) <= rng
}

// Adjacent lists the valid neighbors of (x, y) under the same rule as
// IsAdjacent. The outer loop walks the x offset and the inner loop the
// y offset, both ascending from -rng to +rng.
func (g *Grid[T]) Adjacent(x, y int, orthogonalOnly bool, rng int) []Coord {
	var out []Coord
	for i := -rng; i <= rng; i++ {
		for j := -rng; j <= rng; j++ {
			if orthogonalOnly && i != 0 && j != 0 {
				continue
			}
			if i == 0 && j == 0 {
				continue
			}
			if !g.IsValidCell(x+i, y+j) {
				continue
			}
			out = append(out, C(x+i, y+j))
		}
	}
	return out
}

// Resize reallocates storage, keeping values where old and new bounds
// overlap. New cells take the fallback value. No per-cell notification
// is fired.
func (g *Grid[T]) Resize(width, height int) {
	cells := make([]T, width*height)
	for i := range cells {
		cells[i] = g.fallback
	}

	copyW := min(g.width, width)
	copyH := min(g.height, height)
	for y := 0; y < copyH; y++ {
		for x := 0; x < copyW; x++ {
			cells[y*width+x] = g.cells[y*g.width+x]
		}
	}

	g.width = width
	g.height = height
	g.cells = cells
}

// SetOriginAndCellSize changes the placement mapping.
func (g *Grid[T]) SetOriginAndCellSize(origin Point, cellSize float64) {
	g.origin = origin
	g.cellSize = cellSize
}

// WorldPosition maps a cell to its placement coordinate. The grid is
// centered on the origin. With centered set, the result is the middle of
// the cell instead of its minimum corner.
func (g *Grid[T]) WorldPosition(x, y int, centered bool) Point {
	p := Point{
		X: (float64(x)-float64(g.width)/2)*g.cellSize + g.origin.X,
		Y: (float64(y)-float64(g.height)/2)*g.cellSize + g.origin.Y,
	}
	if centered {
		p.X += g.cellSize / 2
		p.Y += g.cellSize / 2
	}
	return p
}

// Coordinates maps a placement coordinate back to a cell. The result may
// be outside the grid; check it with IsValidCell.
func (g *Grid[T]) Coordinates(p Point) (x, y int) {
	x = int(math.Floor((p.X-g.origin.X)/g.cellSize + float64(g.width)/2))
	y = int(math.Floor((p.Y-g.origin.Y)/g.cellSize + float64(g.height)/2))
	return x, y
}

// Alternation returns the checkerboard parity of a cell: 1 on even
// squares, 0 on odd ones, or the reverse when invert is set.
func (g *Grid[T]) Alternation(x, y int, invert bool) int {
	if (x+y)%2 == 0 {
		if invert {
			return 0
		}
		return 1
	}
	if invert {
		return 1
	}
	return 0
}

// Clone returns a deep copy with no change hook.
func (g *Grid[T]) Clone() *Grid[T] {
	c := &Grid[T]{
		width:    g.width,
		height:   g.height,
		fallback: g.fallback,
		cellSize: g.cellSize,
		origin:   g.origin,
	}
	c.cells = make([]T, len(g.cells))
	copy(c.cells, g.cells)
	return c
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
