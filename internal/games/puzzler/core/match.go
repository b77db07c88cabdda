package core

// Match is a connected region of same-typed cells that all belong to a
// run of three or more. Origin is the minimum corner of the bounding box
// and Shape marks the member cells inside it.
type Match struct {
	Origin Coord
	Shape  Shape
	Token  Token
}

// Size returns the number of cells in the match.
func (m Match) Size() int {
	return m.Shape.Count()
}

// Cells returns the absolute coordinates of the member cells.
func (m Match) Cells() []Coord {
	rel := m.Shape.Cells()
	for i, c := range rel {
		rel[i] = c.Add(m.Origin.X, m.Origin.Y)
	}
	return rel
}

// Contains reports whether c is a member cell.
func (m Match) Contains(c Coord) bool {
	x, y := c.X-m.Origin.X, c.Y-m.Origin.Y
	if x < 0 || y < 0 || x >= m.Shape.Width() || y >= m.Shape.Height() {
		return false
	}
	return m.Shape.At(x, y)
}

// minMatchRun is the run length that makes a match.
const minMatchRun = 3

// orthogonal lists the four unit offsets in enumeration order.
var orthogonal = [4]Coord{{-1, 0}, {0, -1}, {0, 1}, {1, 0}}

// IsPartOfValidMatch reports whether the horizontal or vertical run of
// identical tokens through (x, y) has length three or more. Empty cells
// never match.
func (b *Board) IsPartOfValidMatch(x, y int) bool {
	if !b.IsValidCell(x, y) {
		return false
	}
	t := b.Get(x, y)
	if t.IsEmpty() {
		return false
	}
	return b.runLength(x, y, 1, 0, t) >= minMatchRun ||
		b.runLength(x, y, 0, 1, t) >= minMatchRun
}

// runLength counts identical tokens through (x, y) along (dx, dy) in both
// directions.
func (b *Board) runLength(x, y, dx, dy int, t Token) int {
	n := 1
	for i := 1; b.IsValidCell(x+dx*i, y+dy*i) && b.Get(x+dx*i, y+dy*i) == t; i++ {
		n++
	}
	for i := 1; b.IsValidCell(x-dx*i, y-dy*i) && b.Get(x-dx*i, y-dy*i) == t; i++ {
		n++
	}
	return n
}

// GetMatches returns every match on the board. Cells are scanned
// row-major from (0,0); each cell appears in at most one match.
func (b *Board) GetMatches() []Match {
	var matches []Match
	visited := make([]bool, b.Width()*b.Height())

	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			i := y*b.Width() + x
			if visited[i] {
				continue
			}
			visited[i] = true

			if b.Get(x, y).IsEmpty() || !b.IsPartOfValidMatch(x, y) {
				continue
			}

			region := b.floodFill(x, y)
			for _, c := range region {
				visited[c.Y*b.Width()+c.X] = true
			}
			if len(region) < minMatchRun {
				continue
			}
			matches = append(matches, b.matchFromCells(region))
		}
	}
	return matches
}

// floodFill collects the orthogonally connected cells of the seed's type
// that each qualify as part of a valid match on their own.
func (b *Board) floodFill(x, y int) []Coord {
	t := b.Get(x, y)
	seed := C(x, y)
	seen := map[Coord]bool{seed: true}
	region := []Coord{seed}
	stack := []Coord{seed}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, d := range orthogonal {
			n := cur.Add(d.X, d.Y)
			if !b.IsValidCell(n.X, n.Y) || seen[n] {
				continue
			}
			seen[n] = true
			if b.Get(n.X, n.Y) != t || !b.IsPartOfValidMatch(n.X, n.Y) {
				continue
			}
			region = append(region, n)
			stack = append(stack, n)
		}
	}
	return region
}

// matchFromCells wraps a region in its bounding box.
func (b *Board) matchFromCells(cells []Coord) Match {
	minX, minY := cells[0].X, cells[0].Y
	maxX, maxY := minX, minY
	for _, c := range cells[1:] {
		minX, maxX = min(minX, c.X), max(maxX, c.X)
		minY, maxY = min(minY, c.Y), max(maxY, c.Y)
	}

	shape := NewShape(maxX-minX+1, maxY-minY+1, false)
	for _, c := range cells {
		shape.Set(c.X-minX, c.Y-minY, true)
	}
	return Match{
		Origin: C(minX, minY),
		Shape:  shape,
		Token:  b.Get(cells[0].X, cells[0].Y),
	}
}
