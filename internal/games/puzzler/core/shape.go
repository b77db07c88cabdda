package core

import (
	"fmt"
	"strings"
)

// Shape is a width x height boolean mask with a cached count of set cells.
// Indices passed to At and Set must be in range; anything else panics.
type Shape struct {
	width  int
	height int
	mask   []bool // row-major: index = y*width + x
	count  int
}

// NewShape creates a uniform shape where every cell equals fill.
func NewShape(width, height int, fill bool) Shape {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("core: invalid shape size %dx%d", width, height))
	}
	s := Shape{
		width:  width,
		height: height,
		mask:   make([]bool, width*height),
	}
	if fill {
		for i := range s.mask {
			s.mask[i] = true
		}
		s.count = len(s.mask)
	}
	return s
}

// ShapeFromRows builds a shape from rows indexed [y][x].
// All rows must have the same length.
func ShapeFromRows(rows [][]bool) Shape {
	height := len(rows)
	width := 0
	if height > 0 {
		width = len(rows[0])
	}

	s := NewShape(width, height, false)
	for y, row := range rows {
		if len(row) != width {
			panic(fmt.Sprintf("core: ragged shape row %d: got %d cells, want %d", y, len(row), width))
		}
		for x, v := range row {
			if v {
				s.mask[y*width+x] = true
				s.count++
			}
		}
	}
	return s
}

// SingleShape is a 1x1 set mask.
func SingleShape() Shape {
	return NewShape(1, 1, true)
}

// CrossShape is a 3x3 plus sign.
func CrossShape() Shape {
	return ShapeFromRows([][]bool{
		{false, true, false},
		{true, true, true},
		{false, true, false},
	})
}

// SquareShape is a filled 3x3 square.
func SquareShape() Shape {
	return NewShape(3, 3, true)
}

// Width returns the mask width.
func (s Shape) Width() int { return s.width }

// Height returns the mask height.
func (s Shape) Height() int { return s.height }

// Count returns the number of set cells.
func (s Shape) Count() int { return s.count }

func (s Shape) index(x, y int) int {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		panic(fmt.Sprintf("core: shape index (%d,%d) out of range %dx%d", x, y, s.width, s.height))
	}
	return y*s.width + x
}

// At reports whether the cell at (x, y) is set.
func (s Shape) At(x, y int) bool {
	return s.mask[s.index(x, y)]
}

// Set changes a single cell and keeps the count exact.
func (s *Shape) Set(x, y int, v bool) {
	i := s.index(x, y)
	if s.mask[i] == v {
		return
	}
	s.mask[i] = v
	if v {
		s.count++
	} else {
		s.count--
	}
}

// Invert returns a new shape with every cell negated.
func (s Shape) Invert() Shape {
	inv := NewShape(s.width, s.height, false)
	for i, v := range s.mask {
		inv.mask[i] = !v
	}
	inv.count = len(inv.mask) - s.count
	return inv
}

// Clone returns a deep copy. Copying a Shape by value shares its mask.
func (s Shape) Clone() Shape {
	c := s
	c.mask = make([]bool, len(s.mask))
	copy(c.mask, s.mask)
	return c
}

// Cells returns the relative coordinates of all set cells in row-major order.
func (s Shape) Cells() []Coord {
	cells := make([]Coord, 0, s.count)
	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			if s.mask[y*s.width+x] {
				cells = append(cells, C(x, y))
			}
		}
	}
	return cells
}

// String renders the mask one row per line, 'O' for set and '_' for clear.
func (s Shape) String() string {
	var sb strings.Builder
	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			if s.mask[y*s.width+x] {
				sb.WriteByte('O')
			} else {
				sb.WriteByte('_')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
