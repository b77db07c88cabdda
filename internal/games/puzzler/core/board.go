package core

import "strings"

// Board is the token grid. It owns token state and emits notifications on
// its emitter; a board with no emitter is silent, which is how search
// copies stay detached from the live game.
type Board struct {
	*Grid[Token]
	rng    Random
	events Emitter
}

// NewBoard creates an empty board. rng is used by Randomize and FillEmpty;
// events may be nil.
func NewBoard(width, height int, rng Random, events Emitter) *Board {
	b := &Board{
		Grid:   NewGrid(width, height, Empty),
		rng:    rng,
		events: events,
	}
	b.Grid.OnChange(b.cellChanged)
	return b
}

// BoardFromRows builds a board from rows of token codes, top row first.
// Unknown codes become Empty.
func BoardFromRows(rows []string, rng Random, events Emitter) *Board {
	height := len(rows)
	width := 0
	for _, r := range rows {
		width = max(width, len([]rune(r)))
	}

	b := NewBoard(width, height, rng, events)
	for i, row := range rows {
		y := height - 1 - i
		for x, r := range []rune(row) {
			t, _ := TokenFromRune(r)
			b.put(x, y, t)
		}
	}
	return b
}

func (b *Board) cellChanged(x, y int) {
	b.emit(CellChanged{Cell: C(x, y)})
}

func (b *Board) emit(e Event) {
	if b.events != nil {
		b.events.Emit(e)
	}
}

// Clone returns a detached deep copy: same tokens, no emitter.
func (b *Board) Clone() *Board {
	c := &Board{
		Grid: b.Grid.Clone(),
		rng:  b.rng,
	}
	c.Grid.OnChange(c.cellChanged)
	return c
}

// Equal reports whether two boards have the same size and tokens.
func (b *Board) Equal(other *Board) bool {
	if b.Width() != other.Width() || b.Height() != other.Height() {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// FullShape is a set mask covering the whole board.
func (b *Board) FullShape() Shape {
	return NewShape(b.Width(), b.Height(), true)
}

// TrySwap tests whether swapping two orthogonal neighbors would put either
// of them in a match. The board is left unchanged.
func (b *Board) TrySwap(x1, y1, x2, y2 int) bool {
	if !b.IsValidCell(x1, y1) || !b.IsValidCell(x2, y2) {
		return false
	}
	if !b.IsAdjacent(x1, y1, x2, y2, true, 1) {
		return false
	}

	a, c := b.Get(x1, y1), b.Get(x2, y2)
	b.put(x1, y1, c)
	b.put(x2, y2, a)

	isMatch := b.IsPartOfValidMatch(x1, y1) || b.IsPartOfValidMatch(x2, y2)

	b.put(x1, y1, a)
	b.put(x2, y2, c)
	return isMatch
}

// Swap exchanges two cells. With causeUpdate it also emits SwapOccurred
// and Moved so observers can follow the exchanged content.
func (b *Board) Swap(x1, y1, x2, y2 int, causeUpdate bool) {
	a := b.Get(x1, y1)
	b.Set(x1, y1, b.Get(x2, y2))
	b.Set(x2, y2, a)

	if !causeUpdate {
		return
	}
	b.emit(SwapOccurred{A: C(x1, y1), B: C(x2, y2)})
	b.emit(Moved{From: C(x1, y1), To: C(x2, y2)})
}

// Replace sets every cell covered by shape, placed at (x, y), to value.
func (b *Board) Replace(x, y int, shape Shape, value Token) {
	for _, c := range shape.Cells() {
		b.Set(x+c.X, y+c.Y, value)
	}
}

// Match clears every cell covered by shape, placed at (x, y), and emits
// Matched for each one.
func (b *Board) Match(x, y int, shape Shape) {
	for _, c := range shape.Cells() {
		cx, cy := x+c.X, y+c.Y
		if !b.IsValidCell(cx, cy) {
			continue
		}
		t := b.Get(cx, cy)
		b.Set(cx, cy, Empty)
		b.emit(Matched{Cell: C(cx, cy), Token: t})
	}
}

// Randomize assigns a random token to every cell covered by shape. With
// preventMatches, a cell is redrawn until it is not part of a match.
func (b *Board) Randomize(x, y int, shape Shape, preventMatches bool) {
	for _, c := range shape.Cells() {
		cx, cy := x+c.X, y+c.Y
		if !b.IsValidCell(cx, cy) {
			continue
		}
		b.put(cx, cy, RandomToken(b.rng))
		for preventMatches && b.IsPartOfValidMatch(cx, cy) {
			b.put(cx, cy, RandomToken(b.rng))
		}
		b.Set(cx, cy, b.Get(cx, cy))
	}
}

// FillEmpty randomizes every empty cell, column by column.
func (b *Board) FillEmpty(preventMatches bool) {
	single := SingleShape()
	for x := 0; x < b.Width(); x++ {
		for y := 0; y < b.Height(); y++ {
			if b.Get(x, y).IsEmpty() {
				b.Randomize(x, y, single, preventMatches)
			}
		}
	}
}

// CountEmpty returns the number of empty cells.
func (b *Board) CountEmpty() int {
	n := 0
	for _, t := range b.cells {
		if t.IsEmpty() {
			n++
		}
	}
	return n
}

// ApplyGravity lets tokens fall through empty cells toward row 0. Rows
// are processed bottom-up starting at row 1; each processed cell emits
// one Moved with its net displacement.
func (b *Board) ApplyGravity() {
	for y := 1; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			cur := y
			for cur >= 1 && b.Get(x, cur-1).IsEmpty() {
				b.Swap(x, cur, x, cur-1, false)
				cur--
			}
			b.emit(Moved{From: C(x, y), To: C(x, cur)})
		}
	}
}

// Rows returns the tokens as rows of codes, top row first.
func (b *Board) Rows() []string {
	rows := make([]string, b.Height())
	for y := 0; y < b.Height(); y++ {
		var sb strings.Builder
		for x := 0; x < b.Width(); x++ {
			sb.WriteRune(b.Get(x, y).Rune())
		}
		rows[b.Height()-1-y] = sb.String()
	}
	return rows
}

// String renders the board top row first.
func (b *Board) String() string {
	return strings.Join(b.Rows(), "\n")
}
