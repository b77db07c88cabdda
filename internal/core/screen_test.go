package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.GetCell(x, y) != blankCell {
				t.Errorf("New screen should be blank, got %+v at (%d, %d)", s.GetCell(x, y), x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.Set(5, 5, 'X')
	if s.Get(5, 5) != 'X' {
		t.Errorf("Get(5, 5) = %q, expected 'X'", s.Get(5, 5))
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')

	if s.Get(-1, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
	if s.GetCell(100, 0) != blankCell {
		t.Error("Out of bounds GetCell should return a blank cell")
	}
}

func TestScreenSetColored(t *testing.T) {
	s := NewScreen(4, 2)
	s.SetColored(1, 1, '●', RGB(234, 85, 70))

	c := s.GetCell(1, 1)
	if c.Rune != '●' {
		t.Errorf("Rune = %q, expected '●'", c.Rune)
	}
	if c.FG != "#EA5546" {
		t.Errorf("FG = %q, expected \"#EA5546\"", c.FG)
	}
	if c.BG != ColorDefault {
		t.Errorf("BG = %q, expected default", c.BG)
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(10, 10)

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			s.SetColored(x, y, 'X', ColorRed)
		}
	}

	s.Clear()

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if s.GetCell(x, y) != blankCell {
				t.Errorf("After Clear, expected blank at (%d, %d), got %+v", x, y, s.GetCell(x, y))
			}
		}
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawText(2, 1, "Hello")

	expected := "Hello"
	for i, ch := range expected {
		if s.Get(2+i, 1) != ch {
			t.Errorf("DrawText: expected %q at (%d, 1), got %q", ch, 2+i, s.Get(2+i, 1))
		}
	}

	// Text should be clipped at boundaries
	s.DrawText(18, 0, "Hello")
	if s.Get(18, 0) != 'H' || s.Get(19, 0) != 'e' {
		t.Error("Text should be clipped at right boundary")
	}
}

func TestScreenDrawTextMultibyte(t *testing.T) {
	s := NewScreen(10, 1)
	s.DrawTextColored(0, 0, "♥♥x", ColorRed)

	if s.Get(2, 0) != 'x' {
		t.Errorf("multibyte text misplaced: row = %q", s.Row(0))
	}
	if s.GetCell(0, 0).FG != ColorRed {
		t.Errorf("FG = %q, expected red", s.GetCell(0, 0).FG)
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawTextCentered(2, "Hi", ColorDefault)

	x := (20 - 2) / 2
	if s.Get(x, 2) != 'H' || s.Get(x+1, 2) != 'i' {
		t.Errorf("DrawTextCentered failed, text not at expected position")
	}
}

func TestScreenFillRect(t *testing.T) {
	s := NewScreen(10, 10)
	s.FillRect(NewRect(2, 2, 3, 3), ColorGray)

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			inside := x >= 2 && x < 5 && y >= 2 && y < 5
			got := s.GetCell(x, y).BG
			if inside && got != ColorGray {
				t.Errorf("expected gray background at (%d, %d)", x, y)
			}
			if !inside && got != ColorDefault {
				t.Errorf("expected default background at (%d, %d), got %q", x, y, got)
			}
		}
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawBox(NewRect(0, 0, 5, 4), ColorCyan)

	corners := map[[2]int]rune{
		{0, 0}: '┌',
		{4, 0}: '┐',
		{0, 3}: '└',
		{4, 3}: '┘',
	}
	for pos, want := range corners {
		if got := s.Get(pos[0], pos[1]); got != want {
			t.Errorf("corner at %v = %q, expected %q", pos, got, want)
		}
	}
	if s.Get(2, 0) != '─' || s.Get(0, 1) != '│' {
		t.Error("box edges not drawn")
	}
	if s.GetCell(2, 0).FG != ColorCyan {
		t.Error("box color not applied")
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.Set(5, 5, 'X')
	s.Set(9, 9, 'Y')

	s.Resize(8, 8)
	if s.Width() != 8 || s.Height() != 8 {
		t.Errorf("Resize: got %dx%d, expected 8x8", s.Width(), s.Height())
	}
	if s.Get(5, 5) != 'X' {
		t.Error("Content should be preserved after resize")
	}

	s.Resize(12, 12)
	if s.Get(9, 9) != ' ' {
		t.Error("Content outside the shrunken area should be gone")
	}
	if s.Get(5, 5) != 'X' {
		t.Error("Content should survive growing")
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(3, 2)
	s.DrawText(0, 0, "ABC")
	s.DrawText(0, 1, "DEF")

	if got := s.String(); got != "ABC\nDEF" {
		t.Errorf("String() = %q, expected %q", got, "ABC\nDEF")
	}
	if got := s.Row(1); got != "DEF" {
		t.Errorf("Row(1) = %q, expected %q", got, "DEF")
	}
	if got := s.Row(5); got != strings.Repeat(" ", 3) {
		t.Errorf("Row(5) = %q, expected spaces", got)
	}
}
