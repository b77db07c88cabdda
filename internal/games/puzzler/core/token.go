package core

import (
	"fmt"
	"strings"
)

// Token is the value held by a board cell. Empty marks a cleared cell;
// the remaining values form a fixed palette.
type Token uint8

const (
	Empty Token = iota
	Red
	Blue
	Green
	Yellow
	Purple
	Orange
)

// PaletteSize is the number of non-empty tokens.
const PaletteSize = 6

var tokenNames = [...]string{"Empty", "Red", "Blue", "Green", "Yellow", "Purple", "Orange"}

var tokenRunes = [...]rune{'.', 'R', 'B', 'G', 'Y', 'P', 'O'}

// Display colors, one per token. Empty is drawn gray.
var tokenRGB = [...][3]uint8{
	{120, 110, 120},
	{234, 85, 70},
	{64, 164, 216},
	{107, 192, 120},
	{254, 204, 47},
	{163, 99, 216},
	{249, 162, 40},
}

// Palette returns the non-empty tokens in palette order.
func Palette() []Token {
	return []Token{Red, Blue, Green, Yellow, Purple, Orange}
}

// RandomToken draws a uniformly random non-empty token.
func RandomToken(r Random) Token {
	return Token(1 + r.Intn(PaletteSize))
}

// IsEmpty reports whether the token marks a cleared cell.
func (t Token) IsEmpty() bool {
	return t == Empty
}

// Valid reports whether t is Empty or a palette member.
func (t Token) Valid() bool {
	return int(t) < len(tokenNames)
}

// String returns the token name.
func (t Token) String() string {
	if !t.Valid() {
		return fmt.Sprintf("Token(%d)", t)
	}
	return tokenNames[t]
}

// Rune returns the single-letter code used in layouts and text dumps.
func (t Token) Rune() rune {
	if !t.Valid() {
		return '?'
	}
	return tokenRunes[t]
}

// RGB returns the display color of the token.
func (t Token) RGB() (r, g, b uint8) {
	if !t.Valid() {
		t = Empty
	}
	c := tokenRGB[t]
	return c[0], c[1], c[2]
}

// Hex returns the display color as "#rrggbb".
func (t Token) Hex() string {
	r, g, b := t.RGB()
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}

// ParseToken accepts a token name or its single-letter code, case-insensitive.
// "." and "empty" parse as Empty.
func ParseToken(s string) (Token, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 1 {
		return TokenFromRune(rune(s[0]))
	}
	for i, name := range tokenNames {
		if strings.EqualFold(s, name) {
			return Token(i), true
		}
	}
	return Empty, false
}

// TokenFromRune decodes a single-letter code.
func TokenFromRune(r rune) (Token, bool) {
	switch r {
	case '.', '_':
		return Empty, true
	case 'R', 'r':
		return Red, true
	case 'B', 'b':
		return Blue, true
	case 'G', 'g':
		return Green, true
	case 'Y', 'y':
		return Yellow, true
	case 'P', 'p':
		return Purple, true
	case 'O', 'o':
		return Orange, true
	}
	return Empty, false
}
