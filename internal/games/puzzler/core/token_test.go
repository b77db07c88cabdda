package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseToken(t *testing.T) {
	tests := []struct {
		in   string
		want Token
		ok   bool
	}{
		{in: "R", want: Red, ok: true},
		{in: "o", want: Orange, ok: true},
		{in: ".", want: Empty, ok: true},
		{in: "purple", want: Purple, ok: true},
		{in: " Green ", want: Green, ok: true},
		{in: "empty", want: Empty, ok: true},
		{in: "x", want: Empty, ok: false},
		{in: "magenta", want: Empty, ok: false},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := ParseToken(tc.in)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestTokenRoundTrip(t *testing.T) {
	for _, tok := range append([]Token{Empty}, Palette()...) {
		got, ok := TokenFromRune(tok.Rune())
		assert.True(t, ok)
		assert.Equal(t, tok, got)
	}
}

func TestTokenHex(t *testing.T) {
	assert.Equal(t, "#EA5546", Red.Hex())
	assert.Equal(t, "#786E78", Token(99).Hex())
	assert.Equal(t, "Token(99)", Token(99).String())
}

func TestRandomTokenInPalette(t *testing.T) {
	rng := NewSequenceRandom(0, 5, 6, -1)
	assert.Equal(t, Red, RandomToken(rng))
	assert.Equal(t, Orange, RandomToken(rng))
	assert.Equal(t, Red, RandomToken(rng))
	assert.Equal(t, Orange, RandomToken(rng))
}
