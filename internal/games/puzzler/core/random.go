package core

import "math/rand"

// Random is the source of randomness for token fills and opponent timing.
// *rand.Rand satisfies it.
type Random interface {
	// Intn returns a value in [0, n).
	Intn(n int) int
}

// NewRandom returns a seeded pseudo-random source.
func NewRandom(seed int64) Random {
	return rand.New(rand.NewSource(seed))
}

// SequenceRandom replays a fixed list of values, wrapping around when
// exhausted. Each value is reduced modulo n. It is meant for tests and
// scripted layouts.
type SequenceRandom struct {
	Values []int
	pos    int
}

// NewSequenceRandom creates a SequenceRandom over values.
func NewSequenceRandom(values ...int) *SequenceRandom {
	return &SequenceRandom{Values: values}
}

// Intn returns the next queued value modulo n.
func (s *SequenceRandom) Intn(n int) int {
	if len(s.Values) == 0 || n <= 0 {
		return 0
	}
	v := s.Values[s.pos%len(s.Values)]
	s.pos++
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
