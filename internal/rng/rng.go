// Package rng provides the random source injected into every battle,
// card roll and tower challenge. There is no package-level generator:
// callers own the source, which keeps simulations reproducible.
package rng

import "math/rand/v2"

// Source yields uniform draws in [0, 1).
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	Float64() float64
}

// New returns a PCG-backed generator for the seed.
// Equal seeds always produce equal sequences.
func New(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Fixed always returns the same value. Useful to force every roll to
// miss (0.999) or hit (0).
type Fixed float64

// Float64 implements Source.
func (f Fixed) Float64() float64 { return float64(f) }

// Sequence replays the given draws in order and wraps around at the end.
type Sequence struct {
	values []float64
	pos    int
}

// NewSequence creates a Sequence. Panics on an empty slice.
func NewSequence(values ...float64) *Sequence {
	if len(values) == 0 {
		panic("rng: NewSequence requires at least one value")
	}
	return &Sequence{values: values}
}

// Float64 implements Source.
func (s *Sequence) Float64() float64 {
	v := s.values[s.pos%len(s.values)]
	s.pos++
	return v
}

// Draws returns how many values have been consumed.
func (s *Sequence) Draws() int { return s.pos }
