// Package layout picks the presentation template for a generation run.
package layout

import (
	"math/rand/v2"

	"infographic/internal/domain"
)

// Source is the random source the selector draws from.
type Source interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// Selector draws one layout uniformly at random per call.
type Selector struct {
	src Source
}

// NewSelector builds a selector. A nil src uses the process-wide generator.
func NewSelector(src Source) *Selector {
	if src == nil {
		src = globalSource{}
	}
	return &Selector{src: src}
}

// NewSeeded returns a selector with a reproducible PCG stream.
func NewSeeded(seed uint64) *Selector {
	return NewSelector(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// Pick returns one of the three layouts.
func (s *Selector) Pick() domain.Layout {
	n := len(domain.Layouts)
	i := s.src.IntN(n)
	if i < 0 || i >= n {
		i = 0
	}
	return domain.Layouts[i]
}
