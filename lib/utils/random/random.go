package random

import (
	"math/rand"
	"sync"
)

// Source yields values in [0, 1), like the fair coin the panels flip.
type Source interface {
	Float64() float64
}

type defaultSource struct{}

func (defaultSource) Float64() float64 {
	return rand.Float64()
}

// Default is backed by the runtime-seeded global generator.
func Default() Source {
	return defaultSource{}
}

// Sequence replays fixed values in order and wraps around when exhausted.
type Sequence struct {
	mu     sync.Mutex
	values []float64
	pos    int
}

func NewSequence(values ...float64) *Sequence {
	return &Sequence{values: values}
}

func (s *Sequence) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.pos%len(s.values)]
	s.pos++
	return v
}

// Pick returns an index in [0, n) the way Math.floor(rnd*n) would.
func Pick(src Source, n int) int {
	if n <= 0 {
		return 0
	}
	idx := int(src.Float64() * float64(n))
	if idx >= n {
		idx = n - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}
