package quiz

import (
	"math/rand/v2"
	"sync"
)

// Source yields pseudo-random floats in [0, 1). The generator draws every
// shuffle and coin flip from it, so tests can replay a fixed sequence.
type Source interface {
	Float64() float64
}

type globalSource struct{}

func (globalSource) Float64() float64 {
	return rand.Float64() //nolint:gosec // quiz ordering is not security sensitive
}

// DefaultSource returns the process-global math/rand/v2 source.
func DefaultSource() Source {
	return globalSource{}
}

// SequenceSource replays a fixed list of values, cycling when it runs out.
// An empty sequence always yields 0.
type SequenceSource struct {
	mu     sync.Mutex
	values []float64
	next   int
}

func NewSequenceSource(values ...float64) *SequenceSource {
	return &SequenceSource{values: values}
}

func (s *SequenceSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

func shuffle[T any](src Source, items []T) {
	for i := len(items) - 1; i > 0; i-- {
		j := int(src.Float64() * float64(i+1))
		if j > i {
			j = i
		} else if j < 0 {
			j = 0
		}
		items[i], items[j] = items[j], items[i]
	}
}

func coinFlip(src Source) bool {
	return src.Float64() < 0.5
}
