// Package idgen provides sequential process identifier generators.
package idgen

import "sync/atomic"

// Generator produces unique, increasing identifiers.
type Generator interface {
	Generate() int
}

// New returns a sequential generator whose first emitted ID is 1.
func New() Generator {
	return &sequentialGenerator{}
}

// NewStartingAt returns a sequential generator whose first emitted ID is
// first. It panics if first is not positive.
func NewStartingAt(first int) Generator {
	if first < 1 {
		panic("idgen: first id must be positive")
	}

	return &sequentialGenerator{next: int64(first - 1)}
}

type sequentialGenerator struct {
	next int64
}

func (g *sequentialGenerator) Generate() int {
	return int(atomic.AddInt64(&g.next, 1))
}
