package testutil

import (
	"fmt"
	"sync"
)

// FixedIDGenerator returns predetermined run ids for testing.
//
// Ids are returned in order; once they are exhausted the generator falls
// back to "run-NNNN" numbered from the count of ids already issued. This
// keeps golden output stable without tests having to predict how many runs
// a scenario performs.
//
// Thread-safety: safe for concurrent use via internal mutex.
type FixedIDGenerator struct {
	mu  sync.Mutex
	ids []string
	idx int
}

// NewFixedIDGenerator creates a generator that returns ids in order.
func NewFixedIDGenerator(ids ...string) *FixedIDGenerator {
	return &FixedIDGenerator{ids: ids}
}

// Generate returns the next id.
func (g *FixedIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.idx++
	if g.idx <= len(g.ids) {
		return g.ids[g.idx-1]
	}
	return fmt.Sprintf("run-%04d", g.idx)
}
