package runner

import "sync/atomic"

// Clock hands out run seq numbers. Runs are ordered by seq, never by wall
// time, so history order survives replay. Safe for concurrent use.
type Clock struct {
	next atomic.Int64
}

// NewClock returns a clock whose first Next is first. Values below 1 start
// at 1, matching an empty store.
func NewClock(first int64) *Clock {
	c := &Clock{}
	c.next.Store(max(first, 1))
	return c
}

// Next returns the seq for the next run.
func (c *Clock) Next() int64 {
	return c.next.Add(1) - 1
}

// Peek returns the value Next would return.
func (c *Clock) Peek() int64 {
	return c.next.Load()
}
