// Package testutil provides deterministic test doubles shared across
// package tests.
package testutil

import (
	"sync"
	"time"
)

// SteppedClock is a thread-safe fake time source that advances a fixed
// step on every call. Throughput and ETA arithmetic become exact, and
// tests never depend on wall time.
//
// The clock can be reset for test reuse, so one scenario can run
// multiple times with identical timestamps.
type SteppedClock struct {
	mu   sync.Mutex
	base time.Time
	t    time.Time
	step time.Duration
}

// NewSteppedClock creates a clock starting at base. The first Now call
// returns base+step.
func NewSteppedClock(base time.Time, step time.Duration) *SteppedClock {
	return &SteppedClock{base: base, t: base, step: step}
}

// Now advances the clock one step and returns the new time.
func (c *SteppedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(c.step)
	return c.t
}

// Current returns the clock's time without advancing it.
func (c *SteppedClock) Current() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

// Reset rewinds the clock to its base time.
func (c *SteppedClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.base
}
