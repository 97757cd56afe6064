package testutil

import (
	"sync"
	"time"
)

// FixedClock is a thread-safe clock pinned to an explicit instant, for
// reproducible digest timestamps in tests.
//
// Unlike the system clock, FixedClock can be advanced or reset so the same
// scenario can run repeatedly with identical output bytes.
type FixedClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFixedClock creates a clock pinned to the given instant.
func NewFixedClock(now time.Time) *FixedClock {
	return &FixedClock{now: now}
}

// Now returns the pinned instant.
//
// Thread-safe: uses mutex to protect the instant.
func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
//
// Thread-safe: uses mutex to protect the instant.
func (c *FixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Set pins the clock to a new instant.
//
// Used for test reuse; the instant may move backward.
func (c *FixedClock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}
