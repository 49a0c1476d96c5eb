// Package internal holds helpers shared by the server and its tests.
package internal

import (
	"sync"
	"time"
)

// Clock reports the current time. The server uses it to time requests.
type Clock interface {
	Now() time.Time
}

// SystemClock reads time.Now, which carries a monotonic reading.
type SystemClock struct{}

// Now returns the current system time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// StepClock is a Clock for tests. Every call to Now returns the current
// time and then moves it forward by a fixed step, so two consecutive reads
// around a request always differ by exactly one step.
type StepClock struct {
	mu      sync.Mutex
	current time.Time
	step    time.Duration
}

// NewStepClock returns a StepClock starting at start. A zero start is
// replaced by a fixed instant so log output stays reproducible.
func NewStepClock(start time.Time, step time.Duration) *StepClock {
	if step < 0 {
		panic("StepClock: step must be non-negative")
	}
	if start.IsZero() {
		start = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	}
	return &StepClock{current: start, step: step}
}

// Now returns the clock's time and advances it by one step.
func (c *StepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.current
	c.current = c.current.Add(c.step)
	return now
}

// Advance moves the clock forward by d without counting as a read.
func (c *StepClock) Advance(d time.Duration) {
	if d < 0 {
		panic("StepClock.Advance: duration must be non-negative")
	}
	c.mu.Lock()
	c.current = c.current.Add(d)
	c.mu.Unlock()
}
