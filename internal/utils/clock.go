// internal/utils/clock.go
package utils

import "time"

// Clock is a monotonic time source. Now reports the time elapsed since the
// clock's epoch; every cooldown and deadline in the core compares against it.
type Clock interface {
	Now() time.Duration
}

// SystemClock reads the process monotonic clock.
type SystemClock struct {
	start time.Time
}

func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

func (c *SystemClock) Now() time.Duration {
	return time.Since(c.start)
}

// ManualClock only moves when told to.
type ManualClock struct {
	now time.Duration
}

func NewManualClock() *ManualClock {
	return &ManualClock{}
}

func (c *ManualClock) Now() time.Duration {
	return c.now
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	if d > 0 {
		c.now += d
	}
}

// AdvanceSeconds is Advance for frame deltas expressed in seconds.
func (c *ManualClock) AdvanceSeconds(s float64) {
	c.Advance(time.Duration(s * float64(time.Second)))
}
