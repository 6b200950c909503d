package loop

import (
	"fmt"
	"time"
)

// Clock is a fixed-timestep accumulator. Wall time is banked and handed out
// in whole steps; the remainder carries over to the next frame.
//
// Durations are integer nanoseconds, so the number of steps taken depends
// only on the total banked time and never on how it was split up.
type Clock struct {
	step      time.Duration
	banked    time.Duration
	simulated time.Duration
	last      time.Time
	primed    bool
}

// NewClock creates a clock with the given step. A non-positive step panics.
func NewClock(step time.Duration) *Clock {
	if step <= 0 {
		panic(fmt.Sprintf("loop: clock step must be positive, got %v", step))
	}
	return &Clock{step: step}
}

// Step returns the fixed step size.
func (c *Clock) Step() time.Duration {
	return c.step
}

// SetStep changes the step size for later Tick and Accumulate calls,
// keeping banked time, simulated time and the last tick.
func (c *Clock) SetStep(step time.Duration) {
	if step <= 0 {
		panic(fmt.Sprintf("loop: clock step must be positive, got %v", step))
	}
	c.step = step
}

// Tick banks the wall time elapsed since the previous Tick and returns how
// many steps are due. The first call only records now.
func (c *Clock) Tick(now time.Time) int {
	if !c.primed {
		c.primed = true
		c.last = now
		return 0
	}
	elapsed := now.Sub(c.last)
	c.last = now
	return c.Accumulate(elapsed)
}

// Accumulate banks d and returns how many whole steps can be taken.
// The caller is expected to run exactly that many steps.
// Negative durations (a clock going backwards) are ignored.
func (c *Clock) Accumulate(d time.Duration) int {
	if d > 0 {
		c.banked += d
	}
	n := int(c.banked / c.step)
	c.banked -= time.Duration(n) * c.step
	c.simulated += time.Duration(n) * c.step
	return n
}

// Banked returns the time waiting to be consumed, always less than a step.
func (c *Clock) Banked() time.Duration {
	return c.banked
}

// Simulated returns the total simulated time handed out so far.
func (c *Clock) Simulated() time.Duration {
	return c.simulated
}

// Reset forgets banked time and the last tick, keeping the step.
func (c *Clock) Reset() {
	c.banked = 0
	c.simulated = 0
	c.primed = false
}
