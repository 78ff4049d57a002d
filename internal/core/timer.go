package core

import (
	"math"
	"time"
)

// FixedStep accumulates frame time and releases at most one tick per call,
// decoupling simulation speed from the frame rate.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
}

// NewFixedStep constructs a FixedStep with the given tick duration. The
// accumulator starts full so the first Advance fires immediately.
func NewFixedStep(step time.Duration) *FixedStep {
	if step <= 0 {
		step = time.Second / 60
	}
	return &FixedStep{step: step, accumulator: step}
}

// Step returns the tick duration.
func (f *FixedStep) Step() time.Duration { return f.step }

// Accumulated returns the time banked since the last released tick.
func (f *FixedStep) Accumulated() time.Duration { return f.accumulator }

// SetAccumulated overwrites the banked time. Negative values clamp to zero.
func (f *FixedStep) SetAccumulated(d time.Duration) {
	if d < 0 {
		d = 0
	}
	f.accumulator = d
}

// Advance banks delta and reports whether a tick is due. When it is, exactly
// one step is drained; any surplus carries over to later calls rather than
// being caught up in a loop. The bank saturates instead of overflowing.
func (f *FixedStep) Advance(delta time.Duration) bool {
	if delta > 0 {
		if f.accumulator > math.MaxInt64-delta {
			f.accumulator = math.MaxInt64
		} else {
			f.accumulator += delta
		}
	}
	if f.accumulator >= f.step {
		f.accumulator -= f.step
		return true
	}
	return false
}

// FrameClock measures the wall-clock time between successive frames.
type FrameClock struct {
	now  func() time.Time
	last time.Time
}

// NewFrameClock returns a FrameClock backed by time.Now.
func NewFrameClock() *FrameClock {
	return NewFrameClockFunc(time.Now)
}

// NewFrameClockFunc returns a FrameClock reading time from now.
func NewFrameClockFunc(now func() time.Time) *FrameClock {
	return &FrameClock{now: now}
}

// Delta returns the time since the previous call. The first call returns 0.
func (c *FrameClock) Delta() time.Duration {
	now := c.now()
	if c.last.IsZero() {
		c.last = now
		return 0
	}
	delta := now.Sub(c.last)
	c.last = now
	if delta < 0 {
		return 0
	}
	return delta
}

// Reset forgets the previous frame so the next Delta returns 0.
func (c *FrameClock) Reset() { c.last = time.Time{} }
