package core

import (
	"math"
	"testing"
	"time"
)

func TestFixedStepReleasesOneTickPerCall(t *testing.T) {
	fs := NewFixedStep(300 * time.Millisecond)
	if !fs.Advance(0) {
		t.Fatal("a fresh accumulator should fire immediately")
	}
	if fs.Accumulated() != 0 {
		t.Fatalf("accumulated = %s, want 0", fs.Accumulated())
	}

	if fs.Advance(290 * time.Millisecond) {
		t.Fatal("290ms should not fire")
	}
	if !fs.Advance(25 * time.Millisecond) {
		t.Fatal("315ms should fire")
	}
	if fs.Accumulated() != 15*time.Millisecond {
		t.Fatalf("remainder = %s, want 15ms", fs.Accumulated())
	}

	// A long frame still releases a single tick and keeps the surplus.
	if !fs.Advance(time.Second) {
		t.Fatal("long frame should fire")
	}
	if fs.Accumulated() != 715*time.Millisecond {
		t.Fatalf("surplus = %s, want 715ms", fs.Accumulated())
	}
	// Negative deltas add nothing but the banked surplus still drains.
	if !fs.Advance(-time.Second) || fs.Accumulated() != 415*time.Millisecond {
		t.Fatalf("after negative delta accumulated = %s, want 415ms", fs.Accumulated())
	}
}

func TestFixedStepSaturates(t *testing.T) {
	fs := NewFixedStep(time.Millisecond)
	if !fs.Advance(time.Duration(math.MaxInt64)) {
		t.Fatal("huge delta should fire")
	}
	if fs.Accumulated() != time.Duration(math.MaxInt64)-time.Millisecond {
		t.Fatalf("accumulated = %d, want saturated bank minus one step", fs.Accumulated())
	}
	if !fs.Advance(time.Hour) || fs.Accumulated() <= 0 {
		t.Fatalf("bank wrapped: %d", fs.Accumulated())
	}
}

func TestFixedStepDefaultsAndClamp(t *testing.T) {
	fs := NewFixedStep(0)
	if fs.Step() != time.Second/60 {
		t.Fatalf("step = %s, want 1/60s", fs.Step())
	}
	fs.SetAccumulated(-5)
	if fs.Accumulated() != 0 {
		t.Fatalf("negative accumulator not clamped: %s", fs.Accumulated())
	}
}

func TestFrameClock(t *testing.T) {
	now := time.Unix(100, 0)
	c := NewFrameClockFunc(func() time.Time { return now })
	if d := c.Delta(); d != 0 {
		t.Fatalf("first delta = %s", d)
	}
	now = now.Add(16 * time.Millisecond)
	if d := c.Delta(); d != 16*time.Millisecond {
		t.Fatalf("delta = %s, want 16ms", d)
	}
	now = now.Add(-time.Second)
	if d := c.Delta(); d != 0 {
		t.Fatalf("backwards clock gave %s", d)
	}
	c.Reset()
	now = now.Add(time.Hour)
	if d := c.Delta(); d != 0 {
		t.Fatalf("delta after reset = %s", d)
	}
}
