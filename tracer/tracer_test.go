package tracer

import (
	"testing"

	"motioncore/block"
	"motioncore/core"
)

// fakeSink records every Step/SetDir call without touching real hardware.
type fakeSink struct {
	steps [core.NumAxes]int
	dir   [core.NumAxes]int32
}

func (f *fakeSink) SetDir(axis core.Axis, sign int32) error {
	f.dir[axis] = sign
	return nil
}
func (f *fakeSink) Step(axis core.Axis, n uint8) error {
	f.steps[axis] += int(n)
	return nil
}
func (f *fakeSink) Busy(axis core.Axis) bool { return false }

// countingSink counts SetDir calls per axis, for asserting direction is
// only set once per tick regardless of how many events the tick runs.
type countingSink struct {
	fakeSink
	setDirCalls [core.NumAxes]int
}

func (c *countingSink) SetDir(axis core.Axis, sign int32) error {
	c.setDirCalls[axis]++
	return c.fakeSink.SetDir(axis, sign)
}

// alwaysBusySink reports every axis as permanently busy, exercising
// stepsink.WaitNotBusy's bounded spin.
type alwaysBusySink struct{ fakeSink }

func (a *alwaysBusySink) Busy(axis core.Axis) bool { return true }

func TestTracerEmitsExactlyStepEventCountPulses(t *testing.T) {
	b := &block.Block{
		StepEventCount: 100,
		Steps:          [core.NumAxes]uint32{core.AxisX: 100},
	}
	var s State
	s.Start(b)
	sink := &fakeSink{}
	var pos block.Position

	events := uint32(0)
	for events < b.StepEventCount {
		_, newEvents, _, complete := s.Step(b, 0, events, sink, &pos)
		events = newEvents
		if complete {
			break
		}
	}
	if sink.steps[core.AxisX] != 100 {
		t.Fatalf("X pulses = %d, want 100", sink.steps[core.AxisX])
	}
	if got := pos.Get(core.AxisX); got != 100 {
		t.Fatalf("position X = %d, want 100", got)
	}
}

func TestTracerDistributesEventsAcrossAxes(t *testing.T) {
	// A 2:1 move: X gets one pulse per event, Y gets one pulse every other
	// event, using the Bresenham floor-accumulator rule.
	b := &block.Block{
		StepEventCount: 10,
		Steps:          [core.NumAxes]uint32{core.AxisX: 10, core.AxisY: 5},
	}
	var s State
	s.Start(b)
	sink := &fakeSink{}
	var pos block.Position

	events := uint32(0)
	for events < b.StepEventCount {
		_, newEvents, _, complete := s.Step(b, 0, events, sink, &pos)
		events = newEvents
		if complete {
			break
		}
	}
	if sink.steps[core.AxisX] != 10 {
		t.Fatalf("X pulses = %d, want 10", sink.steps[core.AxisX])
	}
	if sink.steps[core.AxisY] != 5 {
		t.Fatalf("Y pulses = %d, want 5", sink.steps[core.AxisY])
	}
}

func TestTracerStepMultiplierReducesToFitRemainingBudget(t *testing.T) {
	b := &block.Block{
		StepEventCount: 3,
		Steps:          [core.NumAxes]uint32{core.AxisX: 3},
	}
	var s State
	s.Start(b)
	sink := &fakeSink{}
	var pos block.Position

	// Requesting a multiplier of 2 (4 events) with only 3 events remaining
	// in the whole block must be reduced so the tracer never overshoots
	// StepEventCount.
	used, events, _, complete := s.Step(b, 2, 0, sink, &pos)
	if used > 1 {
		t.Fatalf("used multiplier %d should have been reduced to fit a 3-event block", used)
	}
	if events > b.StepEventCount {
		t.Fatalf("eventsCompleted %d exceeds StepEventCount %d", events, b.StepEventCount)
	}
	_ = complete
}

func TestTracerSetsDirectionOncePerTickNotPerEvent(t *testing.T) {
	// Requesting multiplier 3 (8 events) on an X-only move must still only
	// call SetDir once for the whole tick, since direction is fixed by the
	// block's DirectionBits for its entire duration.
	b := &block.Block{
		StepEventCount: 100,
		Steps:          [core.NumAxes]uint32{core.AxisX: 100},
	}
	var s State
	s.Start(b)
	sink := &countingSink{}
	var pos block.Position

	s.Step(b, 3, 0, sink, &pos)
	if sink.setDirCalls[core.AxisX] != 1 {
		t.Fatalf("SetDir called %d times this tick, want exactly 1", sink.setDirCalls[core.AxisX])
	}
}

func TestTracerReportsBusyTimeout(t *testing.T) {
	b := &block.Block{
		StepEventCount: 10,
		Steps:          [core.NumAxes]uint32{core.AxisX: 10},
	}
	var s State
	s.Start(b)
	sink := &alwaysBusySink{}
	var pos block.Position

	_, _, busyTimeout, _ := s.Step(b, 0, 0, sink, &pos)
	if !busyTimeout {
		t.Fatal("a permanently busy sink should report a busy timeout")
	}
	// The step must still be issued: the spin is best-effort, not blocking.
	if sink.steps[core.AxisX] != 1 {
		t.Fatalf("X steps = %d, want 1 even after a busy timeout", sink.steps[core.AxisX])
	}
}

func TestCoreXYDirectionIdentity(t *testing.T) {
	cases := []struct {
		name           string
		dirA, dirB     int32
		wantX, wantY   int32
	}{
		{"same sign is +X", 1, 1, 1, 0},
		{"both negative is -X", -1, -1, -1, 0},
		{"A positive B negative is +Y", 1, -1, 0, 1},
		{"A negative B positive is -Y", -1, 1, 0, -1},
	}
	for _, c := range cases {
		var bits block.DirectionBits
		if c.dirA < 0 {
			bits |= 1 << uint(core.AxisX)
		}
		if c.dirB < 0 {
			bits |= 1 << uint(core.AxisY)
		}
		x, y := CoreXYDirection(bits)
		if x != c.wantX || y != c.wantY {
			t.Errorf("%s: CoreXYDirection = (%d, %d), want (%d, %d)", c.name, x, y, c.wantX, c.wantY)
		}
	}
}
