// Package tracer implements the Bresenham multi-axis step tracer
// (component D): it distributes one "event" across all axes every tick,
// driving the step sink and position counters, and reconciling the step
// multiplier against the remaining event budget of the block.
package tracer

import (
	"motioncore/block"
	"motioncore/core"
	"motioncore/stepsink"
)

// State is the tracer's private, tick-context-only Bresenham accumulator
// state for the block currently in flight.
type State struct {
	Counter [core.NumAxes]int32
}

// Start initializes the per-axis accumulator for a freshly claimed block,
// per the "-(step_event_count/2) floor" rule.
func (s *State) Start(b *block.Block) {
	half := int32(b.StepEventCount / 2)
	for a := core.Axis(0); a < core.NumAxes; a++ {
		s.Counter[a] = -half
	}
}

// Step runs up to `multiplier` Bresenham events for this tick (reduced to
// fit the remaining event budget of the block), emitting step pulses
// through sink and advancing pos. requestedMultiplier should be seeded from
// the trapezoid generator's current StepMultiplier every tick; the value
// this func returns is only the multiplier actually used this tick (after
// budget-fit reduction), not a value to carry forward into the next tick's
// request. It also reports whether a smart-driver backend's busy poll
// (stepsink.WaitNotBusy) ever timed out while issuing this tick's pulses,
// and whether the block just completed.
func (s *State) Step(b *block.Block, requestedMultiplier uint8, eventsCompleted uint32, sink stepsink.Sink, pos *block.Position) (usedMultiplier uint8, newEventsCompleted uint32, busyTimeout bool, complete bool) {
	multiplier := uint32(1) << requestedMultiplier
	for eventsCompleted+multiplier > b.StepEventCount && requestedMultiplier > 0 {
		requestedMultiplier--
		multiplier = uint32(1) << requestedMultiplier
	}

	// Direction doesn't change mid-tick: it's fixed by the block's
	// DirectionBits, so set it once per axis here instead of on every
	// Bresenham event below.
	for a := core.Axis(0); a < core.NumAxes; a++ {
		if b.Steps[a] == 0 {
			continue
		}
		_ = sink.SetDir(a, b.DirectionBits.Sign(a))
	}

	for i := uint32(0); i < multiplier; i++ {
		for a := core.Axis(0); a < core.NumAxes; a++ {
			steps := b.Steps[a]
			if steps == 0 {
				continue
			}
			s.Counter[a] += int32(steps)
			if s.Counter[a] > 0 {
				if stepsink.WaitNotBusy(sink, a) {
					busyTimeout = true
				}
				sign := b.DirectionBits.Sign(a)
				_ = sink.Step(a, 1)
				s.Counter[a] -= int32(b.StepEventCount)
				pos.Advance(a, sign)
				core.AddStepCount(1)
			}
		}
		eventsCompleted++
		if eventsCompleted >= b.StepEventCount {
			break
		}
	}

	return requestedMultiplier, eventsCompleted, busyTimeout, eventsCompleted >= b.StepEventCount
}
