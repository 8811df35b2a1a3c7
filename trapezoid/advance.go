package trapezoid

import "sync/atomic"

// Advance implements the optional pressure-advance integrator: a
// Q24.8 fixed-point accumulator that tracks extra extruder displacement
// proportional to the current acceleration, queued as E-axis steps for a
// secondary ~10kHz timer to drain (see DrainESteps).
//
// Two update paths exist, mirroring the two step-sink backends:
//   - Direct-drive (GPIO/pin-toggle): the increment is added once per
//     Bresenham event this tick, i.e. step_multiplier times.
//   - Smart-driver (burst move commands): the increment is applied once
//     and then left-shifted by the step multiplier, since the backend
//     consumes a whole burst in one move() call rather than one event at
//     a time. The source statement for this path discarded the shift's
//     result (`advance << step_loops_shift;`), which is corrected here by
//     assigning it back: `advance = advance << step_loops_shift`.
type Advance struct {
	value      int32 // Q24.8
	oldAdvance int32
	eSteps     int64 // pending E-axis steps for the secondary timer, atomic
}

// Reset clears the integrator at the start of a block that doesn't use
// advance, or seeds it from the block's InitialAdvance.
func (a *Advance) Reset(initial int32) {
	a.value = initial
	a.oldAdvance = initial >> 8
}

// StepDirectDrive applies the per-event accumulation used by the GPIO/
// pin-toggle backend: rate is added once per Bresenham event in this tick
// (events = 1<<stepMultiplier). The caller signs rate by phase: positive
// while accelerating, negative while decelerating. During deceleration the
// result is then clamped so it never drops below finalAdvance.
func (a *Advance) StepDirectDrive(rate int32, stepMultiplier uint8, decelerating bool, finalAdvance int32) {
	events := int32(1) << stepMultiplier
	a.value += rate * events
	if decelerating && a.value < finalAdvance {
		a.value = finalAdvance
	}
	a.queueDelta()
}

// StepSmartDriver applies the burst-mode accumulation: the increment for
// one event is added, then the whole accumulator is scaled by the step
// multiplier to reflect that the backend will receive one burst covering
// 1<<stepMultiplier physical events instead of being called once per
// event.
func (a *Advance) StepSmartDriver(rate int32, stepMultiplier uint8, decelerating bool, finalAdvance int32) {
	a.value += rate
	a.value = a.value << stepMultiplier
	if decelerating && a.value < finalAdvance {
		a.value = finalAdvance
	}
	a.queueDelta()
}

// queueDelta pushes the change in the integrator's high 24 bits (i.e. the
// whole-step part, value>>8) onto the pending E-step counter.
func (a *Advance) queueDelta() {
	current := a.value >> 8
	delta := current - a.oldAdvance
	a.oldAdvance = current
	if delta != 0 {
		atomic.AddInt64(&a.eSteps, int64(delta))
	}
}

// DrainESteps is called by the secondary advance timer (~10kHz) to claim
// any pending extruder steps accumulated since the last drain.
func (a *Advance) DrainESteps() int64 {
	return atomic.SwapInt64(&a.eSteps, 0)
}
