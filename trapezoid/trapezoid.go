// Package trapezoid implements the per-tick trapezoidal speed-profile
// update (component C): acceleration phase, cruise phase, and deceleration
// phase, driven entirely by the block's precomputed rate parameters and the
// elapsed-tick integrators this package owns.
package trapezoid

import (
	"motioncore/block"
	"motioncore/interval"
)

// State is the trapezoid generator's private, tick-context-only state for
// the block currently in flight. It is reset whenever a new block is
// claimed (see Start).
type State struct {
	AccStepRate  uint32 // current rate during acceleration phase (Hz)
	AccelTime    uint32 // elapsed ticks integrator, accel phase
	DecelTime    uint32 // elapsed ticks integrator, decel phase

	NominalInterval       uint16
	StepMultiplier        uint8 // shift s: 1<<s events per tick
	NominalStepMultiplier uint8

	Interval uint32 // current tick's timer interval, written by Step
}

// Start initializes trapezoid state for a freshly claimed block, per the
// "initial-tick setup" rule in the component design.
func (s *State) Start(b *block.Block, tbl *interval.Table) {
	s.AccStepRate = b.InitialRate
	lookupInit, shiftInit := interval.RateAndMultiplier(b.InitialRate)
	s.AccelTime = uint32(tbl.Lookup(lookupInit))
	s.DecelTime = 0

	lookupNom, shiftNom := interval.RateAndMultiplier(b.NominalRate)
	s.NominalInterval = tbl.Lookup(lookupNom)
	s.NominalStepMultiplier = shiftNom

	s.StepMultiplier = shiftInit
	s.Interval = s.AccelTime
}

// Step evaluates the current phase against eventsCompleted and updates
// Interval/StepMultiplier for the tick that is about to run. Call this
// after the Bresenham tracer has stepped the events for the current tick,
// per the ordering guarantee in the concurrency model.
func (s *State) Step(b *block.Block, eventsCompleted uint32, tbl *interval.Table) {
	switch {
	case eventsCompleted <= b.AccelerateUntil:
		delta := uint32((uint64(b.AccelerationRate) * uint64(s.AccelTime)) >> 24)
		rate := b.InitialRate + delta
		if rate > b.NominalRate {
			rate = b.NominalRate
		}
		s.AccStepRate = rate
		lookupRate, shift := interval.RateAndMultiplier(rate)
		iv := uint32(tbl.Lookup(lookupRate))
		s.Interval = iv
		s.StepMultiplier = shift
		s.AccelTime += iv

	case eventsCompleted > b.DecelerateAfter:
		delta := uint32((uint64(b.AccelerationRate) * uint64(s.DecelTime)) >> 24)
		var rate uint32
		if delta > s.AccStepRate {
			rate = b.FinalRate
		} else {
			rate = s.AccStepRate - delta
			if rate < b.FinalRate {
				rate = b.FinalRate
			}
		}
		s.AccStepRate = rate
		lookupRate, shift := interval.RateAndMultiplier(rate)
		iv := uint32(tbl.Lookup(lookupRate))
		s.Interval = iv
		s.StepMultiplier = shift
		s.DecelTime += iv

	default:
		s.Interval = uint32(s.NominalInterval)
		s.StepMultiplier = s.NominalStepMultiplier
	}
}
