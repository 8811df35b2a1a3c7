// Package block defines the Block contract the motion core consumes from
// the planner, and the position counters the core advances as it steps.
package block

import "motioncore/core"

// DirectionBits is a per-axis sign bitmask: bit set means negative travel.
type DirectionBits uint8

// Sign returns +1 or -1 for the given axis according to the bitmask.
func (d DirectionBits) Sign(a core.Axis) int32 {
	if d&(1<<uint(a)) != 0 {
		return -1
	}
	return 1
}

// Block is a single planned straight-line motion segment with a
// trapezoidal speed profile. It is produced by the planner and is
// read-only from the core's perspective except for Busy, which the core
// sets once it claims the block.
type Block struct {
	StepEventCount uint32 // total Bresenham events in this block
	Steps          [core.NumAxes]uint32
	DirectionBits  DirectionBits

	InitialRate uint32 // Hz
	NominalRate uint32 // Hz
	FinalRate   uint32 // Hz

	// AccelerationRate is Q8.24 fixed point: rate_delta = (AccelerationRate *
	// elapsedTicks) >> 24.
	AccelerationRate uint32

	AccelerateUntil uint32 // event count
	DecelerateAfter uint32 // event count

	// Pressure-advance parameters, all optional (zero disables advance for
	// this block).
	InitialAdvance uint32
	FinalAdvance   uint32
	AdvanceRate    int32 // Q24.8

	ActiveExtruder uint8

	Busy bool
}
