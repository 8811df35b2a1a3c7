package tracer

import (
	"motioncore/block"
	"motioncore/core"
)

// CoreXYDirection maps the block's A/B motor direction bits (carried on
// the AxisX/AxisY slots when CoreXY is configured) to the effective
// Cartesian travel direction, per the kinematic identity X = A+B, Y = A-B
// applied at the direction-bit level: a block only ever drives a pure +X,
// -X, +Y, or -Y motion through this core (mixed diagonal travel still
// carries a single A/B direction pair, since direction is block-wide), so
// effX and effY are never both nonzero.
//
// This is used only by the endstop monitor to decide whether the current
// block's travel direction matches a configured homing direction; it does
// not affect how the tracer steps the A/B motors themselves.
func CoreXYDirection(dirBits block.DirectionBits) (effX, effY int32) {
	dirA := dirBits.Sign(core.AxisX)
	dirB := dirBits.Sign(core.AxisY)
	if dirA == dirB {
		return dirA, 0
	}
	return 0, dirA
}
