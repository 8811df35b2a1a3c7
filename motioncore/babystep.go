package motioncore

import (
	"time"

	"motioncore/core"
)

// babystepSettle is the explicit delay between the direction edge and
// the step edge of a babystep pulse. The source this core is modeled on
// relies on a "wait a tiny bit" floating-point computation the compiler
// happens not to optimize away; that is not something to depend on, so
// this waits a real, bounded amount of time instead.
const babystepSettle = 2 * time.Microsecond

// Babystep applies one immediate microstep nudge on axis a, outside the
// planned block stream, for live Z-offset adjustment during a print.
// direction is +1 or -1. It talks to the step sink directly, does not
// touch events_completed or the block queue, and advances the position
// counter for axis a by direction so count_position reflects the nudge.
func (c *Core) Babystep(a core.Axis, direction int32) error {
	if err := c.Sink.SetDir(a, direction); err != nil {
		return err
	}
	time.Sleep(babystepSettle)
	if err := c.Sink.Step(a, 1); err != nil {
		return err
	}
	c.Pos.Advance(a, direction)
	return nil
}
