package motioncore

import (
	"time"

	"motioncore/core"
)

// advancePeriodTicks is the ~10kHz cadence pressure advance drains E-steps
// at (see spec section 5), expressed in the 2MHz timer base RunTickLoop
// schedules against.
var advancePeriodTicks = core.TimerFromUS(100)

// RunTickLoop drives Core.Tick and, when advance is enabled, Core.AdvanceTick
// in real time until stop is closed. Both are registered as core.Timer
// entries on the shared scheduler and dispatched from a single goroutine,
// the same one-ISR-many-timers arrangement a real target's hardware compare
// interrupt would run: TimerDispatch decides what's due, RunTickLoop only
// owns sleeping until the next wake and advancing the clock. TinyGo's
// runtime backs time.Sleep with the target's real hardware timer, so the
// same loop satisfies the "real hardware alarm" half of the contract
// without a separate build-tagged implementation.
func RunTickLoop(c *Core, stop <-chan struct{}) {
	core.TimerInit()

	moveTimer := &core.Timer{WakeTime: core.GetTime()}
	moveTimer.Handler = func(t *core.Timer) uint8 {
		next := c.Tick(t.WakeTime)
		t.WakeTime += next
		return core.SF_RESCHEDULE
	}
	core.ScheduleTimer(moveTimer)

	if c.Cfg.AdvanceEnabled {
		advanceTimer := &core.Timer{WakeTime: core.GetTime()}
		advanceTimer.Handler = func(t *core.Timer) uint8 {
			c.AdvanceTick()
			t.WakeTime += advancePeriodTicks
			return core.SF_RESCHEDULE
		}
		core.ScheduleTimer(advanceTimer)
	}

	for {
		select {
		case <-stop:
			return
		default:
		}
		wake, ok := core.NextWakeTime()
		if !ok {
			return
		}
		now := core.GetTime()
		if wake-now < 1<<31 { // wake is still ahead of now (wraparound-safe)
			time.Sleep(ticksToDuration(wake - now))
		}
		core.SetTime(wake)
		core.ProcessTimers()
	}
}

func ticksToDuration(ticks uint32) time.Duration {
	us := core.TimerToUS(ticks)
	return time.Duration(us) * time.Microsecond
}
