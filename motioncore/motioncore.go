package motioncore

import (
	"sync/atomic"

	"motioncore/block"
	"motioncore/core"
	"motioncore/endstop"
	"motioncore/interval"
	"motioncore/stepsink"
	"motioncore/tracer"
	"motioncore/trapezoid"
)

// Core is the single context a hardware timer (or its host emulation)
// drives one tick at a time. It owns every piece of state the tick
// handler touches: the trapezoid generator, the Bresenham tracer, the
// pressure-advance integrator, and references to the shared block queue,
// position counters, step sink, and endstop monitor.
//
// Only Tick and AdvanceTick run in tick context; every other exported
// method is a foreground control-surface call and takes the critical
// section it needs through block.Queue/block.Position's own locking or
// the enabled flag below.
type Core struct {
	Queue   *block.Queue
	Pos     *block.Position
	Sink    stepsink.Sink
	Table   *interval.Table
	Monitor *endstop.Monitor
	Cfg     MachineConfig

	// AdvanceSmartDriver selects which trapezoid.Advance update path
	// feeds the E axis: true uses the burst-scaled StepSmartDriver update,
	// false the per-event StepDirectDrive update. Either way the resulting
	// E steps are issued by AdvanceTick as their own Sink.Step calls on the
	// E axis; they are not merged into any other axis's move burst.
	AdvanceSmartDriver bool

	advance trapezoid.Advance
	trap    trapezoid.State
	trace   tracer.State

	eventsCompleted uint32
	blockActive     bool

	zEnabled       bool
	zEnablePending bool

	enabled        atomic.Bool
	resetRequested atomic.Bool
}

// NewCore builds a Core ready for Tick to be driven against it. The
// caller constructs queue/pos/sink/monitor and a table sized for cfg's
// MaxStepFrequency/FCPU ahead of time, since those are shared with other
// parts of a running machine (e.g. a host diagnostic transport reading
// Pos concurrently).
func NewCore(queue *block.Queue, pos *block.Position, sink stepsink.Sink, table *interval.Table, monitor *endstop.Monitor, cfg MachineConfig) *Core {
	return &Core{Queue: queue, Pos: pos, Sink: sink, Table: table, Monitor: monitor, Cfg: cfg}
}

// travelDirection returns the effective per-axis travel sign for the
// current block, applying the CoreXY A/B mixing identity to X/Y when
// configured; Z and E always read their direction bit directly.
func (c *Core) travelDirection(b *block.Block) [core.NumAxes]int32 {
	var dir [core.NumAxes]int32
	if c.Cfg.CoreXY {
		dir[core.AxisX], dir[core.AxisY] = tracer.CoreXYDirection(b.DirectionBits)
	} else {
		dir[core.AxisX] = b.DirectionBits.Sign(core.AxisX)
		dir[core.AxisY] = b.DirectionBits.Sign(core.AxisY)
	}
	dir[core.AxisZ] = b.DirectionBits.Sign(core.AxisZ)
	dir[core.AxisE] = b.DirectionBits.Sign(core.AxisE)
	return dir
}

// Tick runs one invocation of the motion timer and returns the tick
// count to wait before the next invocation. It must be called from a
// single, non-reentrant context (a real hardware ISR, or the host tick
// driver emulating one) — see RunTickLoop.
func (c *Core) Tick(now uint32) uint32 {
	if !c.enabled.Load() {
		return interval.IdleInterval
	}

	if c.resetRequested.Swap(false) {
		c.blockActive = false
		c.eventsCompleted = 0
		c.zEnablePending = false
	}

	if !c.blockActive {
		b := c.Queue.Current()
		if b == nil {
			return interval.IdleInterval
		}
		c.trace.Start(b)
		c.trap.Start(b, c.Table)
		c.advance.Reset(int32(b.InitialAdvance))
		c.eventsCompleted = 0
		c.blockActive = true
		core.RecordTiming(core.EvtLoadMove, 0, now, b.StepEventCount, b.NominalRate)

		if c.Cfg.ZLateEnable && b.Steps[core.AxisZ] != 0 && !c.zEnabled {
			c.zEnablePending = true
			return core.TimerFromUS(1000)
		}
	}

	if c.zEnablePending {
		c.zEnablePending = false
		c.zEnabled = true
	}

	b := c.Queue.Current()
	if b == nil {
		c.blockActive = false
		return interval.IdleInterval
	}

	dir := c.travelDirection(b)
	if c.Monitor.Sample(dir, c.Pos) {
		core.RecordTiming(core.EvtEndstopHit, 0, now, c.eventsCompleted, 0)
	}

	if c.Monitor.AnyHit() {
		c.eventsCompleted = b.StepEventCount
	} else {
		// Re-seed from the trapezoid generator's current phase every tick:
		// the multiplier it computed at the end of the previous tick is the
		// request for this one. The tracer may still ratchet it down to fit
		// the block's remaining event budget, but that reduction must not
		// persist past this tick.
		requested := c.trap.StepMultiplier
		usedMultiplier, newEvents, busyTimeout, _ := c.trace.Step(b, requested, c.eventsCompleted, c.Sink, c.Pos)
		c.eventsCompleted = newEvents

		if busyTimeout {
			core.RecordTiming(core.EvtBusyTimeout, 0, now, c.eventsCompleted, uint32(usedMultiplier))
		}
		if c.trap.AccStepRate > c.Table.MaxStepFrequency() {
			core.RecordTiming(core.EvtOverRateClamp, 0, now, c.trap.AccStepRate, c.Table.MaxStepFrequency())
		}

		if c.Cfg.AdvanceEnabled {
			accelerating := c.eventsCompleted <= b.AccelerateUntil
			decelerating := c.eventsCompleted > b.DecelerateAfter
			if accelerating || decelerating {
				rate := b.AdvanceRate
				if decelerating {
					rate = -rate
				}
				if c.AdvanceSmartDriver {
					c.advance.StepSmartDriver(rate, usedMultiplier, decelerating, int32(b.FinalAdvance))
				} else {
					c.advance.StepDirectDrive(rate, usedMultiplier, decelerating, int32(b.FinalAdvance))
				}
			}
		}
	}

	if c.eventsCompleted >= b.StepEventCount {
		c.Queue.Discard()
		c.blockActive = false
		return interval.IdleInterval
	}

	c.trap.Step(b, c.eventsCompleted, c.Table)
	return c.trap.Interval
}

// AdvanceTick drains any pressure-advance E-steps accumulated since the
// last call and issues them on the E axis. Intended to be driven by a
// second, independent ~10kHz timer entry on the same scheduler RunTickLoop
// registers the motion tick on, lower priority than the motion tick.
func (c *Core) AdvanceTick() {
	if !c.Cfg.AdvanceEnabled {
		return
	}
	delta := c.advance.DrainESteps()
	if delta == 0 {
		return
	}
	sign := int32(1)
	if delta < 0 {
		sign = -1
		delta = -delta
	}
	_ = c.Sink.SetDir(core.AxisE, sign)
	for delta > 0 {
		n := delta
		if n > 255 {
			n = 255
		}
		_ = c.Sink.Step(core.AxisE, uint8(n))
		for i := int64(0); i < n; i++ {
			c.Pos.Advance(core.AxisE, sign)
		}
		core.AddStepCount(uint64(n))
		delta -= n
	}
}
