package motioncore

import (
	"runtime"
	"time"

	"motioncore/core"
)

// Wake enables the tick handler. No block is stepped until this is called.
func (c *Core) Wake() {
	c.enabled.Store(true)
}

// Synchronize blocks the calling (foreground) goroutine until the
// planner queue drains, yielding between polls so other foreground work
// (temperature, UI, inactivity timers in a full firmware) keeps running.
func (c *Core) Synchronize() {
	for c.Queue.BlocksQueued() {
		runtime.Gosched()
		time.Sleep(100 * time.Microsecond)
	}
}

// QuickStop discards every queued block and the in-flight block without
// decelerating. It empties the queue under the queue's own lock and
// otherwise only sets a flag for Tick to consume: Tick is the sole writer
// of blockActive/eventsCompleted, so this never writes them or holds a
// critical section around them, avoiding a nested lock on the host
// build's non-reentrant mutex.
func (c *Core) QuickStop() {
	c.resetRequested.Store(true)
	c.Queue.QuickStop()
}

// SetPosition overwrites all four axis position counters, critical-section
// guarded against a concurrently running tick.
func (c *Core) SetPosition(x, y, z, e int32) {
	c.Pos.SetAll([core.NumAxes]int32{x, y, z, e})
}

// SetEPosition overwrites only the E axis counter.
func (c *Core) SetEPosition(e int32) {
	c.Pos.Set(core.AxisE, e)
}

// GetPosition reads all four axis position counters.
func (c *Core) GetPosition() [core.NumAxes]int32 {
	return c.Pos.GetAll()
}

// GetPositionMM converts the raw step counters to machine units using
// the configured steps-per-mm for each axis.
func (c *Core) GetPositionMM() [core.NumAxes]float64 {
	raw := c.Pos.GetAll()
	var mm [core.NumAxes]float64
	for a := core.Axis(0); a < core.NumAxes; a++ {
		spm := c.Cfg.Axes[a].StepsPerMM
		if spm == 0 {
			continue
		}
		mm[a] = float64(raw[a]) / spm
	}
	return mm
}

// EnableEndstops toggles the global endstop-sampling gate.
func (c *Core) EnableEndstops(enabled bool) {
	c.Monitor.SetEnabled(enabled)
}

// FinishAndDisable synchronizes (drains the queue) then disables the
// tick handler, leaving drivers free to be powered down by the caller.
func (c *Core) FinishAndDisable() {
	c.Synchronize()
	c.enabled.Store(false)
}
