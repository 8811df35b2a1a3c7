// Package endstop implements the endstop monitor (component F): per-axis
// debounced limit switch sampling, latched hit flags with a position
// snapshot, and the any-hit check the motion core's tick consults before
// stepping.
package endstop

import (
	"motioncore/block"
	"motioncore/core"
)

// Switch is the abstract digital input a configured endstop reads. Real
// targets back this with core.GPIODriver.ReadPin; host tests back it
// with a fake that flips on command.
type Switch interface {
	Read() bool
}

// GPIOSwitch adapts a core.GPIODriver pin into a Switch.
type GPIOSwitch struct {
	Driver core.GPIODriver
	Pin    core.GPIOPin
	// ActiveLow inverts the raw pin reading: many endstops wire NC to
	// ground, so a triggered switch reads low.
	ActiveLow bool
}

func (g GPIOSwitch) Read() bool {
	v := g.Driver.ReadPin(g.Pin)
	if g.ActiveLow {
		return !v
	}
	return v
}

// Config describes one axis's endstop wiring: which switch to sample,
// which physical ends it guards (min, max, or both for a single switch
// shared between two kinematic directions as on some deltas), and which
// travel direction it should be allowed to stop.
type Config struct {
	Switch       Switch
	Axis         core.Axis
	HomingDir    int32 // +1, -1, or 0 if this axis has no endstop
	StopOnMin    bool
	StopOnMax    bool
}

// axisState is the debounce + latch state for one configured endstop.
type axisState struct {
	cfg Config

	consecutive uint8
	debounced   bool

	hit      bool
	hitAt    [core.NumAxes]int32
}

const debounceReads = 2

// Monitor samples every configured endstop once per tick and reports
// which axes have latched a hit, alongside the machine position at the
// instant of the hit.
type Monitor struct {
	axes    [core.NumAxes]axisState
	enabled bool
}

// NewMonitor builds a monitor from a set of per-axis configs. Axes left
// zero-valued (HomingDir == 0) are treated as unmonitored.
func NewMonitor(configs []Config) *Monitor {
	m := &Monitor{enabled: true}
	for _, c := range configs {
		m.axes[c.Axis] = axisState{cfg: c}
	}
	return m
}

// SetEnabled gates whether Sample does anything: disabled during the
// non-homing portion of a print so a gantry flexing near a switch
// doesn't abort an unrelated move (enable_endstops control operation).
func (m *Monitor) SetEnabled(enabled bool) {
	m.enabled = enabled
}

// Sample debounces every configured switch and latches a hit the first
// time a switch reads triggered for two consecutive ticks while travel
// is moving toward the direction that switch guards. It must be called
// from tick context, once per tick; Core.Tick calls it before the tracer
// steps, so a latched snapshot is the position as of the end of the
// previous tick. It reports whether any axis latched a fresh hit on this
// call, for the caller's diagnostics.
func (m *Monitor) Sample(travelDir [core.NumAxes]int32, pos *block.Position) (justHit bool) {
	if !m.enabled {
		return false
	}
	for a := core.Axis(0); a < core.NumAxes; a++ {
		s := &m.axes[a]
		if s.cfg.Switch == nil || s.cfg.HomingDir == 0 {
			continue
		}
		triggered := s.cfg.Switch.Read()
		if triggered {
			if s.consecutive < debounceReads {
				s.consecutive++
			}
		} else {
			s.consecutive = 0
		}
		s.debounced = s.consecutive >= debounceReads

		if !s.debounced || s.hit {
			continue
		}
		dir := travelDir[a]
		if dir == 0 {
			continue
		}
		atMin := dir < 0 && s.cfg.StopOnMin
		atMax := dir > 0 && s.cfg.StopOnMax
		if !atMin && !atMax {
			continue
		}
		s.hit = true
		s.hitAt = pos.GetAll()
		justHit = true
	}
	return justHit
}

// Hit reports whether the given axis has a latched endstop hit.
func (m *Monitor) Hit(a core.Axis) bool {
	return m.axes[a].hit
}

// AnyHit reports whether any monitored axis has a latched hit, for
// Core.Tick's check that force-completes the current block.
func (m *Monitor) AnyHit() bool {
	for a := core.Axis(0); a < core.NumAxes; a++ {
		if m.axes[a].hit {
			return true
		}
	}
	return false
}

// PositionAtHit returns the full position snapshot captured the instant
// axis a latched its hit. Only meaningful when Hit(a) is true.
func (m *Monitor) PositionAtHit(a core.Axis) [core.NumAxes]int32 {
	return m.axes[a].hitAt
}

// ClearHits unlatches every axis, for the next homing move.
func (m *Monitor) ClearHits() {
	for a := core.Axis(0); a < core.NumAxes; a++ {
		m.axes[a].hit = false
		m.axes[a].consecutive = 0
		m.axes[a].debounced = false
	}
}
