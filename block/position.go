package block

import "motioncore/core"

// Position holds the per-axis signed step counters. The tick context
// advances them; foreground reads them and also writes them through
// set_position and babystep, always under the critical section per spec
// component G ("Position accounting").
type Position struct {
	count [core.NumAxes]int32
}

// Advance applies a single signed step to an axis. Called from tick
// context, and from foreground by Core.Babystep.
func (p *Position) Advance(a core.Axis, sign int32) {
	state := core.Lock()
	defer core.Unlock(state)
	p.count[a] += sign
}

// Get reads one axis under the critical section. Safe from foreground.
func (p *Position) Get(a core.Axis) int32 {
	state := core.Lock()
	defer core.Unlock(state)
	return p.count[a]
}

// GetAll reads every axis atomically with respect to ticks.
func (p *Position) GetAll() [core.NumAxes]int32 {
	state := core.Lock()
	defer core.Unlock(state)
	return p.count
}

// Set overwrites one axis under the critical section; used by set_position.
func (p *Position) Set(a core.Axis, v int32) {
	state := core.Lock()
	defer core.Unlock(state)
	p.count[a] = v
}

// SetAll overwrites every axis under the critical section.
func (p *Position) SetAll(v [core.NumAxes]int32) {
	state := core.Lock()
	defer core.Unlock(state)
	p.count = v
}
