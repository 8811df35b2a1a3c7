//go:build tinygo

package core

import "runtime/interrupt"

// State mirrors the host build's State so callers of core.Lock/core.Unlock
// compile unchanged under either build tag.
type State = interrupt.State

// disableInterrupts disables interrupts and returns the previous state
func disableInterrupts() State {
	return interrupt.Disable()
}

// restoreInterrupts restores the interrupt state
func restoreInterrupts(state State) {
	interrupt.Restore(state)
}
