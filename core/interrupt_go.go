//go:build !tinygo

package core

import "sync"

// State is a placeholder for interrupt state on regular Go; kept so callers
// written against the tinygo build tag off also compile unchanged.
type State uintptr

// tickMutex emulates the hardware interrupt mask on the host: the tick
// goroutine and any foreground goroutine both acquire it, so a disabled
// "interrupt" really does block the tick side out, matching the mask
// semantics the tinygo build gets from runtime/interrupt.
var tickMutex sync.Mutex

// disableInterrupts acquires the critical section lock. Exported state is
// unused on the host build; the lock itself is the guard.
func disableInterrupts() State {
	tickMutex.Lock()
	return 0
}

// restoreInterrupts releases the critical section lock.
func restoreInterrupts(state State) {
	tickMutex.Unlock()
}
