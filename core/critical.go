package core

// Lock acquires the driver-interrupt mask (a real mutex on the host build,
// runtime/interrupt.Disable on tinygo). Every acquisition must be paired
// with Unlock on all exit paths — callers should defer it immediately.
func Lock() State {
	return disableInterrupts()
}

// Unlock releases the mask acquired by Lock.
func Unlock(state State) {
	restoreInterrupts(state)
}
