package core

import "sync/atomic"

// totalStepCount counts every pulse emitted by the tracer across all axes,
// for diagnostics only (see DumpTimingRing).
var totalStepCount uint64

// AddStepCount accumulates n pulses into the lifetime step counter.
// Safe to call from tick context: a single atomic add, no allocation.
func AddStepCount(n uint64) {
	atomic.AddUint64(&totalStepCount, n)
}

// GetTotalStepCount returns the lifetime pulse count across all axes.
func GetTotalStepCount() uint64 {
	return atomic.LoadUint64(&totalStepCount)
}
