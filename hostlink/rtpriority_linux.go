//go:build linux

package hostlink

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

type schedParam struct {
	Priority int32
}

// SetRealtimePriority switches the calling OS thread to SCHED_FIFO at the
// given priority (1-99). The host tick loop (RunTickLoop) is not itself
// a hardware ISR, just a goroutine sleeping between invocations; calling
// this from the goroutine that runs it (after runtime.LockOSThread, so
// the scheduling class sticks to the right OS thread) tightens its wake
// jitter closer to what the real timer interrupt would give. Best-effort:
// requires CAP_SYS_NICE or root, returns an error rather than panicking
// otherwise.
func SetRealtimePriority(priority int) error {
	param := schedParam{Priority: int32(priority)}
	_, _, errno := unix.Syscall(unix.SYS_SCHED_SETSCHEDULER, 0, uintptr(unix.SCHED_FIFO), uintptr(unsafe.Pointer(&param)))
	if errno != 0 {
		return errno
	}
	return nil
}
