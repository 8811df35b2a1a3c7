package core

import "testing"

func TestTimerUSConversionRoundTrips(t *testing.T) {
	for _, us := range []uint32{0, 1, 50, 1000, 50000} {
		ticks := TimerFromUS(us)
		back := TimerToUS(ticks)
		// Integer division means exact round-trips aren't guaranteed for
		// every value, but the error must stay within one microsecond.
		var diff int64 = int64(back) - int64(us)
		if diff < 0 {
			diff = -diff
		}
		if diff > 1 {
			t.Errorf("TimerFromUS(%d)->TimerToUS round trip = %d, off by more than 1us", us, back)
		}
	}
}

func TestSetTimeGetTime(t *testing.T) {
	SetTime(12345)
	if got := GetTime(); got != 12345 {
		t.Fatalf("GetTime = %d, want 12345", got)
	}
}
