package motioncore

import (
	"testing"

	"motioncore/block"
	"motioncore/core"
	"motioncore/endstop"
	"motioncore/interval"
)

func TestBabystepAdvancesPositionWithoutTouchingQueue(t *testing.T) {
	queue := &block.Queue{}
	pos := &block.Position{}
	sink := &fakeSink{}
	tbl := interval.New(interval.TickBase, 40000)
	monitor := endstop.NewMonitor(nil)
	c := NewCore(queue, pos, sink, tbl, monitor, *DefaultCartesianConfig())

	if err := c.Babystep(core.AxisZ, 1); err != nil {
		t.Fatal(err)
	}
	if got := c.GetPosition()[core.AxisZ]; got != 1 {
		t.Fatalf("Z position = %d, want 1", got)
	}
	if sink.steps[core.AxisZ] != 1 {
		t.Fatalf("Z step pulses = %d, want 1", sink.steps[core.AxisZ])
	}
	if queue.BlocksQueued() {
		t.Fatal("babystep must not touch the block queue")
	}

	if err := c.Babystep(core.AxisZ, -1); err != nil {
		t.Fatal(err)
	}
	if got := c.GetPosition()[core.AxisZ]; got != 0 {
		t.Fatalf("Z position = %d, want 0 after an equal and opposite babystep", got)
	}
}
