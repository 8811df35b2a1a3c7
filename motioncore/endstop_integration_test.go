package motioncore

import (
	"testing"

	"motioncore/block"
	"motioncore/core"
	"motioncore/endstop"
	"motioncore/interval"
)

type triggerableSwitch struct{ triggered bool }

func (t *triggerableSwitch) Read() bool { return t.triggered }

// An endstop hit mid-block must abort the block immediately: no further
// step pulses that tick, and the block is discarded without decelerating.
func TestEndstopHitAbortsBlockImmediately(t *testing.T) {
	queue := &block.Queue{}
	pos := &block.Position{}
	sink := &fakeSink{}
	tbl := interval.New(interval.TickBase, 40000)

	sw := &triggerableSwitch{}
	monitor := endstop.NewMonitor([]endstop.Config{
		{Switch: sw, Axis: core.AxisX, HomingDir: -1, StopOnMin: true},
	})

	cfg := *DefaultCartesianConfig()
	c := NewCore(queue, pos, sink, tbl, monitor, cfg)
	c.Wake()

	n := uint32(10000)
	queue.Push(block.Block{
		StepEventCount: n,
		Steps:          [core.NumAxes]uint32{core.AxisX: n},
		DirectionBits:  block.DirectionBits(1 << uint(core.AxisX)), // negative travel, toward the min endstop
		NominalRate:    1000,
	})

	now := uint32(0)
	now += c.Tick(now) // claim + step once
	now += c.Tick(now) // step again, still below StepEventCount

	stepsBeforeHit := sink.steps[core.AxisX]
	if stepsBeforeHit == 0 {
		t.Fatal("expected some steps before the endstop triggers")
	}

	sw.triggered = true
	now += c.Tick(now) // first debounce read: not yet latched, still steps normally
	stepsAfterFirstDebounceRead := sink.steps[core.AxisX]

	c.Tick(now) // second debounce read latches the hit and aborts

	if queue.BlocksQueued() {
		t.Fatal("a latched endstop hit should discard the in-flight block")
	}
	if sink.steps[core.AxisX] != stepsAfterFirstDebounceRead {
		t.Fatalf("no further steps should be issued once the hit latches and aborts the block, got %d extra", sink.steps[core.AxisX]-stepsAfterFirstDebounceRead)
	}
	if !monitor.Hit(core.AxisX) {
		t.Fatal("the monitor should report a latched X hit")
	}
	report, ok := endstop.CheckHitEndstops(monitor)
	if !ok || !report.XHit {
		t.Fatal("CheckHitEndstops should report the X hit")
	}
}
