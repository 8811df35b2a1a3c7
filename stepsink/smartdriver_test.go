package stepsink

import (
	"encoding/binary"
	"testing"

	"motioncore/core"
)

// fakeSPIBus records every register write and lets the test script fixed
// responses for reads, keyed by register address.
type fakeSPIBus struct {
	writes    map[uint8]uint32
	writeLog  []uint8
	responses map[uint8]uint32
}

func newFakeSPIBus() *fakeSPIBus {
	return &fakeSPIBus{
		writes:    make(map[uint8]uint32),
		responses: make(map[uint8]uint32),
	}
}

func (f *fakeSPIBus) Transfer(tx []byte) ([]byte, error) {
	reg := tx[0] &^ core.TMC5240_WRITE_BIT
	if tx[0]&core.TMC5240_WRITE_BIT != 0 {
		val := binary.BigEndian.Uint32(tx[1:])
		f.writes[reg] = val
		f.writeLog = append(f.writeLog, reg)
	}
	rx := make([]byte, 5)
	binary.BigEndian.PutUint32(rx[1:], f.responses[reg])
	return rx, nil
}

func TestSmartDriverSinkInitWritesPositioningMode(t *testing.T) {
	bus := newFakeSPIBus()
	if _, err := NewSmartDriverSink(bus, 50000, 1000); err != nil {
		t.Fatal(err)
	}
	if mode := bus.writes[core.TMC5240_RAMPMODE]; mode != core.TMC5240_MODE_POSITION {
		t.Fatalf("RAMPMODE = %d, want positioning mode %d", mode, core.TMC5240_MODE_POSITION)
	}
	if vmax := bus.writes[core.TMC5240_VMAX]; vmax != 50000 {
		t.Fatalf("VMAX = %d, want 50000", vmax)
	}
	if amax := bus.writes[core.TMC5240_AMAX]; amax != 1000 {
		t.Fatalf("AMAX = %d, want 1000", amax)
	}
}

func TestSmartDriverSinkStepAdvancesXTarget(t *testing.T) {
	bus := newFakeSPIBus()
	sink, _ := NewSmartDriverSink(bus, 50000, 1000)
	sink.SetDir(core.AxisX, 1)
	sink.Step(core.AxisX, 100)
	if got := bus.writes[core.TMC5240_XTARGET]; got != 100 {
		t.Fatalf("XTARGET = %d, want 100", got)
	}
	sink.Step(core.AxisX, 50)
	if got := bus.writes[core.TMC5240_XTARGET]; got != 150 {
		t.Fatalf("XTARGET = %d, want 150 after a second step", got)
	}
}

func TestSmartDriverSinkStepHonorsDirection(t *testing.T) {
	bus := newFakeSPIBus()
	sink, _ := NewSmartDriverSink(bus, 50000, 1000)
	sink.SetDir(core.AxisX, -1)
	sink.Step(core.AxisX, 10)
	if got := int32(bus.writes[core.TMC5240_XTARGET]); got != -10 {
		t.Fatalf("XTARGET = %d, want -10", got)
	}
}

func TestSmartDriverSinkBusyReflectsStandstillFlag(t *testing.T) {
	bus := newFakeSPIBus()
	sink, _ := NewSmartDriverSink(bus, 50000, 1000)

	bus.responses[core.TMC5240_DRV_STATUS] = core.TMC5240_DRV_STATUS_STST
	if sink.Busy(core.AxisX) {
		t.Fatal("standstill flag set should report not busy")
	}

	bus.responses[core.TMC5240_DRV_STATUS] = 0
	if !sink.Busy(core.AxisX) {
		t.Fatal("standstill flag clear should report busy")
	}
}

func TestWaitNotBusyBoundsIterations(t *testing.T) {
	bus := newFakeSPIBus()
	sink, _ := NewSmartDriverSink(bus, 50000, 1000)
	bus.responses[core.TMC5240_DRV_STATUS] = 0 // never reports standstill

	timedOut := WaitNotBusy(sink, core.AxisX)
	if !timedOut {
		t.Fatal("expected WaitNotBusy to time out when the driver never reports standstill")
	}
}
