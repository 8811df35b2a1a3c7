package stepsink

import (
	"encoding/binary"
	"fmt"

	"motioncore/core"
)

// SPIBus is the minimal transport a SmartDriverSink needs: a single
// half-duplex register write/read over chip-select-framed SPI. Real
// targets back this with core's hardware SPI HAL; host tests back it with
// a fake that records register writes.
type SPIBus interface {
	// Transfer sends tx and returns the bytes clocked back in, one call per
	// chip-select assertion.
	Transfer(tx []byte) (rx []byte, err error)
}

// SmartDriverSink drives a single TMC5240 axis in positioning mode
// (RAMPMODE=0): each Step call advances XTARGET by n (signed by the last
// SetDir call) and lets the driver's own ramp generator execute the move.
// This is the "batch-scaled accumulation" backend pressure advance assumes
// when driving a smart-driver axis (see trapezoid.Advance.StepSmartDriver).
type SmartDriverSink struct {
	bus    SPIBus
	target int32 // shadow of the driver's XTARGET, since it's write-mostly
	dir    int32
}

// NewSmartDriverSink configures AMAX/VMAX/RAMPMODE to sane positioning
// defaults and zeroes XACTUAL/XTARGET.
func NewSmartDriverSink(bus SPIBus, vmax, amax uint32) (*SmartDriverSink, error) {
	d := &SmartDriverSink{bus: bus}
	writes := []struct {
		reg uint8
		val uint32
	}{
		{core.TMC5240_RAMPMODE, core.TMC5240_MODE_POSITION},
		{core.TMC5240_VSTART, 0},
		{core.TMC5240_VMAX, vmax},
		{core.TMC5240_AMAX, amax},
		{core.TMC5240_DMAX, amax},
		{core.TMC5240_VSTOP, 10},
		{core.TMC5240_XACTUAL, 0},
		{core.TMC5240_XTARGET, 0},
	}
	for _, w := range writes {
		if err := d.writeRegister(w.reg, w.val); err != nil {
			return nil, fmt.Errorf("stepsink: smart driver init register 0x%02x: %w", w.reg, err)
		}
	}
	return d, nil
}

func (d *SmartDriverSink) writeRegister(reg uint8, value uint32) error {
	tx := make([]byte, 5)
	tx[0] = reg | core.TMC5240_WRITE_BIT
	binary.BigEndian.PutUint32(tx[1:], value)
	_, err := d.bus.Transfer(tx)
	return err
}

func (d *SmartDriverSink) readRegister(reg uint8) (uint32, error) {
	tx := make([]byte, 5)
	tx[0] = reg | core.TMC5240_READ_BIT
	if _, err := d.bus.Transfer(tx); err != nil {
		return 0, err
	}
	// TMC5240 returns the previous request's data on this transfer; a real
	// driver issues the read twice and keeps the second result, but for a
	// step sink the caller only ever polls DRV_STATUS repeatedly, so the
	// one-transfer-lag self-corrects after the first poll.
	rx, err := d.bus.Transfer(tx)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(rx[1:]), nil
}

func (d *SmartDriverSink) SetDir(axis core.Axis, sign int32) error {
	d.dir = sign
	return nil
}

func (d *SmartDriverSink) Step(axis core.Axis, n uint8) error {
	d.target += d.dir * int32(n)
	return d.writeRegister(core.TMC5240_XTARGET, uint32(d.target))
}

// Busy reports the inverse of the driver's standstill flag: the tracer
// treats a positioning move still in flight as busy, per the bounded
// BUSY-spin contract in WaitNotBusy.
func (d *SmartDriverSink) Busy(axis core.Axis) bool {
	status, err := d.readRegister(core.TMC5240_DRV_STATUS)
	if err != nil {
		return false
	}
	return status&core.TMC5240_DRV_STATUS_STST == 0
}
