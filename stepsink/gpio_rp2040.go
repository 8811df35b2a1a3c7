//go:build tinygo && (rp2040 || rp2350)

package stepsink

import (
	"device/arm"
	"device/rp"
	"machine"

	"motioncore/core"
)

// rp2040AxisPins mirrors AxisPins but with machine.Pin already resolved,
// since the SIO fast path below bypasses core.GPIODriver entirely: at
// 2MHz tick rate with up to 4x step multiplier the per-call interface
// dispatch through GPIODriver.SetPin would eat too much of the tick
// budget, so this backend drives SIO.GPIO_OUT_SET/CLR registers directly,
// the same approach targets/pio/stepper_gpio.go used for the old
// per-axis backend abstraction.
type rp2040AxisPins struct {
	StepPin    machine.Pin
	DirPin     machine.Pin
	InvertStep bool
	InvertDir  bool
	Enabled    bool
}

// RP2040GPIOSink is the SIO-register direct-toggle step-sink backend for
// rp2040/rp2350 targets: ~200kHz max step rate, ~100ns pulse width.
type RP2040GPIOSink struct {
	pins    [core.NumAxes]rp2040AxisPins
	lastDir [core.NumAxes]int32
}

func NewRP2040GPIOSink(pins [core.NumAxes]rp2040AxisPins) *RP2040GPIOSink {
	g := &RP2040GPIOSink{pins: pins}
	for _, p := range pins {
		if !p.Enabled {
			continue
		}
		p.StepPin.Configure(machine.PinConfig{Mode: machine.PinOutput})
		p.StepPin.Low()
		p.DirPin.Configure(machine.PinConfig{Mode: machine.PinOutput})
		p.DirPin.Low()
	}
	return g
}

func (g *RP2040GPIOSink) SetDir(axis core.Axis, sign int32) error {
	p := g.pins[axis]
	if !p.Enabled {
		return nil
	}
	if g.lastDir[axis] == sign {
		return nil
	}
	high := sign > 0
	if p.InvertDir {
		high = !high
	}
	mask := uint32(1) << uint8(p.DirPin)
	if high {
		rp.SIO.GPIO_OUT_SET.Set(mask)
	} else {
		rp.SIO.GPIO_OUT_CLR.Set(mask)
	}
	// Dir-to-step setup time: a few NOPs cover the 20ns minimum TMC drivers want.
	arm.Asm("nop\nnop\nnop")
	g.lastDir[axis] = sign
	return nil
}

func (g *RP2040GPIOSink) Step(axis core.Axis, n uint8) error {
	p := g.pins[axis]
	if !p.Enabled {
		return nil
	}
	setMask, clearMask := uint32(1)<<uint8(p.StepPin), uint32(1)<<uint8(p.StepPin)
	if p.InvertStep {
		setMask, clearMask = clearMask, setMask
	}
	for i := uint8(0); i < n; i++ {
		rp.SIO.GPIO_OUT_SET.Set(setMask)
		// ~13 NOPs holds the pulse above the 100ns Trinamic minimum at 125MHz.
		arm.Asm("nop\nnop\nnop\nnop\nnop\nnop\nnop\nnop\nnop\nnop\nnop\nnop\nnop")
		rp.SIO.GPIO_OUT_CLR.Set(clearMask)
	}
	return nil
}

func (g *RP2040GPIOSink) Busy(axis core.Axis) bool {
	return false
}
