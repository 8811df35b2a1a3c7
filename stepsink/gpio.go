package stepsink

import (
	"fmt"

	"motioncore/core"
)

// AxisPins describes the step/direction wiring for one axis on a GPIOSink.
// Leaving StepPin and DirPin both zero with Enabled false marks an axis as
// not driven by this backend (e.g. an axis handled by a smart-driver
// backend instead).
type AxisPins struct {
	StepPin    core.GPIOPin
	DirPin     core.GPIOPin
	InvertStep bool
	InvertDir  bool
	Enabled    bool
}

// GPIOSink is the direct pin-toggle step-sink backend (component E,
// "GPIO pulse backend"): it writes the direction pin once per change
// (idempotent — repeated calls with the same sign are a no-op) and pulses
// the step pin high-then-low with a short settle, polarity driven by
// configuration.
type GPIOSink struct {
	driver  core.GPIODriver
	pins    [core.NumAxes]AxisPins
	lastDir [core.NumAxes]int32
	settle  int // busy-loop iterations standing in for the pulse width
}

// NewGPIOSink configures the driver's pins for every enabled axis.
func NewGPIOSink(driver core.GPIODriver, pins [core.NumAxes]AxisPins) (*GPIOSink, error) {
	g := &GPIOSink{driver: driver, pins: pins, settle: 8}
	for a, p := range pins {
		if !p.Enabled {
			continue
		}
		if err := driver.ConfigureOutput(p.StepPin); err != nil {
			return nil, fmt.Errorf("stepsink: configure step pin for axis %d: %w", a, err)
		}
		if err := driver.ConfigureOutput(p.DirPin); err != nil {
			return nil, fmt.Errorf("stepsink: configure dir pin for axis %d: %w", a, err)
		}
		g.lastDir[a] = 0
	}
	return g, nil
}

func (g *GPIOSink) SetDir(axis core.Axis, sign int32) error {
	p := g.pins[axis]
	if !p.Enabled {
		return nil
	}
	if g.lastDir[axis] == sign {
		return nil
	}
	level := sign > 0
	if p.InvertDir {
		level = !level
	}
	if err := g.driver.SetPin(p.DirPin, level); err != nil {
		return err
	}
	g.lastDir[axis] = sign
	return nil
}

func (g *GPIOSink) Step(axis core.Axis, n uint8) error {
	p := g.pins[axis]
	if !p.Enabled {
		return nil
	}
	high, low := true, false
	if p.InvertStep {
		high, low = low, high
	}
	for i := uint8(0); i < n; i++ {
		if err := g.driver.SetPin(p.StepPin, high); err != nil {
			return err
		}
		g.pulseSettle()
		if err := g.driver.SetPin(p.StepPin, low); err != nil {
			return err
		}
	}
	return nil
}

// Busy always reports false: a GPIO backend executes a step synchronously
// and never holds the tracer off the way a smart-driver's BUSY line would.
func (g *GPIOSink) Busy(axis core.Axis) bool {
	return false
}

func (g *GPIOSink) pulseSettle() {
	for i := 0; i < g.settle; i++ {
		// Empty spin standing in for the fixed-cycle NOP settle a real
		// target inserts between the step edge and its release.
	}
}
