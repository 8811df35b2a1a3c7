//go:build tinygo && rp2040

package stepsink

import (
	"machine"

	"motioncore/core"

	rp2pio "github.com/tinygo-org/pio/rp2-pio"
)

// buildStepperProgram assembles the PIO program that turns one 32-bit
// command word into a burst of step pulses with a fixed inter-pulse
// delay, entirely in hardware:
//
//	bits 0-15:  pulse count minus one (the X loop runs X+1 times)
//	bits 16-23: delay cycles between pulses
//	bit 24:     direction level to hold on the out pin for this burst
//
// Program: pull command, split into X (count) / Y (delay) / direction
// pin, then loop emitting one pulse per X with a Y-cycle spacer.
func buildStepperProgram() []uint16 {
	asm := rp2pio.AssemblerV0{SidesetBits: 0}
	return []uint16{
		asm.Pull(false, true).Encode(),
		asm.Out(rp2pio.OutDestX, 16).Encode(),
		asm.Out(rp2pio.OutDestY, 8).Encode(),
		asm.Out(rp2pio.OutDestPins, 1).Encode(),
		asm.Set(rp2pio.SetDestPins, 1).Delay(7).Encode(),
		asm.Set(rp2pio.SetDestPins, 0).Encode(),
		asm.Jmp(6, rp2pio.JmpYNZeroDec).Encode(),
		asm.Jmp(4, rp2pio.JmpXNZeroDec).Encode(),
	}
}

const stepperPIOOrigin = 0

type pioAxis struct {
	sm        rp2pio.StateMachine
	stepPin   machine.Pin
	dirPin    machine.Pin
	direction bool
	enabled   bool
}

// RP2040PIOSink hands step-burst generation to the PIO block so pulse
// timing is jitter-free and independent of tick-loop CPU load; one state
// machine drives one axis. Direction is carried in the command word
// itself rather than a separate GPIO write, so SetDir only has to update
// the cached value used by the next Step burst.
type RP2040PIOSink struct {
	pio  *rp2pio.PIO
	axes [core.NumAxes]pioAxis
}

// NewRP2040PIOSink claims one state machine per enabled axis on the given
// PIO block (0 or 1) and loads the shared stepper program once.
func NewRP2040PIOSink(pioNum uint8, stepPins, dirPins [core.NumAxes]machine.Pin, enabled [core.NumAxes]bool) (*RP2040PIOSink, error) {
	var pioHW *rp2pio.PIO
	if pioNum == 0 {
		pioHW = rp2pio.PIO0
	} else {
		pioHW = rp2pio.PIO1
	}

	s := &RP2040PIOSink{pio: pioHW}
	program := buildStepperProgram()
	var offset uint8
	loaded := false

	for a := core.Axis(0); a < core.NumAxes; a++ {
		if !enabled[a] {
			continue
		}
		sm := pioHW.StateMachine(uint8(a))
		sm.TryClaim()

		if !loaded {
			var err error
			offset, err = pioHW.AddProgram(program, stepperPIOOrigin)
			if err != nil {
				return nil, err
			}
			loaded = true
		}

		stepPin, dirPin := stepPins[a], dirPins[a]
		stepPin.Configure(machine.PinConfig{Mode: pioHW.PinMode()})
		dirPin.Configure(machine.PinConfig{Mode: pioHW.PinMode()})

		cfg := rp2pio.DefaultStateMachineConfig()
		cfg.SetSetPins(stepPin, 1)
		cfg.SetOutPins(dirPin, 1)
		cfg.SetOutShift(true, false, 32)
		cfg.SetWrap(offset+uint8(len(program))-1, offset)
		cfg.SetClkDivIntFrac(1000, 0)

		sm.Init(offset, cfg)
		sm.SetPindirsConsecutive(stepPin, 1, true)
		sm.SetPindirsConsecutive(dirPin, 1, true)
		sm.SetPinsConsecutive(stepPin, 1, false)
		sm.SetPinsConsecutive(dirPin, 1, false)
		sm.SetEnabled(true)

		s.axes[a] = pioAxis{sm: sm, stepPin: stepPin, dirPin: dirPin, enabled: true}
	}
	return s, nil
}

func (s *RP2040PIOSink) SetDir(axis core.Axis, sign int32) error {
	a := &s.axes[axis]
	if !a.enabled {
		return nil
	}
	a.direction = sign < 0
	return nil
}

func (s *RP2040PIOSink) Step(axis core.Axis, n uint8) error {
	a := &s.axes[axis]
	if !a.enabled || n == 0 {
		return nil
	}
	cmd := uint32(n-1) | (uint32(1) << 16) // count field n-1 -> n pulses, delay=1 cycle
	if a.direction {
		cmd |= 1 << 24
	}
	for a.sm.IsTxFIFOFull() {
	}
	a.sm.TxPut(cmd)
	return nil
}

// Busy always reports false: Step already blocks until the FIFO has room
// for the next burst, so the tracer never needs to poll this backend.
func (s *RP2040PIOSink) Busy(axis core.Axis) bool {
	return false
}
