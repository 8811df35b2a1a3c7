package main

import "motioncore/core"

// simDriver is an in-memory core.GPIODriver standing in for real
// hardware on the host build: it just records pin state.
type simDriver struct {
	state map[core.GPIOPin]bool
}

func newSimDriver() *simDriver {
	return &simDriver{state: make(map[core.GPIOPin]bool)}
}

func (s *simDriver) ConfigureOutput(pin core.GPIOPin) error        { return nil }
func (s *simDriver) ConfigureInputPullUp(pin core.GPIOPin) error   { return nil }
func (s *simDriver) ConfigureInputPullDown(pin core.GPIOPin) error { return nil }

func (s *simDriver) SetPin(pin core.GPIOPin, value bool) error {
	s.state[pin] = value
	return nil
}

func (s *simDriver) GetPin(pin core.GPIOPin) (bool, error) {
	return s.state[pin], nil
}

func (s *simDriver) ReadPin(pin core.GPIOPin) bool {
	return s.state[pin]
}
