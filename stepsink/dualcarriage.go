package stepsink

import "motioncore/core"

// DualMode selects how a dual-carriage/dual-driver axis fans out pulses
// between its two backends.
type DualMode uint8

const (
	// DualDuplicate sends identical direction and step signals to both
	// backends (e.g. Y_DUAL_STEPPER_DRIVERS, Z_DUAL_STEPPER_DRIVERS).
	DualDuplicate DualMode = iota
	// DualSelect routes to exactly one backend, chosen by Active
	// (e.g. DUAL_X_CARRIAGE, where the active extruder picks the carriage).
	DualSelect
)

// DualSink fans a single axis out to two backends, leaving every other
// axis to delegate straight to Primary. Active is consulted only in
// DualSelect mode; it should return 0 for Primary or 1 for Secondary and
// may read the block's active extruder index.
type DualSink struct {
	Primary   Sink
	Secondary Sink
	Axis      core.Axis
	Mode      DualMode
	Active    func() uint8
}

func (d *DualSink) targets(axis core.Axis) []Sink {
	if axis != d.Axis {
		return []Sink{d.Primary}
	}
	switch d.Mode {
	case DualSelect:
		if d.Active != nil && d.Active() == 1 {
			return []Sink{d.Secondary}
		}
		return []Sink{d.Primary}
	default: // DualDuplicate
		return []Sink{d.Primary, d.Secondary}
	}
}

func (d *DualSink) SetDir(axis core.Axis, sign int32) error {
	var firstErr error
	for _, s := range d.targets(axis) {
		if err := s.SetDir(axis, sign); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (d *DualSink) Step(axis core.Axis, n uint8) error {
	var firstErr error
	for _, s := range d.targets(axis) {
		if err := s.Step(axis, n); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (d *DualSink) Busy(axis core.Axis) bool {
	for _, s := range d.targets(axis) {
		if s.Busy(axis) {
			return true
		}
	}
	return false
}
