package endstop

import "motioncore/core"

// Report describes which endstops are latched, for the foreground
// control surface to relay after an abort. Axis order is X, Y, Z, E.
type Report struct {
	XHit, YHit, ZHit, EHit bool
	Position               [core.NumAxes]int32
}

// CheckHitEndstops builds the foreground-facing hit report from the
// monitor's latched state. The Z branch checks the Z latch, not the X
// latch: an equivalent routine in a widely deployed firmware tested
// endstop_x_hit a second time here instead of endstop_z_hit, so a pure Z
// hit was silently dropped from the report.
func CheckHitEndstops(m *Monitor) (Report, bool) {
	r := Report{
		XHit: m.Hit(core.AxisX),
		YHit: m.Hit(core.AxisY),
		ZHit: m.Hit(core.AxisZ),
		EHit: m.Hit(core.AxisE),
	}
	if !r.XHit && !r.YHit && !r.ZHit && !r.EHit {
		return Report{}, false
	}
	switch {
	case r.XHit:
		r.Position = m.PositionAtHit(core.AxisX)
	case r.YHit:
		r.Position = m.PositionAtHit(core.AxisY)
	case r.ZHit:
		r.Position = m.PositionAtHit(core.AxisZ)
	default:
		r.Position = m.PositionAtHit(core.AxisE)
	}
	return r, true
}
