package block

import (
	"testing"

	"motioncore/core"
)

func TestDirectionBitsSign(t *testing.T) {
	var d DirectionBits
	if d.Sign(core.AxisX) != 1 {
		t.Fatal("unset bit should read as positive travel")
	}
	d |= DirectionBits(1 << uint(core.AxisX))
	if d.Sign(core.AxisX) != -1 {
		t.Fatal("set bit should read as negative travel")
	}
	if d.Sign(core.AxisY) != 1 {
		t.Fatal("setting X's bit must not affect Y's sign")
	}
}
