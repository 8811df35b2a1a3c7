// Package interval implements the speed (Hz) -> timer-interval (ticks)
// lookup the trapezoid generator uses every tick. The tables are built once
// at construction time with ordinary floating point; Lookup itself does
// only integer shifts, adds, and array indexing so it is safe to call from
// tick context at 20kHz.
package interval

const (
	// TickBase is the hardware timer tick frequency the table targets (Hz).
	TickBase = 2_000_000

	// MinInterval is the smallest timer interval the table will return,
	// clamping the fastest achievable step rate.
	MinInterval = 100

	// IdleInterval is the interval used when no block is active.
	IdleInterval = 2000

	slowMaxRate  = 2048 // ratee below this use the slow, interpolated table
	slowBucket   = 8    // Hz per slow-table entry before interpolation
	slowEntries  = slowMaxRate/slowBucket + 1
	fastBuckets  = 256 // indexed by the high byte of the adjusted rate
)

// Table maps step rate (Hz) to timer interval (ticks), clamped to
// MinInterval, with no division or floating point at lookup time.
type Table struct {
	fastBase [fastBuckets]uint16
	fastGain [fastBuckets]uint16 // interval drop per unit of low byte, Q8
	slow     [slowEntries]uint16

	maxStepFrequency uint32
	minCorrection    uint32 // F_CPU/500000 pre-correction subtracted from rate
}

// New builds the lookup tables for a given timer base frequency and step
// rate ceiling. fcpu is the configured timer base (normally TickBase);
// maxStepFrequency clamps input rates (spec's MAX_STEP_FREQUENCY).
func New(fcpu, maxStepFrequency uint32) *Table {
	t := &Table{
		maxStepFrequency: maxStepFrequency,
		minCorrection:    fcpu / 500000,
	}
	t.build(fcpu)
	return t
}

func intervalForRate(fcpu uint32, rate float64) uint16 {
	if rate < 1 {
		rate = 1
	}
	iv := float64(fcpu) / rate
	if iv > 65535 {
		iv = 65535
	}
	if iv < MinInterval {
		iv = MinInterval
	}
	return uint16(iv)
}

func (t *Table) build(fcpu uint32) {
	// Fast table: one entry per high byte of the adjusted rate, i.e. each
	// bucket spans 256 Hz starting at bucket*256. fastGain approximates the
	// (negative) slope across the bucket in Q8 so a one-multiply, one-shift
	// interpolation over the low byte recovers sub-bucket precision.
	for b := 0; b < fastBuckets; b++ {
		rateLo := float64(b * 256)
		rateHi := rateLo + 256
		if rateLo < 1 {
			rateLo = 1
		}
		ivLo := float64(intervalForRate(fcpu, rateLo))
		ivHi := float64(intervalForRate(fcpu, rateHi))
		t.fastBase[b] = uint16(ivLo)
		drop := ivLo - ivHi
		if drop < 0 {
			drop = 0
		}
		gain := drop // per 256 units of low byte -> per-unit gain in Q8 is drop itself
		if gain > 65535 {
			gain = 65535
		}
		t.fastGain[b] = uint16(gain)
	}

	// Slow table: one entry every slowBucket Hz up to slowMaxRate,
	// interpolated with a 3-bit fraction of slowBucket (slowBucket==8).
	for i := 0; i < slowEntries; i++ {
		rate := float64(i * slowBucket)
		t.slow[i] = intervalForRate(fcpu, rate)
	}
}

// Lookup returns the timer interval for rate (Hz), already corrected for
// any step multiplier the caller applied to rate (i.e. pass rate/multiplier
// directly; Lookup does not know about step_multiplier).
func (t *Table) Lookup(rateHz uint32) uint16 {
	if rateHz > t.maxStepFrequency {
		rateHz = t.maxStepFrequency
	}
	if rateHz > t.minCorrection {
		rateHz -= t.minCorrection
	} else {
		rateHz = 1
	}

	if rateHz >= slowMaxRate {
		bucket := rateHz >> 8
		if bucket >= fastBuckets {
			bucket = fastBuckets - 1
		}
		lowByte := rateHz & 0xFF
		base := uint32(t.fastBase[bucket])
		gain := uint32(t.fastGain[bucket])
		iv := base - ((gain * lowByte) >> 8)
		if iv < MinInterval {
			iv = MinInterval
		}
		return uint16(iv)
	}

	idx := rateHz / slowBucket
	frac := rateHz % slowBucket // 0..7, a 3-bit fraction
	if int(idx) >= slowEntries-1 {
		return t.slow[slowEntries-1]
	}
	lo := uint32(t.slow[idx])
	hi := uint32(t.slow[idx+1])
	// Linear interpolation over the 3-bit fraction.
	iv := lo - (((lo - hi) * frac) / slowBucket)
	if iv < MinInterval {
		iv = MinInterval
	}
	return uint16(iv)
}

// MaxStepFrequency returns the rate ceiling this table was built with, for
// callers that want to detect (and report) a clamp at Lookup time rather
// than pay for that check inside the hot lookup path itself.
func (t *Table) MaxStepFrequency() uint32 {
	return t.maxStepFrequency
}

// RateAndMultiplier applies the >10kHz / >20kHz step-multiplier rule:
// above 10kHz the table is consulted at rate/2 (multiplier shift 1), above
// 20kHz at rate/4 (shift 2), so the ISR never looks up a rate the table
// wasn't built to resolve precisely while still producing the right
// average pulse rate when multiple events are emitted per tick.
func RateAndMultiplier(rateHz uint32) (lookupRate uint32, shift uint8) {
	switch {
	case rateHz > 20000:
		return rateHz / 4, 2
	case rateHz > 10000:
		return rateHz / 2, 1
	default:
		return rateHz, 0
	}
}
