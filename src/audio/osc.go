package audio

import "math"

// ----- Phase Accumulator ----- //

// beyond this many table lengths the excursion is folded with math.Mod
// before the add/subtract loops, bounding the work per sample
const maxPhaseWraps = 8

type osc struct {
	phase float64
	inc   float64
}

func (o *osc) reset() {
	o.phase = 0
	o.inc = 0
}

// step reads the table at the current phase, then advances by |m| * N.
func (o *osc) step(mode Interpolation, wt *wavetable, m float64) float64 {
	size := float64(wt.size())
	o.inc = math.Abs(m) * size
	value := interpolate(mode, wt, o.phase)
	o.phase = wrapPhase(o.phase+o.inc, size)
	return value
}

func wrapPhase(phase float64, size float64) float64 {
	if math.IsNaN(phase) || math.IsInf(phase, 0) {
		return 0
	}
	if math.Abs(phase) >= maxPhaseWraps*size {
		phase = math.Mod(phase, size)
	}
	for phase >= size {
		phase -= size
	}
	for phase < 0 {
		phase += size
	}
	// a tiny negative phase can round up to exactly size
	if phase >= size {
		phase = 0
	}
	return phase
}
