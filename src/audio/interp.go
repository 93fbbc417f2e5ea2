package audio

import (
	"fmt"
	"math"
	"strconv"
)

// ----- Interpolation ----- //

// Interpolation selects how the oscillator reads between table entries.
type Interpolation int

// Interpolation modes.
const (
	InterpTruncate Interpolation = iota
	InterpLinear2
	InterpCubic4
	interpNum
)

var interpNames = [interpNum]string{"truncate", "linear-2", "cubic-4"}

func (m Interpolation) String() string {
	if m < 0 || m >= interpNum {
		return "Interpolation(" + strconv.Itoa(int(m)) + ")"
	}
	return interpNames[m]
}

// ParseInterpolation accepts a mode name or its index. Numeric input is
// truncated toward zero before the range check.
func ParseInterpolation(s string) (Interpolation, error) {
	for i, name := range interpNames {
		if s == name {
			return Interpolation(i), nil
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
	return validInterpolation(f)
}

func validInterpolation(f float64) (Interpolation, error) {
	if f <= -1 || f >= float64(interpNum) {
		return 0, fmt.Errorf("%w: %v invalid, must be in the interval [0, %d)", ErrInvalidMode, f, interpNum)
	}
	return Interpolation(int(f)), nil
}

// interpolate reads wt at phase. phase must already be in [0, N).
func interpolate(mode Interpolation, wt *wavetable, phase float64) float64 {
	p := int(phase)
	switch mode {
	case InterpTruncate:
		return wt.read(p)
	case InterpLinear2:
		f := phase - float64(p)
		in := wt.read(p)
		return in + f*(wt.read(p+1)-in)
	case InterpCubic4:
		f := phase - float64(p)
		inm1 := wt.read(p - 1)
		in := wt.read(p)
		inp1 := wt.read(p + 1)
		inp2 := wt.read(p + 2)
		return in + 0.5*f*(inp1-inm1+
			f*(4.0*inp1+2.0*inm1-5.0*in-inp2+
				f*(3.0*(in-inp1)-inm1+inp2)))
	}
	panic(fmt.Sprintf("unknown interpolation mode %d", int(mode)))
}
