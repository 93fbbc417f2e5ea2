package audio

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func expectEqual(t *testing.T, actual, expected interface{}) {
	t.Helper()
	if actual != expected {
		t.Errorf("expected %v, but got: %v", expected, actual)
	}
}

func expectNearlyEqual(t *testing.T, actual, expected float64) {
	t.Helper()
	if math.Abs(actual-expected) > 0.0001 {
		t.Errorf("expected %v, but got: %v", expected, actual)
	}
}

func expectErrorIs(t *testing.T, err error, target error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Errorf("expected %v, but got: %v", target, err)
	}
}

func tableOf(values ...float64) *wavetable {
	wt, err := newWavetable(len(values))
	if err != nil {
		panic(err)
	}
	copy(wt.values, values)
	return wt
}

func randomTable(size int) *wavetable {
	r := rand.New(rand.NewSource(1))
	wt, _ := newWavetable(size)
	for i := range wt.values {
		wt.values[i] = r.Float64()*2 - 1
	}
	return wt
}

// straightforward forms of the kernels, kept apart from the production code

func linearReference(wt *wavetable, phase float64) float64 {
	i := math.Floor(phase)
	f := phase - i
	a := wt.values[int(i)%wt.size()]
	b := wt.values[(int(i)+1)%wt.size()]
	return (1-f)*a + f*b
}

func catmullRomReference(wt *wavetable, phase float64) float64 {
	n := wt.size()
	i := int(math.Floor(phase))
	f := phase - float64(i)
	p0 := wt.values[(i-1+n)%n]
	p1 := wt.values[i%n]
	p2 := wt.values[(i+1)%n]
	p3 := wt.values[(i+2)%n]
	return 0.5 * (2*p1 +
		(-p0+p2)*f +
		(2*p0-5*p1+4*p2-p3)*f*f +
		(-p0+3*p1-3*p2+p3)*f*f*f)
}

func TestTruncateIsExact(t *testing.T) {
	wt := randomTable(16)
	for _, phase := range []float64{0, 0.25, 1, 3.999, 7.5, 15.99} {
		expectEqual(t, interpolate(InterpTruncate, wt, phase), wt.values[int(math.Floor(phase))&wt.mask])
	}
}

func TestLinearAtIntegerPhaseMatchesTruncate(t *testing.T) {
	wt := randomTable(32)
	for i := 0; i < 32; i++ {
		phase := float64(i)
		expectEqual(t, interpolate(InterpLinear2, wt, phase), interpolate(InterpTruncate, wt, phase))
	}
}

func TestLinearBetweenSamples(t *testing.T) {
	wt := tableOf(0, 1, 2, 3)
	expectEqual(t, interpolate(InterpLinear2, wt, 1.5), 1.5)
	// wraps from the last sample to the first
	expectEqual(t, interpolate(InterpLinear2, wt, 3.5), 1.5)
}

func TestCubicPassesThroughSamples(t *testing.T) {
	wt := randomTable(8)
	for i := 0; i < 8; i++ {
		expectEqual(t, interpolate(InterpCubic4, wt, float64(i)), wt.values[i])
	}
}

func TestKernelsMatchReference(t *testing.T) {
	wt := randomTable(64)
	r := rand.New(rand.NewSource(2))
	for n := 0; n < 1000; n++ {
		phase := r.Float64() * 64
		expectNearlyEqual(t, interpolate(InterpLinear2, wt, phase), linearReference(wt, phase))
		expectNearlyEqual(t, interpolate(InterpCubic4, wt, phase), catmullRomReference(wt, phase))
	}
}

func TestUnknownModePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unknown mode")
		}
	}()
	interpolate(Interpolation(5), tableOf(0, 1), 0)
}

func TestParseInterpolation(t *testing.T) {
	for s, expected := range map[string]Interpolation{
		"0":        InterpTruncate,
		"1":        InterpLinear2,
		"2":        InterpCubic4,
		"1.7":      InterpLinear2,
		"truncate": InterpTruncate,
		"linear-2": InterpLinear2,
		"cubic-4":  InterpCubic4,
	} {
		mode, err := ParseInterpolation(s)
		expectNoError(t, err)
		expectEqual(t, mode, expected)
	}
	for _, s := range []string{"3", "5", "-1", "NaN", "cubic", ""} {
		_, err := ParseInterpolation(s)
		expectErrorIs(t, err, ErrInvalidMode)
	}
	expectEqual(t, InterpCubic4.String(), "cubic-4")
	expectEqual(t, Interpolation(7).String(), "Interpolation(7)")
}
