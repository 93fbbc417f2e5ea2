package audio

import (
	"math"
	"testing"
)

func newFollowerParams(attackMs, decayMs, sampleRate float64) *followerParams {
	p := &followerParams{enabled: true, attackMs: attackMs, decayMs: decayMs}
	p.recompute(sampleRate)
	return p
}

func TestFollowerCoeff(t *testing.T) {
	c := followerCoeff(10, 48000)
	expectNearlyEqual(t, c, math.Exp(math.Log(0.01)/480))
	// -40dB after the configured time
	expectNearlyEqual(t, math.Pow(c, 480), 0.01)
	if followerCoeff(1, 48000) >= followerCoeff(100, 48000) {
		t.Error("expected shorter time to give a smaller coefficient")
	}
	expectEqual(t, followerCoeff(0, 48000), 0.0)
}

func TestFollowerAttackReaches99Percent(t *testing.T) {
	p := newFollowerParams(10, 500, 48000)
	f := &follower{}
	var last float64
	for i := 0; i < 480; i++ {
		last = f.update(p, 1)
	}
	expectNearlyEqual(t, last, 0.99)
}

func TestFollowerDecayConvergesMonotonically(t *testing.T) {
	p := newFollowerParams(10, 50, 48000)
	f := &follower{last: 1}
	prev := f.last
	for i := 0; i < 10000; i++ {
		v := f.update(p, 0.25)
		if v > prev || v < 0.25 {
			t.Fatalf("sample %d: %v after %v", i, v, prev)
		}
		prev = v
	}
	expectNearlyEqual(t, prev, 0.25)
}

func TestFollowerAttackMovesTowardInput(t *testing.T) {
	p := newFollowerParams(10, 500, 48000)
	f := &follower{last: 0.1}
	v := f.update(p, -0.8)
	if !(v > 0.1 && v < 0.8) {
		t.Errorf("expected value in (0.1, 0.8), got %v", v)
	}
}

func TestFollowerDisabledPassesRawInput(t *testing.T) {
	p := newFollowerParams(10, 500, 48000)
	p.enabled = false
	f := &follower{}
	expectEqual(t, f.update(p, -0.3), -0.3)
	expectEqual(t, f.last, -0.3)
}

func TestValidMillis(t *testing.T) {
	expectNoError(t, validMillis(0))
	expectNoError(t, validMillis(500))
	for _, ms := range []float64{-1, math.NaN(), math.Inf(1)} {
		expectErrorIs(t, validMillis(ms), ErrInvalidArgument)
	}
}
