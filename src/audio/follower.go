package audio

import (
	"fmt"
	"math"
)

// ----- Envelope Follower ----- //

/*
  |      _
  |     / `-.
  |    /     `-._
  |   /          `--.__
  |  /                 `---.____
  +--+-----+-------------------+---
     |atk  |dcy                |
*/

// decay to -40dB over the configured time
var followerTarget = math.Log(0.01)

func followerCoeff(ms float64, sampleRate float64) float64 {
	return math.Exp(followerTarget / (ms * sampleRate * 0.001))
}

func validMillis(ms float64) error {
	if math.IsNaN(ms) || math.IsInf(ms, 0) || ms < 0 {
		return fmt.Errorf("%w: %v ms", ErrInvalidArgument, ms)
	}
	return nil
}

func validSampleRate(sr float64) error {
	if math.IsNaN(sr) || math.IsInf(sr, 0) || sr <= 0 {
		return fmt.Errorf("%w: sample rate %v", ErrInvalidArgument, sr)
	}
	return nil
}

type followerParams struct {
	enabled     bool
	attackMs    float64
	decayMs     float64
	attackCoeff float64
	decayCoeff  float64
}

func (p *followerParams) recompute(sampleRate float64) {
	p.attackCoeff = followerCoeff(p.attackMs, sampleRate)
	p.decayCoeff = followerCoeff(p.decayMs, sampleRate)
}

type follower struct {
	last float64
}

func (f *follower) reset() {
	f.last = 0
}

func (f *follower) update(p *followerParams, in float64) float64 {
	if !p.enabled {
		f.last = in
		return in
	}
	m := math.Abs(in)
	if m > f.last {
		f.last = p.attackCoeff*(f.last-m) + m
	} else {
		f.last = p.decayCoeff*(f.last-m) + m
	}
	return f.last
}
