package audio

import (
	"sync"
	"sync/atomic"
)

// Engine defaults.
const (
	DefaultTableSize = 1024
	DefaultAttackMs  = 10.0
	DefaultDecayMs   = 500.0
)

// ----- Config ----- //

// config is immutable once installed. Control methods copy it, modify the
// copy and store the new pointer, so Process always sees one consistent set
// of table, mask and coefficients.
type config struct {
	table       *wavetable
	interp      Interpolation
	follower    followerParams
	sampleRate  float64
	captureSeq  uint64
	followerSeq uint64
}

// Option configures a new Engine.
type Option func(*options)

type options struct {
	tableSize int
	interp    Interpolation
	envelope  bool
	attackMs  float64
	decayMs   float64
}

// WithTableSize sets the initial table size.
func WithTableSize(size int) Option {
	return func(o *options) {
		o.tableSize = size
	}
}

// WithInterpolation sets the initial interpolation mode.
func WithInterpolation(mode Interpolation) Option {
	return func(o *options) {
		o.interp = mode
	}
}

// WithEnvelope enables or disables envelope following.
func WithEnvelope(enabled bool) Option {
	return func(o *options) {
		o.envelope = enabled
	}
}

// WithAttackMs sets the follower attack time.
func WithAttackMs(ms float64) Option {
	return func(o *options) {
		o.attackMs = ms
	}
}

// WithDecayMs sets the follower decay time.
func WithDecayMs(ms float64) Option {
	return func(o *options) {
		o.decayMs = ms
	}
}

// ----- Engine ----- //

// Engine is a wavetable oscillator that records its table from one input and
// takes its pitch from the envelope of another.
//
// Process must be called from a single goroutine. The control methods may be
// called from any goroutine at any time.
type Engine struct {
	mu  sync.Mutex // serializes control writers only
	cfg atomic.Pointer[config]

	// owned by the goroutine calling Process
	table       *wavetable
	captureSeq  uint64
	followerSeq uint64
	capture     capture
	follower    follower
	osc         osc
}

// NewEngine ...
func NewEngine(sampleRate float64, opts ...Option) (*Engine, error) {
	o := options{
		tableSize: DefaultTableSize,
		interp:    InterpTruncate,
		attackMs:  DefaultAttackMs,
		decayMs:   DefaultDecayMs,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if err := validSampleRate(sampleRate); err != nil {
		return nil, err
	}
	if _, err := validInterpolation(float64(o.interp)); err != nil {
		return nil, err
	}
	if err := validMillis(o.attackMs); err != nil {
		return nil, err
	}
	if err := validMillis(o.decayMs); err != nil {
		return nil, err
	}
	table, err := newWavetable(o.tableSize)
	if err != nil {
		return nil, err
	}
	c := &config{
		table:  table,
		interp: o.interp,
		follower: followerParams{
			enabled:  o.envelope,
			attackMs: o.attackMs,
			decayMs:  o.decayMs,
		},
		sampleRate: sampleRate,
	}
	c.follower.recompute(sampleRate)
	e := &Engine{table: table}
	e.cfg.Store(c)
	return e, nil
}

// update installs a modified copy of the current config. Nothing is stored
// when f fails.
func (e *Engine) update(f func(c *config) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	next := *e.cfg.Load()
	if err := f(&next); err != nil {
		return err
	}
	e.cfg.Store(&next)
	return nil
}

// StartCapture starts recording a new table from the raw input. A capture
// already in progress starts over.
func (e *Engine) StartCapture() {
	e.update(func(c *config) error {
		c.captureSeq++
		return nil
	})
}

// Resize replaces the table with a zero-filled one of the given size. It is a
// no-op when the size is unchanged.
func (e *Engine) Resize(size int) error {
	return e.update(func(c *config) error {
		table, err := c.table.resize(size)
		if err != nil {
			return err
		}
		c.table = table
		return nil
	})
}

// SetInterpolation ...
func (e *Engine) SetInterpolation(mode Interpolation) error {
	if _, err := validInterpolation(float64(mode)); err != nil {
		return err
	}
	return e.update(func(c *config) error {
		c.interp = mode
		return nil
	})
}

// SetEnvelope enables or disables envelope following. When disabled the
// control input drives the oscillator directly.
func (e *Engine) SetEnvelope(enabled bool) {
	e.update(func(c *config) error {
		c.follower.enabled = enabled
		return nil
	})
}

// SetAttackMs sets the attack time and restarts the follower.
func (e *Engine) SetAttackMs(ms float64) error {
	if err := validMillis(ms); err != nil {
		return err
	}
	return e.update(func(c *config) error {
		c.follower.attackMs = ms
		c.recomputeFollower()
		return nil
	})
}

// SetDecayMs sets the decay time and restarts the follower.
func (e *Engine) SetDecayMs(ms float64) error {
	if err := validMillis(ms); err != nil {
		return err
	}
	return e.update(func(c *config) error {
		c.follower.decayMs = ms
		c.recomputeFollower()
		return nil
	})
}

// SetSampleRate recomputes the follower coefficients when the host sample
// rate changes. The table is not affected.
func (e *Engine) SetSampleRate(sampleRate float64) error {
	if err := validSampleRate(sampleRate); err != nil {
		return err
	}
	return e.update(func(c *config) error {
		if c.sampleRate == sampleRate {
			return nil
		}
		c.sampleRate = sampleRate
		c.recomputeFollower()
		return nil
	})
}

func (c *config) recomputeFollower() {
	c.follower.recompute(c.sampleRate)
	c.followerSeq++
}

// Params returns a copy of the current settings.
func (e *Engine) Params() Params {
	c := e.cfg.Load()
	return Params{
		TableSize:     c.table.size(),
		Interpolation: c.interp,
		Envelope:      c.follower.enabled,
		AttackMs:      c.follower.attackMs,
		DecayMs:       c.follower.decayMs,
		SampleRate:    c.sampleRate,
	}
}

// ----- Process ----- //

// Process renders len(out) samples. raw and control must be at least as long
// as out. It returns true when a capture completed within this block.
func (e *Engine) Process(raw []float64, control []float64, out []float64) bool {
	c := e.cfg.Load()
	n := len(out)
	raw = raw[:n]
	control = control[:n]

	if c.table != e.table {
		// the destination changed under an in-flight capture
		e.capture.stop()
		e.table = c.table
		e.osc.phase = wrapPhase(e.osc.phase, float64(e.table.size()))
	}
	if c.followerSeq != e.followerSeq {
		e.follower.reset()
		e.followerSeq = c.followerSeq
	}
	if c.captureSeq != e.captureSeq {
		e.capture.start(e.table.size())
		e.captureSeq = c.captureSeq
	}

	i := 0
	done := false
	if e.capture.active() {
		i, done = e.capture.run(e.table, raw, out)
		if done {
			e.osc.reset()
		}
	}
	for ; i < n; i++ {
		m := e.follower.update(&c.follower, control[i])
		out[i] = e.osc.step(c.interp, e.table, m)
	}
	return done
}

// Capturing reports whether a capture is in progress. Like Phase and
// PhaseIncrement it must only be called from the goroutine calling Process.
func (e *Engine) Capturing() bool {
	return e.capture.active()
}

// Remaining ...
func (e *Engine) Remaining() int {
	return e.capture.remaining
}

// Phase ...
func (e *Engine) Phase() float64 {
	return e.osc.phase
}

// PhaseIncrement returns the increment computed for the last rendered sample.
func (e *Engine) PhaseIncrement() float64 {
	return e.osc.inc
}

// Envelope returns the last follower output.
func (e *Engine) Envelope() float64 {
	return e.follower.last
}
