package audio

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"sync/atomic"
)

// ----- Source ----- //

// source produces one of the engine's input signals. A source is owned by
// the audio goroutine once installed; control code replaces it instead of
// changing it.
type source interface {
	fill(buf []float64)
}

type sourceRef struct {
	s source
}

type sourceSlot struct {
	p atomic.Pointer[sourceRef]
}

func (s *sourceSlot) set(src source) {
	s.p.Store(&sourceRef{s: src})
}

func (s *sourceSlot) fill(buf []float64) {
	ref := s.p.Load()
	if ref == nil {
		for i := range buf {
			buf[i] = 0
		}
		return
	}
	ref.s.fill(buf)
}

// ----- Wave Kind ----- //

const (
	waveSine = iota
	waveTriangle
	waveSquare
	waveSaw
	waveNoise
)

var waveKindNames = map[string]int{
	"sine":     waveSine,
	"triangle": waveTriangle,
	"square":   waveSquare,
	"saw":      waveSaw,
	"noise":    waveNoise,
}

// ----- Tone ----- //

type toneSource struct {
	kind    int
	freq    float64
	phase01 float64
}

func (t *toneSource) fill(buf []float64) {
	for i := range buf {
		p := t.phase01
		value := 0.0
		switch t.kind {
		case waveSine:
			value = math.Sin(2.0 * math.Pi * p)
		case waveTriangle:
			if p < 0.5 {
				value = p*4 - 1
			} else {
				value = p*(-4) + 3
			}
		case waveSquare:
			if p < 0.5 {
				value = 1
			} else {
				value = -1
			}
		case waveSaw:
			value = p*2 - 1
		case waveNoise:
			value = rand.Float64()*2 - 1
		}
		buf[i] = value
		t.phase01 = positiveMod(p+t.freq/sampleRate, 1)
	}
}

// ----- Constant ----- //

type constSource struct {
	level float64
}

func (c *constSource) fill(buf []float64) {
	for i := range buf {
		buf[i] = c.level
	}
}

// ----- Sample ----- //

// sampleSource loops a decoded file.
type sampleSource struct {
	data []float64
	pos  int
}

func (s *sampleSource) fill(buf []float64) {
	for i := range buf {
		buf[i] = s.data[s.pos]
		s.pos++
		if s.pos >= len(s.data) {
			s.pos = 0
		}
	}
}

// ----- MIDI Level ----- //

// midiSource follows the pitch of the last held note as a control level of
// freq / sampleRate, gliding between notes.
type midiSource struct {
	target    atomic.Uint64 // math.Float64bits
	glideTime float64       // ms
	tvalue    *transitiveValue
}

func newMidiSource(glideTime float64) *midiSource {
	return &midiSource{
		glideTime: glideTime,
		tvalue:    newTransitiveValue(),
	}
}

func (m *midiSource) setTarget(level float64) {
	m.target.Store(math.Float64bits(level))
}

func (m *midiSource) fill(buf []float64) {
	target := math.Float64frombits(m.target.Load())
	if target != m.tvalue.targetValue {
		m.tvalue.exponential(m.glideTime, target, 1e-7)
	}
	for i := range buf {
		m.tvalue.step()
		buf[i] = m.tvalue.value
	}
}

// parseSource builds a source from e.g. ["sine", "220"], ["const", "0.01"]
// or ["wav", "path/to/file.wav"].
func parseSource(args []string, midi *midiSource) (source, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: missing source kind", ErrInvalidArgument)
	}
	switch args[0] {
	case "const":
		if len(args) != 2 {
			return nil, fmt.Errorf("%w: const takes a level", ErrInvalidArgument)
		}
		level, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
		}
		return &constSource{level: level}, nil
	case "midi":
		return midi, nil
	case "wav":
		if len(args) != 2 {
			return nil, fmt.Errorf("%w: wav takes a path", ErrInvalidArgument)
		}
		data, _, err := ReadWav(args[1])
		if err != nil {
			return nil, err
		}
		if len(data) == 0 {
			return nil, fmt.Errorf("%w: %s has no samples", ErrInvalidArgument, args[1])
		}
		return &sampleSource{data: data}, nil
	}
	kind, ok := waveKindNames[args[0]]
	if !ok {
		return nil, fmt.Errorf("%w: unknown source %q", ErrInvalidArgument, args[0])
	}
	freq := 220.0
	if len(args) > 1 {
		f, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
		}
		freq = f
	}
	return &toneSource{kind: kind, freq: freq, phase01: rand.Float64()}, nil
}
