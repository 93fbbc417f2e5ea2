package audio

import (
	"context"
	"fmt"
	"io"
	"log"
	"math"
	"math/cmplx"
	"sync"

	"github.com/hajimehoshi/oto"
	"github.com/mjibson/go-dsp/fft"
)

const (
	sampleRate      = 48000
	channelNum      = 2
	bitDepthInBytes = 2
	samplesPerCycle = 1024
	fftSize         = 2048 // multiple of samplesPerCycle
)
const bytesPerSample = bitDepthInBytes * channelNum
const bufferSizeInBytes = samplesPerCycle * bytesPerSample // should be >= 4096
const secPerSample = 1.0 / sampleRate
const baseFreq = 442.0
const outGain = 0.5
const midiGlideTime = 30.0 // ms

// ----- Utility ----- //

func positiveMod(a float64, b float64) float64 {
	if b < 0 {
		panic("b should not be negative")
	}
	a = math.Mod(a, b)
	if a < 0 {
		a += b
	}
	return a
}
func noteToFreq(note int) float64 {
	return baseFreq * math.Pow(2, float64(note-69)/12)
}

// ----- History ----- //

// history keeps the most recent output for analysis. The audio goroutine
// skips the copy rather than wait when a reader holds the lock.
type history struct {
	sync.Mutex
	pos int
	out []float64 // length: fftSize
}

func (h *history) push(values []float64) {
	if !h.TryLock() {
		return
	}
	for _, v := range values {
		h.out[h.pos] = v
		h.pos++
		if h.pos >= len(h.out) {
			h.pos = 0
		}
	}
	h.Unlock()
}

// copyTo writes the history oldest-first into dst.
func (h *history) copyTo(dst []float64) {
	h.Lock()
	// out:  | 4 | 1 | 2 | 3 |
	// pos:      ^
	// dst:  | 1 | 2 | 3 | 4 |
	n := copy(dst, h.out[h.pos:])
	copy(dst[n:], h.out[:h.pos])
	h.Unlock()
}

// ----- Audio ----- //

// Audio plays an Engine through the default output device.
type Audio struct {
	ctx        context.Context
	otoContext *oto.Context
	CommandCh  chan []string
	engine     *Engine
	raw        sourceSlot
	control    sourceSlot
	midi       *midiSource
	midiNote   int // held note, -1 if none
	presets    *presetManager
	captured   chan struct{}
	history    *history

	// owned by Read
	rawBuf     []float64
	controlBuf []float64
	outBuf     []float64
}

var _ io.Reader = (*Audio)(nil)

// NewAudio opens the output device. presetDir may be empty.
func NewAudio(presetDir string) (*Audio, error) {
	otoContext, err := oto.NewContext(sampleRate, channelNum, bitDepthInBytes, bufferSizeInBytes)
	if err != nil {
		return nil, err
	}
	a, err := newAudio(presetDir)
	if err != nil {
		otoContext.Close()
		return nil, err
	}
	a.otoContext = otoContext
	go processCommands(a, a.CommandCh)
	return a, nil
}

func newAudio(presetDir string) (*Audio, error) {
	engine, err := NewEngine(sampleRate)
	if err != nil {
		return nil, err
	}
	a := &Audio{
		ctx:        context.Background(),
		CommandCh:  make(chan []string, 256),
		engine:     engine,
		midi:       newMidiSource(midiGlideTime),
		midiNote:   -1,
		captured:   make(chan struct{}, 1),
		history:    &history{out: make([]float64, fftSize)},
		rawBuf:     make([]float64, samplesPerCycle),
		controlBuf: make([]float64, samplesPerCycle),
		outBuf:     make([]float64, samplesPerCycle),
	}
	if presetDir != "" {
		a.presets = newPresetManager(presetDir)
	}
	a.raw.set(&toneSource{kind: waveSine, freq: 220})
	a.control.set(&constSource{level: 0})
	return a, nil
}

func (a *Audio) Read(buf []byte) (int, error) {
	select {
	case <-a.ctx.Done():
		log.Println("Read() interrupted.")
		return 0, io.EOF
	default:
	}
	total := len(buf) / bytesPerSample
	for offset := 0; offset < total; offset += samplesPerCycle {
		n := total - offset
		if n > samplesPerCycle {
			n = samplesPerCycle
		}
		a.render(n)
		writeBuffer(a.outBuf[:n], buf[offset*bytesPerSample:], 0)
		writeBuffer(a.outBuf[:n], buf[offset*bytesPerSample:], 1)
	}
	return total * bytesPerSample, nil
}

// render runs one block of n samples into outBuf.
func (a *Audio) render(n int) {
	raw := a.rawBuf[:n]
	control := a.controlBuf[:n]
	out := a.outBuf[:n]
	a.raw.fill(raw)
	a.control.fill(control)
	if a.engine.Process(raw, control, out) {
		select {
		case a.captured <- struct{}{}:
		default:
		}
	}
	for i := range out {
		out[i] *= outGain
	}
	a.history.push(out)
}

func writeBuffer(out []float64, buf []byte, ch int) {
	for i, value := range out {
		switch bitDepthInBytes {
		case 1:
			const max = 127
			b := int(clip(value) * max)
			buf[bytesPerSample*i+ch] = byte(b + 128)
		case 2:
			const max = 32767
			b := int16(clip(value) * max)
			buf[bytesPerSample*i+2*ch] = byte(b)
			buf[bytesPerSample*i+2*ch+1] = byte(b >> 8)
		}
	}
}

func processCommands(audio *Audio, commandCh <-chan []string) {
	for command := range commandCh {
		if err := audio.update(command); err != nil {
			log.Printf("error: %v\n", err)
		}
	}
	log.Println("processCommands() ended.")
}

func (a *Audio) update(command []string) error {
	if len(command) == 0 {
		return fmt.Errorf("%w: empty command", ErrInvalidArgument)
	}
	switch command[0] {
	case "source":
		if len(command) < 3 {
			return fmt.Errorf("%w: source <raw|control> <kind> [arg]", ErrInvalidArgument)
		}
		src, err := parseSource(command[2:], a.midi)
		if err != nil {
			return err
		}
		switch command[1] {
		case "raw":
			a.raw.set(src)
		case "control":
			a.control.set(src)
		default:
			return fmt.Errorf("%w: unknown input %q", ErrInvalidArgument, command[1])
		}
		log.Printf("source %s: %v\n", command[1], command[2:])
	case "preset":
		if len(command) != 2 {
			return fmt.Errorf("%w: preset takes a name", ErrInvalidArgument)
		}
		if a.presets == nil {
			return fmt.Errorf("%w: no preset directory", ErrInvalidArgument)
		}
		if err := a.presets.applyTo(command[1], a.engine); err != nil {
			return err
		}
		log.Printf("preset: %s\n", command[1])
	default:
		return a.engine.Update(command)
	}
	return nil
}

// Close ...
func (a *Audio) Close() error {
	log.Println("Closing Audio...")
	close(a.CommandCh)
	if a.otoContext == nil {
		return nil
	}
	return a.otoContext.Close()
}

// Start blocks until ctx is done.
func (a *Audio) Start(ctx context.Context) error {
	p := a.otoContext.NewPlayer()
	defer func() {
		if err := p.Close(); err != nil {
			log.Printf("error: %v", err)
		}
	}()
	a.ctx = ctx

	if _, err := io.CopyBuffer(p, a, make([]byte, bufferSizeInBytes)); err != nil {
		return err
	}
	log.Println("Start() ended.")
	return nil
}

// Captured delivers one value per completed capture. Notifications that
// arrive while one is pending are merged.
func (a *Audio) Captured() <-chan struct{} {
	return a.captured
}

// ToJSON ...
func (a *Audio) ToJSON() []byte {
	return a.engine.ToJSON()
}

// GetSpectrum returns the magnitude spectrum of the recent output.
func (a *Audio) GetSpectrum() []float64 {
	x := make([]float64, fftSize)
	a.history.copyTo(x)
	han(x)
	spectrum := fft.FFTReal(x)
	result := make([]float64, fftSize/2)
	for i := range result {
		result[i] = cmplx.Abs(spectrum[i]) * 2 / fftSize
	}
	return result
}

// AddMidiEvent handles a raw MIDI message. The last note pressed sets the
// pitch of the MIDI control source; the sustain pedal starts a capture.
// It must be called from one goroutine.
func (a *Audio) AddMidiEvent(data []byte) {
	kind, note := decodeMidi(data)
	switch kind {
	case midiNoteOn:
		log.Printf("got note-on: %v\n", data)
		a.midiNote = note
		a.midi.setTarget(noteToFreq(note) / sampleRate)
	case midiNoteOff:
		log.Printf("got note-off: %v\n", data)
		if note == a.midiNote {
			a.midiNote = -1
			a.midi.setTarget(0)
		}
	case midiSustainOn:
		a.engine.StartCapture()
		log.Println("recording...")
	}
}
