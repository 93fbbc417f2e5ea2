package audio

import (
	"path/filepath"
	"testing"
)

func TestToneSourceRange(t *testing.T) {
	for kind := waveSine; kind <= waveNoise; kind++ {
		src := &toneSource{kind: kind, freq: 1000}
		buf := make([]float64, 512)
		src.fill(buf)
		for i, v := range buf {
			if v < -1 || v > 1 {
				t.Fatalf("kind %d sample %d: %v out of range", kind, i, v)
			}
		}
		if src.phase01 < 0 || src.phase01 >= 1 {
			t.Errorf("kind %d: phase %v out of range", kind, src.phase01)
		}
	}
}

func TestSampleSourceLoops(t *testing.T) {
	src := &sampleSource{data: []float64{1, 2, 3}}
	buf := make([]float64, 7)
	src.fill(buf)
	for i, expected := range []float64{1, 2, 3, 1, 2, 3, 1} {
		expectEqual(t, buf[i], expected)
	}
}

func TestSourceSlot(t *testing.T) {
	var slot sourceSlot
	buf := []float64{5, 5}
	slot.fill(buf)
	expectEqual(t, buf[0], 0.0)
	slot.set(&constSource{level: 0.5})
	slot.fill(buf)
	expectEqual(t, buf[1], 0.5)
}

func TestParseSource(t *testing.T) {
	midi := newMidiSource(10)
	src, err := parseSource([]string{"square", "440"}, midi)
	expectNoError(t, err)
	tone := src.(*toneSource)
	expectEqual(t, tone.kind, waveSquare)
	expectEqual(t, tone.freq, 440.0)

	src, err = parseSource([]string{"midi"}, midi)
	expectNoError(t, err)
	if src != source(midi) {
		t.Error("expected the shared MIDI source")
	}

	for _, args := range [][]string{
		{},
		{"const"},
		{"const", "loud"},
		{"sine", "high"},
		{"wav"},
	} {
		_, err := parseSource(args, midi)
		expectErrorIs(t, err, ErrInvalidArgument)
	}
}

func TestParseWavSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.wav")
	expectNoError(t, WriteWav(path, []float64{0, 0.5, -0.5}, 48000))
	src, err := parseSource([]string{"wav", path}, nil)
	expectNoError(t, err)
	expectEqual(t, len(src.(*sampleSource).data), 3)
}

func TestMidiSourceGlides(t *testing.T) {
	m := newMidiSource(1)
	m.setTarget(0.01)
	buf := make([]float64, 480)
	m.fill(buf)
	if !(buf[0] < buf[10] && buf[10] < 0.01) {
		t.Errorf("expected a rising glide, got %v then %v", buf[0], buf[10])
	}
	expectNearlyEqual(t, buf[len(buf)-1], 0.01)
}

func TestTransitiveValueWithoutDuration(t *testing.T) {
	tv := newTransitiveValue()
	tv.exponential(0, 3, 0.001)
	expectEqual(t, tv.value, 3.0)
	expectEqual(t, tv.step(), false)
}
