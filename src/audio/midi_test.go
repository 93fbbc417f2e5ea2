package audio

import "testing"

func TestDecodeMidi(t *testing.T) {
	for _, c := range []struct {
		data []byte
		kind int
		note int
	}{
		{[]byte{0x90, 60, 100}, midiNoteOn, 60},
		{[]byte{0x93, 61, 1}, midiNoteOn, 61},
		{[]byte{0x90, 60, 0}, midiNoteOff, 60},
		{[]byte{0x80, 62, 64}, midiNoteOff, 62},
		{[]byte{0xB0, 64, 127}, midiSustainOn, 0},
		{[]byte{0xB0, 64, 10}, midiSustainOff, 0},
		{[]byte{0xB0, 1, 127}, midiNone, 0},
		{[]byte{0xE0, 0, 64}, midiNone, 0},
		{[]byte{0xF8}, midiNone, 0},
	} {
		kind, note := decodeMidi(c.data)
		expectEqual(t, kind, c.kind)
		expectEqual(t, note, c.note)
	}
}
