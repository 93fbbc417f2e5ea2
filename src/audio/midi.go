package audio

import (
	"context"
	"log"

	"gitlab.com/gomidi/rtmididrv"
)

// ----- MIDI ----- //

const ccSustain = 64

const (
	midiNone = iota
	midiNoteOn
	midiNoteOff
	midiSustainOn
	midiSustainOff
)

// decodeMidi classifies a raw channel message. Note-on with velocity 0 is a
// note-off.
func decodeMidi(data []byte) (kind int, note int) {
	if len(data) < 3 {
		return midiNone, 0
	}
	switch data[0] >> 4 {
	case 0x8:
		return midiNoteOff, int(data[1])
	case 0x9:
		if data[2] == 0 {
			return midiNoteOff, int(data[1])
		}
		return midiNoteOn, int(data[1])
	case 0xB:
		if data[1] != ccSustain {
			return midiNone, 0
		}
		if data[2] >= 64 {
			return midiSustainOn, 0
		}
		return midiSustainOff, 0
	}
	return midiNone, 0
}

// ListenToMidiIn forwards raw messages from the given MIDI IN port until ctx
// is done.
func ListenToMidiIn(ctx context.Context, port int) <-chan []byte {
	ch := make(chan []byte, 1024)
	go func() {
		defer close(ch)
		drv, err := rtmididrv.New()
		if err != nil {
			log.Printf("failed to initialize MIDI driver: %v\n", err)
			return
		}
		defer func() {
			if err := drv.Close(); err != nil {
				log.Printf("failed to close MIDI driver: %v\n", err)
			}
		}()
		ins, err := drv.Ins()
		if err != nil {
			log.Printf("failed to get MIDI IN: %v\n", err)
			return
		}
		if port < 0 || port >= len(ins) {
			log.Printf("WARN: MIDI IN %d not found (%d available)\n", port, len(ins))
			return
		}
		in := ins[port]
		if err := in.Open(); err != nil {
			log.Printf("failed to open MIDI IN: %v\n", err)
			return
		}
		defer func() {
			if err := in.Close(); err != nil {
				log.Printf("failed to close MIDI IN: %v\n", err)
			}
		}()
		log.Println("listening to " + in.String())
		err = in.SetListener(func(data []byte, deltaMicroseconds int64) {
			msg := make([]byte, len(data))
			copy(msg, data)
			select {
			case ch <- msg:
			default:
				log.Println("[WARN] MIDI message dropped")
			}
		})
		if err != nil {
			log.Println("failed to set listener: " + err.Error())
			return
		}
		defer func() {
			if err := in.StopListening(); err != nil {
				log.Printf("failed to stop listening: %v\n", err)
			}
		}()
		<-ctx.Done()
	}()
	return ch
}
