package main

import (
	"log"

	"github.com/jinjor/wavecap/src/audio"
)

type processor interface {
	Update(command []string) error
	Process(raw []float64, control []float64, out []float64) bool
}

// render runs raw and control through p in blocks of blockSize samples.
// Scripted events are applied before the first block starting at or after
// their offset. Rejected commands are logged and skipped. It returns the
// output and the number of completed captures.
func render(p processor, raw []float64, control []float64, events []event, blockSize int) ([]float64, int) {
	out := make([]float64, len(raw))
	captures := 0
	next := 0
	for start := 0; start < len(raw); start += blockSize {
		for next < len(events) && events[next].offset <= start {
			if err := p.Update(events[next].command); err != nil {
				log.Printf("offset %d: %v\n", events[next].offset, err)
			}
			next++
		}
		end := start + blockSize
		if end > len(raw) {
			end = len(raw)
		}
		if p.Process(raw[start:end], control[start:end], out[start:end]) {
			captures++
			log.Printf("capture done at block %d\n", start)
		}
	}
	return out, captures
}

// fitControl returns control padded or cut to n samples. Missing samples
// are filled with level.
func fitControl(control []float64, n int, level float64) []float64 {
	fitted := make([]float64, n)
	copied := copy(fitted, control)
	for i := copied; i < n; i++ {
		fitted[i] = level
	}
	return fitted
}

var _ processor = (*audio.Engine)(nil)
