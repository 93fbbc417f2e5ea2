package audio

import "fmt"

// MaxTableSize is the largest table the engine will allocate.
const MaxTableSize = 1 << 24

// ----- Wavetable ----- //

// wavetable is never resized in place. A size change builds a new one and the
// old one is dropped once no snapshot refers to it.
type wavetable struct {
	values []float64
	mask   int
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

func newWavetable(size int) (*wavetable, error) {
	if !isPowerOfTwo(size) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	if size > MaxTableSize {
		return nil, fmt.Errorf("%w: %d > %d", ErrTableTooLarge, size, MaxTableSize)
	}
	return &wavetable{
		values: make([]float64, size),
		mask:   size - 1,
	}, nil
}

// resize returns wt itself when the size is unchanged.
func (wt *wavetable) resize(size int) (*wavetable, error) {
	if wt != nil && size == len(wt.values) {
		return wt, nil
	}
	return newWavetable(size)
}

func (wt *wavetable) size() int {
	return len(wt.values)
}

// index maps any signed position onto the table.
func (wt *wavetable) index(i int) int {
	return i & wt.mask
}

func (wt *wavetable) read(i int) float64 {
	return wt.values[wt.index(i)]
}

func (wt *wavetable) write(i int, value float64) {
	wt.values[wt.index(i)] = value
}
