package audio

import "testing"

func TestNewWavetableRejectsInvalidSizes(t *testing.T) {
	for _, size := range []int{0, -4, 3, 6, 1000, 1023} {
		_, err := newWavetable(size)
		expectErrorIs(t, err, ErrInvalidSize)
	}
	_, err := newWavetable(MaxTableSize * 2)
	expectErrorIs(t, err, ErrTableTooLarge)
}

func TestWavetableMask(t *testing.T) {
	for _, size := range []int{1, 2, 4, 1024, 1 << 16} {
		wt, err := newWavetable(size)
		expectNoError(t, err)
		expectEqual(t, wt.size(), size)
		expectEqual(t, wt.mask, size-1)
	}
}

func TestWavetableIndexWraps(t *testing.T) {
	wt := tableOf(10, 11, 12, 13)
	expectEqual(t, wt.read(-1), 13.0)
	expectEqual(t, wt.read(4), 10.0)
	expectEqual(t, wt.read(6), 12.0)
	wt.write(-2, 99)
	expectEqual(t, wt.values[2], 99.0)
}

func TestWavetableResize(t *testing.T) {
	wt := tableOf(1, 2, 3, 4)
	same, err := wt.resize(4)
	expectNoError(t, err)
	if same != wt {
		t.Error("expected resize to the same size to be a no-op")
	}
	bigger, err := wt.resize(8)
	expectNoError(t, err)
	expectEqual(t, bigger.size(), 8)
	for _, v := range bigger.values {
		expectEqual(t, v, 0.0)
	}
	_, err = wt.resize(3)
	expectErrorIs(t, err, ErrInvalidSize)
	expectEqual(t, wt.values[3], 4.0)
}
