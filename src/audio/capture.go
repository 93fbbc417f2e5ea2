package audio

// ----- Capture ----- //

// capture is Idle when remaining is 0 and Recording otherwise.
type capture struct {
	remaining int
}

// start always restarts from a full countdown.
func (c *capture) start(size int) {
	c.remaining = size
}

func (c *capture) stop() {
	c.remaining = 0
}

func (c *capture) active() bool {
	return c.remaining > 0
}

// run records from in until the table is full or out is exhausted, writing
// silence to out. It returns the number of samples consumed and whether the
// capture completed during this call.
func (c *capture) run(wt *wavetable, in []float64, out []float64) (int, bool) {
	size := wt.size()
	n := 0
	for c.remaining > 0 && n < len(out) {
		wt.write(size-c.remaining, in[n])
		c.remaining--
		out[n] = 0
		n++
	}
	return n, n > 0 && c.remaining == 0
}
