package synth

import "sync"

// ringBuffer is a thread-safe circular sample buffer.
type ringBuffer struct {
	buf []float64
	w   int // write position
	n   int // current fill level
	mu  sync.Mutex
}

func newRingBuffer(size int) *ringBuffer {
	return &ringBuffer{buf: make([]float64, size)}
}

// Write appends samples, overwriting the oldest when full.
func (rb *ringBuffer) Write(p []float64) {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	size := len(rb.buf)
	for _, v := range p {
		rb.buf[rb.w] = v
		rb.w = (rb.w + 1) % size
	}
	rb.n += len(p)
	if rb.n > size {
		rb.n = size
	}
}

// ReadInto copies the most recent len(dst) samples into dst, oldest
// first. Missing history is zero-filled at the front.
func (rb *ringBuffer) ReadInto(dst []float64) {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	size := len(rb.buf)
	n := len(dst)
	if n > size {
		n = size
	}
	avail := n
	if avail > rb.n {
		avail = rb.n
	}
	pad := len(dst) - avail
	clear(dst[:pad])
	start := (rb.w - avail + size) % size
	for i := range avail {
		dst[pad+i] = rb.buf[(start+i)%size]
	}
}
