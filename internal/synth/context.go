// Package synth implements a small pull-based audio graph: parameter
// automation on a sample clock, oscillators, filters, wave shapers and an
// analyser, rendered in fixed quanta and streamed to an output device.
package synth

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"sync"
)

const (
	// DefaultSampleRate is used when Options.SampleRate is unset.
	DefaultSampleRate = 44100
	// Quantum is the number of frames rendered per graph pass.
	Quantum = 128

	channelCount  = 2
	bytesPerFrame = channelCount * 4 // float32 samples
)

// State is the running state of a Context.
type State uint8

const (
	Suspended State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "suspended"
}

// Sink receives rendered frames by reading from the Context.
type Sink interface {
	Play()
	Pause()
}

// OpenFunc opens an output sink that pulls stereo float32 frames from src.
type OpenFunc func(sampleRate int, src io.Reader) (Sink, error)

// Options configures a Context.
type Options struct {
	SampleRate int
	// Open attaches an output device. A nil Open yields an offline context
	// that only advances when Render or Read is called directly.
	Open OpenFunc
}

// quantum describes the block currently being rendered.
type quantum struct {
	id uint64
	t0 float64
	dt float64
}

func (q *quantum) time(i int) float64 {
	return q.t0 + float64(i)*q.dt
}

// Context owns an audio graph and its sample clock. Graph mutations and
// rendering are serialized by an internal lock, so scheduling calls may be
// made from any goroutine while a device pulls frames.
type Context struct {
	mu      sync.Mutex
	rate    float64
	frame   int64
	block   uint64
	state   State
	sink    Sink
	dest    *Gain
	sources []*Oscillator
	ended   []func()

	carry []float64
	pos   int
}

// NewContext creates a suspended context and, if opts.Open is set, opens
// its output sink.
func NewContext(opts Options) (*Context, error) {
	rate := opts.SampleRate
	if rate <= 0 {
		rate = DefaultSampleRate
	}
	c := &Context{
		rate:  float64(rate),
		carry: make([]float64, Quantum),
		pos:   Quantum,
	}
	c.dest = c.NewGain()

	if opts.Open != nil {
		sink, err := opts.Open(rate, c)
		if err != nil {
			return nil, fmt.Errorf("open audio sink: %w", err)
		}
		c.sink = sink
	}
	return c, nil
}

// SampleRate returns the context sample rate in Hz.
func (c *Context) SampleRate() float64 { return c.rate }

// Destination is the final node of the graph.
func (c *Context) Destination() Node { return c.dest }

// CurrentTime returns the start time, in seconds, of the next quantum to be
// rendered.
func (c *Context) CurrentTime() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now()
}

func (c *Context) now() float64 {
	return float64(c.frame) / c.rate
}

// State reports whether the context is running.
func (c *Context) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Resume starts the output sink. It is a no-op when already running.
func (c *Context) Resume() {
	c.mu.Lock()
	if c.state == Running {
		c.mu.Unlock()
		return
	}
	c.state = Running
	sink := c.sink
	c.mu.Unlock()

	if sink != nil {
		sink.Play()
	}
}

// Suspend pauses the output sink, freezing the clock.
func (c *Context) Suspend() {
	c.mu.Lock()
	if c.state == Suspended {
		c.mu.Unlock()
		return
	}
	c.state = Suspended
	sink := c.sink
	c.mu.Unlock()

	if sink != nil {
		sink.Pause()
	}
}

// Sources returns the scheduled sources that have not yet been retired.
func (c *Context) Sources() []*Oscillator {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*Oscillator, len(c.sources))
	copy(out, c.sources)
	return out
}

// Render fills dst with mono output samples, advancing the clock.
func (c *Context) Render(dst []float64) {
	c.mu.Lock()
	for i := range dst {
		dst[i] = c.next()
	}
	ended := c.takeEnded()
	c.mu.Unlock()
	runEnded(ended)
}

// Read implements io.Reader for output devices: interleaved stereo
// float32 little-endian frames.
func (c *Context) Read(p []byte) (int, error) {
	frames := len(p) / bytesPerFrame
	if frames == 0 {
		return 0, nil
	}

	c.mu.Lock()
	for i := range frames {
		bits := math.Float32bits(float32(clampUnit(c.next())))
		off := i * bytesPerFrame
		binary.LittleEndian.PutUint32(p[off:], bits)
		binary.LittleEndian.PutUint32(p[off+4:], bits)
	}
	ended := c.takeEnded()
	c.mu.Unlock()

	runEnded(ended)
	return frames * bytesPerFrame, nil
}

var _ io.Reader = (*Context)(nil)

func (c *Context) next() float64 {
	if c.pos >= len(c.carry) {
		c.renderQuantum()
		c.pos = 0
	}
	v := c.carry[c.pos]
	c.pos++
	return v
}

func (c *Context) renderQuantum() {
	c.block++
	q := &quantum{id: c.block, t0: c.now(), dt: 1 / c.rate}
	copy(c.carry, c.dest.pull(q))
	c.frame += Quantum
	c.retire()
}

// retire drops sources whose stop time has passed and queues their
// ended callbacks.
func (c *Context) retire() {
	now := c.now()
	kept := c.sources[:0]
	for _, o := range c.sources {
		if o.stop <= now {
			o.ended = true
			if o.onEnded != nil {
				c.ended = append(c.ended, o.onEnded)
			}
			continue
		}
		kept = append(kept, o)
	}
	for i := len(kept); i < len(c.sources); i++ {
		c.sources[i] = nil
	}
	c.sources = kept
}

func (c *Context) takeEnded() []func() {
	ended := c.ended
	c.ended = nil
	return ended
}

// Ended callbacks run outside the lock so they may disconnect nodes.
func runEnded(fns []func()) {
	for _, fn := range fns {
		fn()
	}
}

func clampUnit(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
