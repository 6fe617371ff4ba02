package synth

import "math"

// Waveform is the shape of a periodic oscillator.
type Waveform uint8

const (
	Sine Waveform = iota
	Square
	Sawtooth
	Triangle
)

func (w Waveform) String() string {
	switch w {
	case Square:
		return "square"
	case Sawtooth:
		return "sawtooth"
	case Triangle:
		return "triangle"
	default:
		return "sine"
	}
}

// Oscillator is a single-use periodic source. It is silent outside the
// window set by Start and Stop, and is retired from the context once its
// stop time has passed.
type Oscillator struct {
	graphNode
	wave  Waveform
	freq  *Param
	phase float64

	scheduled bool
	start     float64
	stop      float64
	ended     bool
	onEnded   func()
}

// NewOscillator creates an unscheduled oscillator at 440 Hz.
func (c *Context) NewOscillator(w Waveform) *Oscillator {
	o := &Oscillator{
		wave: w,
		freq: newParam(c, 440),
		stop: math.Inf(1),
	}
	o.init(c, o, o.process)
	return o
}

// Frequency returns the frequency parameter in Hz.
func (o *Oscillator) Frequency() *Param { return o.freq }

// Type returns the oscillator waveform.
func (o *Oscillator) Type() Waveform {
	o.ctx.mu.Lock()
	defer o.ctx.mu.Unlock()
	return o.wave
}

// Start schedules playback at time t. Only the first call has effect.
func (o *Oscillator) Start(t float64) {
	o.ctx.mu.Lock()
	defer o.ctx.mu.Unlock()
	if o.scheduled {
		return
	}
	o.scheduled = true
	o.start = t
	o.ctx.sources = append(o.ctx.sources, o)
}

// Stop schedules the end of playback at time t.
func (o *Oscillator) Stop(t float64) {
	o.ctx.mu.Lock()
	defer o.ctx.mu.Unlock()
	if o.ended {
		return
	}
	o.stop = t
}

// StartTime and StopTime report the scheduled window.
func (o *Oscillator) StartTime() float64 {
	o.ctx.mu.Lock()
	defer o.ctx.mu.Unlock()
	return o.start
}

func (o *Oscillator) StopTime() float64 {
	o.ctx.mu.Lock()
	defer o.ctx.mu.Unlock()
	return o.stop
}

// OnEnded registers a callback run once the oscillator is retired.
func (o *Oscillator) OnEnded(fn func()) {
	o.ctx.mu.Lock()
	defer o.ctx.mu.Unlock()
	o.onEnded = fn
}

// Ended reports whether the oscillator has been retired.
func (o *Oscillator) Ended() bool {
	o.ctx.mu.Lock()
	defer o.ctx.mu.Unlock()
	return o.ended
}

func (o *Oscillator) process(q *quantum, _, out []float64) {
	if !o.scheduled || o.ended {
		clear(out)
		return
	}
	freq := o.freq.values(q)
	for i := range out {
		t := q.time(i)
		if t < o.start || t >= o.stop {
			out[i] = 0
			continue
		}
		out[i] = shape(o.wave, o.phase)
		o.phase += freq[i] * q.dt
		o.phase -= math.Floor(o.phase)
	}
}

// shape evaluates a waveform at phase in [0, 1).
func shape(w Waveform, phase float64) float64 {
	switch w {
	case Square:
		if phase < 0.5 {
			return 1
		}
		return -1
	case Sawtooth:
		return 2*phase - 1
	case Triangle:
		return 1 - 4*math.Abs(phase-0.5)
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}
