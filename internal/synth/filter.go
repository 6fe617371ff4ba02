package synth

import "math"

// FilterType selects the biquad response.
type FilterType uint8

const (
	Lowpass FilterType = iota
	Highpass
	Bandpass
)

func (t FilterType) String() string {
	switch t {
	case Highpass:
		return "highpass"
	case Bandpass:
		return "bandpass"
	default:
		return "lowpass"
	}
}

// BiquadFilter is a second-order filter using the RBJ cookbook
// coefficients. Cutoff and resonance are sampled once per quantum.
type BiquadFilter struct {
	graphNode
	kind FilterType
	freq *Param
	q    *Param

	b0, b1, b2, a1, a2 float64
	x1, x2, y1, y2     float64
}

// NewBiquadFilter creates a lowpass filter at 350 Hz, Q 1.
func (c *Context) NewBiquadFilter() *BiquadFilter {
	f := &BiquadFilter{
		kind: Lowpass,
		freq: newParam(c, 350),
		q:    newParam(c, 1),
	}
	f.init(c, f, f.process)
	return f
}

// Frequency returns the cutoff (or center) frequency parameter in Hz.
func (f *BiquadFilter) Frequency() *Param { return f.freq }

// Q returns the resonance parameter.
func (f *BiquadFilter) Q() *Param { return f.q }

// Type returns the current response type.
func (f *BiquadFilter) Type() FilterType {
	f.ctx.mu.Lock()
	defer f.ctx.mu.Unlock()
	return f.kind
}

// SetType switches the response type. Filter state is preserved.
func (f *BiquadFilter) SetType(t FilterType) {
	f.ctx.mu.Lock()
	defer f.ctx.mu.Unlock()
	f.kind = t
}

func (f *BiquadFilter) process(qt *quantum, in, out []float64) {
	freq := f.freq.values(qt)[0]
	res := f.q.values(qt)[0]
	f.coefficients(freq, res, 1/qt.dt)

	for i, x := range in {
		y := f.b0*x + f.b1*f.x1 + f.b2*f.x2 - f.a1*f.y1 - f.a2*f.y2
		f.x2, f.x1 = f.x1, x
		f.y2, f.y1 = f.y1, y
		out[i] = y
	}
}

func (f *BiquadFilter) coefficients(freq, q, rate float64) {
	nyquist := rate / 2
	if freq < 10 {
		freq = 10
	}
	if freq > nyquist*0.99 {
		freq = nyquist * 0.99
	}
	if q < 0.0001 {
		q = 0.0001
	}

	w0 := 2 * math.Pi * freq / rate
	cos, sin := math.Cos(w0), math.Sin(w0)
	alpha := sin / (2 * q)

	var b0, b1, b2 float64
	switch f.kind {
	case Highpass:
		b0 = (1 + cos) / 2
		b1 = -(1 + cos)
		b2 = (1 + cos) / 2
	case Bandpass:
		b0 = alpha
		b1 = 0
		b2 = -alpha
	default:
		b0 = (1 - cos) / 2
		b1 = 1 - cos
		b2 = (1 - cos) / 2
	}
	a0 := 1 + alpha
	f.b0, f.b1, f.b2 = b0/a0, b1/a0, b2/a0
	f.a1 = -2 * cos / a0
	f.a2 = (1 - alpha) / a0
}
