package synth

// WaveShaper maps its input through a transfer curve spanning [-1, 1],
// interpolating linearly between curve points.
type WaveShaper struct {
	graphNode
	curve []float64
}

// NewWaveShaper creates a shaper with no curve, which passes input through.
func (c *Context) NewWaveShaper() *WaveShaper {
	s := &WaveShaper{}
	s.init(c, s, s.process)
	return s
}

// SetCurve installs the transfer curve. The slice is retained, not copied,
// and must not be modified afterwards.
func (s *WaveShaper) SetCurve(curve []float64) {
	s.ctx.mu.Lock()
	defer s.ctx.mu.Unlock()
	s.curve = curve
}

// Curve returns the installed transfer curve.
func (s *WaveShaper) Curve() []float64 {
	s.ctx.mu.Lock()
	defer s.ctx.mu.Unlock()
	return s.curve
}

func (s *WaveShaper) process(_ *quantum, in, out []float64) {
	if len(s.curve) < 2 {
		copy(out, in)
		return
	}
	for i, x := range in {
		out[i] = Shape(s.curve, x)
	}
}

// Shape applies curve to a single sample.
func Shape(curve []float64, x float64) float64 {
	n := len(curve)
	if n == 0 {
		return x
	}
	v := float64(n-1) * (x + 1) / 2
	if v <= 0 {
		return curve[0]
	}
	if v >= float64(n-1) {
		return curve[n-1]
	}
	k := int(v)
	f := v - float64(k)
	return (1-f)*curve[k] + f*curve[k+1]
}
