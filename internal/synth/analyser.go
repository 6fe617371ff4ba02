package synth

import (
	"fmt"
	"math"
	"math/cmplx"

	algofft "github.com/cwbudde/algo-fft"
)

const (
	// DefaultFFTSize gives 128 frequency bins.
	DefaultFFTSize   = 256
	defaultSmoothing = 0.8
	defaultMinDB     = -100.0
	defaultMaxDB     = -30.0
)

// Analyser passes audio through unchanged while keeping the most recent
// fftSize samples for spectral reads.
type Analyser struct {
	graphNode
	size      int
	smoothing float64
	minDB     float64
	maxDB     float64
	history   *ringBuffer

	// Spectral state below is owned by the reader.
	window   []float64
	frame    []float64
	spec     []complex128
	smoothed []float64
	forward  func(dst []complex128, src []float64)
}

// NewAnalyser creates an analyser with the given FFT size, which must be a
// power of two. A size of zero selects DefaultFFTSize.
func (c *Context) NewAnalyser(fftSize int) (*Analyser, error) {
	if fftSize == 0 {
		fftSize = DefaultFFTSize
	}
	if fftSize < 32 || fftSize&(fftSize-1) != 0 {
		return nil, fmt.Errorf("analyser fft size %d is not a power of two >= 32", fftSize)
	}
	plan, err := algofft.NewPlanReal64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("fft plan: %w", err)
	}

	a := &Analyser{
		size:      fftSize,
		smoothing: defaultSmoothing,
		minDB:     defaultMinDB,
		maxDB:     defaultMaxDB,
		history:   newRingBuffer(fftSize),
		window:    blackman(fftSize),
		frame:     make([]float64, fftSize),
		spec:      make([]complex128, fftSize/2+1),
		smoothed:  make([]float64, fftSize/2),
		forward: func(dst []complex128, src []float64) {
			plan.Forward(dst, src)
		},
	}
	a.init(c, a, a.process)
	return a, nil
}

// FFTSize returns the analysis window length.
func (a *Analyser) FFTSize() int { return a.size }

// FrequencyBinCount is half the FFT size.
func (a *Analyser) FrequencyBinCount() int { return a.size / 2 }

func (a *Analyser) process(_ *quantum, in, out []float64) {
	copy(out, in)
	a.history.Write(in)
}

// GetByteFrequencyData writes the current smoothed spectrum into dst as
// byte magnitudes scaled over the analyser's decibel range. At most
// FrequencyBinCount values are written.
func (a *Analyser) GetByteFrequencyData(dst []byte) {
	a.history.ReadInto(a.frame)
	for i := range a.frame {
		a.frame[i] *= a.window[i]
	}
	a.forward(a.spec, a.frame)

	bins := min(len(dst), len(a.smoothed))
	scale := 255 / (a.maxDB - a.minDB)
	n := float64(a.size)
	for k := range len(a.smoothed) {
		mag := cmplx.Abs(a.spec[k]) / n
		s := a.smoothing*a.smoothed[k] + (1-a.smoothing)*mag
		if math.IsNaN(s) || math.IsInf(s, 0) {
			s = 0
		}
		a.smoothed[k] = s
		if k >= bins {
			continue
		}

		v := scale * (toDecibels(s) - a.minDB)
		switch {
		case v < 0:
			dst[k] = 0
		case v > 255:
			dst[k] = 255
		default:
			dst[k] = byte(v)
		}
	}
}

func toDecibels(v float64) float64 {
	if v <= 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(v)
}

func blackman(n int) []float64 {
	const a0, a1, a2 = 0.42, 0.5, 0.08
	w := make([]float64, n)
	for i := range n {
		x := float64(i) / float64(n)
		w[i] = a0 - a1*math.Cos(2*math.Pi*x) + a2*math.Cos(4*math.Pi*x)
	}
	return w
}
