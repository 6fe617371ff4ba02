package fx

import "math"

const (
	curveSamples = 44100
	curveAmount  = 20
)

// DistortionCurve builds an n-point wave shaping curve over [-1, 1]:
// (3+k)·x·k·(π/180) / (π + k·|x|).
func DistortionCurve(k float64, n int) []float64 {
	const deg = math.Pi / 180
	curve := make([]float64, n)
	for i := range curve {
		x := float64(i)*2/float64(n) - 1
		curve[i] = (3 + k) * x * k * deg / (math.Pi + k*math.Abs(x))
	}
	return curve
}
