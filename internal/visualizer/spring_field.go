package visualizer

import "github.com/charmbracelet/harmonica"

// barSprings eases a row of bar heights toward per-frame targets.
type barSprings struct {
	spring harmonica.Spring
	height []float64
	vel    []float64
}

func newBarSprings(fps int, angularFreq, damping float64) barSprings {
	if fps <= 0 {
		fps = defaultFPS
	}
	return barSprings{spring: harmonica.NewSpring(harmonica.FPS(fps), angularFreq, damping)}
}

// fit sets the bar count, carrying over heights of surviving bars.
func (s *barSprings) fit(n int) {
	if len(s.height) == n {
		return
	}
	height := make([]float64, n)
	vel := make([]float64, n)
	copy(height, s.height)
	copy(vel, s.vel)
	s.height, s.vel = height, vel
}

// ease advances bar i one frame toward target and returns its height,
// never below zero.
func (s *barSprings) ease(i int, target float64) float64 {
	h, v := s.spring.Update(s.height[i], s.vel[i], target)
	if h < 0 {
		h, v = 0, 0
	}
	s.height[i], s.vel[i] = h, v
	return h
}
