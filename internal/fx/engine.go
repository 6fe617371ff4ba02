// Package fx is the feedback sound engine: one-shot effects for UI events,
// an ambient drone, and a frequency tap for visualizers. The audio graph is
// built lazily on first use and degrades to silent no-ops when no output
// device is available.
package fx

import (
	"io"
	"log"

	"github.com/olivier-w/sonance/internal/synth"
)

const (
	// BaselineLevel is the unmuted master gain.
	BaselineLevel    = 0.3
	muteTimeConstant = 0.1
)

// FrequencyTap exposes the latest spectral magnitudes of the master bus.
type FrequencyTap interface {
	FrequencyBinCount() int
	GetByteFrequencyData(dst []byte)
}

// Options configures an Engine.
type Options struct {
	// NewContext builds the audio pipeline. It is called at most once.
	NewContext func() (*synth.Context, error)
	// FFTSize of the frequency tap; zero selects synth.DefaultFFTSize.
	FFTSize int
	Logger  *log.Logger
}

// Engine owns the audio graph. Its methods are meant to be called from a
// single goroutine (the UI loop); the graph itself is safe to render from
// the device goroutine concurrently.
type Engine struct {
	newContext func() (*synth.Context, error)
	fftSize    int
	log        *log.Logger

	ctx      *synth.Context
	master   *synth.Gain
	analyser *synth.Analyser
	curve    []float64
	failed   bool

	muted      bool
	aggressive bool
	drone      *drone
}

// New returns an engine whose graph has not been built yet.
func New(opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	newContext := opts.NewContext
	if newContext == nil {
		newContext = func() (*synth.Context, error) {
			return synth.NewContext(synth.Options{Open: synth.OpenDevice})
		}
	}
	return &Engine{newContext: newContext, fftSize: opts.FFTSize, log: logger}
}

// EnsureGraph builds the pipeline and master stage on first call. A failed
// build is logged and leaves the engine permanently silent.
func (e *Engine) EnsureGraph() {
	if e.ctx != nil || e.failed {
		return
	}

	ctx, err := e.newContext()
	if err != nil {
		e.failed = true
		e.log.Printf("fx: audio unavailable, running silent: %v", err)
		return
	}
	analyser, err := ctx.NewAnalyser(e.fftSize)
	if err != nil {
		e.failed = true
		e.log.Printf("fx: frequency tap unavailable, running silent: %v", err)
		return
	}

	master := ctx.NewGain()
	if e.muted {
		master.Gain().SetValue(0)
	} else {
		master.Gain().SetValue(BaselineLevel)
	}
	master.Connect(analyser)
	analyser.Connect(ctx.Destination())

	e.curve = DistortionCurve(curveAmount, curveSamples)
	e.ctx, e.master, e.analyser = ctx, master, analyser
}

// Available reports whether the pipeline has been built successfully.
func (e *Engine) Available() bool { return e.ctx != nil }

// Muted reports the mute flag.
func (e *Engine) Muted() bool { return e.muted }

// Aggressive reports the current mode flag.
func (e *Engine) Aggressive() bool { return e.aggressive }

// Level returns the master gain at the current pipeline time, or zero
// before the pipeline exists.
func (e *Engine) Level() float64 {
	if e.master == nil {
		return 0
	}
	return e.master.Gain().Value()
}

// ToggleMute flips the mute flag, gliding the master gain toward silence or
// back to the baseline, and returns the new state.
func (e *Engine) ToggleMute() bool {
	e.muted = !e.muted
	if e.master != nil {
		target := BaselineLevel
		if e.muted {
			target = 0
		}
		e.master.Gain().SetTargetAtTime(target, e.ctx.CurrentTime(), muteTimeConstant)
	}
	return e.muted
}

// SetMode switches between standard and aggressive sound sets. The drone
// starts at the mode's voicing on first use; later switches glide to it.
func (e *Engine) SetMode(aggressive bool) {
	e.aggressive = aggressive
	e.EnsureGraph()
	if e.ctx == nil {
		return
	}
	v := droneVoicings[modeOf(aggressive)]
	if e.drone == nil {
		e.drone = startDrone(e.ctx, e.master, v)
		return
	}
	e.drone.retune(v, e.ctx.CurrentTime())
}

// Play schedules the one-shot sound for ev in the current mode. It does
// nothing while muted or when audio is unavailable.
func (e *Engine) Play(ev Event) {
	e.EnsureGraph()
	if e.muted || e.ctx == nil {
		return
	}
	if e.ctx.State() == synth.Suspended {
		e.ctx.Resume()
	}

	recipe, ok := Recipe(modeOf(e.aggressive), ev)
	if !ok {
		return
	}
	now := e.ctx.CurrentTime()
	for _, v := range recipe.Voices {
		e.schedule(v, now)
	}
}

// FrequencyTap returns the master bus analyser, or nil before the pipeline
// exists.
func (e *Engine) FrequencyTap() FrequencyTap {
	if e.analyser == nil {
		return nil
	}
	return e.analyser
}

// schedule builds a single-use voice subgraph and retires it once the
// oscillator stops.
func (e *Engine) schedule(v Voice, now float64) {
	start := now + v.Offset
	osc := e.ctx.NewOscillator(v.Wave)
	amp := e.ctx.NewGain()
	applyEnvelope(osc.Frequency(), v.Freq, start)
	applyEnvelope(amp.Gain(), v.Gain, start)

	nodes := []synth.Node{osc, amp}
	if v.Distort {
		shaper := e.ctx.NewWaveShaper()
		shaper.SetCurve(e.curve)
		osc.Connect(shaper)
		shaper.Connect(amp)
		nodes = append(nodes, shaper)
	} else {
		osc.Connect(amp)
	}
	amp.Connect(e.master)

	if m := v.Glitch; m != nil {
		lfo := e.ctx.NewOscillator(m.Wave)
		lfo.Frequency().SetValue(m.Rate)
		depth := e.ctx.NewGain()
		depth.Gain().SetValue(m.Depth)
		lfo.Connect(depth)
		depth.ConnectParam(osc.Frequency())
		lfo.OnEnded(func() {
			lfo.Disconnect()
			depth.Disconnect()
		})
		lfo.Start(start)
		lfo.Stop(start + m.Duration)
	}

	osc.OnEnded(func() {
		for _, n := range nodes {
			n.Disconnect()
		}
	})
	osc.Start(start)
	osc.Stop(start + v.Duration)
}

func applyEnvelope(p *synth.Param, points []Breakpoint, start float64) {
	for i, bp := range points {
		t := start + bp.At
		switch {
		case i == 0 || bp.Curve == Step:
			p.SetValueAtTime(bp.Value, t)
		case bp.Curve == Linear:
			p.LinearRampToValueAtTime(bp.Value, t)
		default:
			p.ExponentialRampToValueAtTime(bp.Value, t)
		}
	}
}
