package fx

import "github.com/olivier-w/sonance/internal/synth"

// Curve is the interpolation used to reach a breakpoint from the previous one.
type Curve uint8

const (
	Step Curve = iota
	Linear
	Exponential
)

// Breakpoint is one point of an envelope, At seconds after the voice starts.
// The first breakpoint of an envelope is always applied as a Step.
type Breakpoint struct {
	At    float64
	Value float64
	Curve Curve
}

// Modulator is a low-frequency oscillator briefly driving a voice's pitch.
type Modulator struct {
	Wave     synth.Waveform
	Rate     float64 // Hz
	Depth    float64 // Hz of pitch deviation
	Duration float64
}

// Voice is one oscillator of an effect: oscillator, optional distortion,
// gain envelope, into the master bus.
type Voice struct {
	Wave     synth.Waveform
	Offset   float64 // delay from the trigger
	Duration float64
	Freq     []Breakpoint
	Gain     []Breakpoint
	Distort  bool
	Glitch   *Modulator
}

// End is the time, relative to the trigger, at which the voice stops.
func (v Voice) End() float64 { return v.Offset + v.Duration }

// EffectRecipe describes the sound for one (mode, event) pair.
type EffectRecipe struct {
	Voices []Voice
}

// Duration is the time from trigger until the last voice stops.
func (r EffectRecipe) Duration() float64 {
	var d float64
	for _, v := range r.Voices {
		d = max(d, v.End())
	}
	return d
}

type recipeKey struct {
	mode  Mode
	event Event
}

// Recipe looks up the effect for an event in the given mode.
func Recipe(mode Mode, ev Event) (EffectRecipe, bool) {
	r, ok := recipes[recipeKey{mode, ev}]
	return r, ok
}

func sweep(from, to, over float64, c Curve) []Breakpoint {
	return []Breakpoint{{At: 0, Value: from}, {At: over, Value: to, Curve: c}}
}

func tone(wave synth.Waveform, dur float64, freq, gain []Breakpoint) Voice {
	return Voice{Wave: wave, Duration: dur, Freq: freq, Gain: gain}
}

func hold(freq float64) []Breakpoint {
	return []Breakpoint{{At: 0, Value: freq}}
}

func arpeggioNote(freq, offset float64) Voice {
	return delayed(distorted(tone(synth.Sawtooth, 0.2, hold(freq), sweep(0.15, 0.01, 0.2, Exponential))), offset)
}

func distorted(v Voice) Voice {
	v.Distort = true
	return v
}

func delayed(v Voice, offset float64) Voice {
	v.Offset = offset
	return v
}

var recipes = map[recipeKey]EffectRecipe{
	// Standard: soft sine-family tones.
	{Standard, Click}: {Voices: []Voice{
		tone(synth.Sine, 0.1, sweep(600, 300, 0.1, Exponential), sweep(0.5, 0.01, 0.1, Exponential)),
	}},
	{Standard, Hover}: {Voices: []Voice{
		tone(synth.Sine, 0.05, sweep(800, 900, 0.05, Linear), sweep(0.05, 0.001, 0.05, Exponential)),
	}},
	{Standard, Success}: {Voices: []Voice{
		tone(synth.Sine, 0.3,
			[]Breakpoint{{At: 0, Value: 440}, {At: 0.1, Value: 554.37, Curve: Step}},
			sweep(0.3, 0.01, 0.3, Exponential)),
	}},
	{Standard, Error}: {Voices: []Voice{
		tone(synth.Triangle, 0.2, sweep(150, 100, 0.2, Linear), sweep(0.3, 0.01, 0.2, Linear)),
	}},
	{Standard, Toggle}: {Voices: []Voice{
		tone(synth.Sine, 0.08, sweep(300, 500, 0.08, Linear), sweep(0.25, 0.01, 0.08, Exponential)),
	}},
	{Standard, Light}: {Voices: []Voice{
		tone(synth.Sine, 0.05, sweep(1200, 1800, 0.05, Exponential), sweep(0.1, 0.001, 0.05, Exponential)),
	}},
	{Standard, Secret}: {Voices: []Voice{
		tone(synth.Triangle, 0.4,
			[]Breakpoint{{At: 0, Value: 523.25}, {At: 0.1, Value: 659.25}, {At: 0.2, Value: 783.99}},
			sweep(0.2, 0.01, 0.4, Exponential)),
	}},
	{Standard, Heavy}: {Voices: []Voice{
		tone(synth.Sine, 0.3, sweep(150, 40, 0.3, Exponential), sweep(0.6, 0.01, 0.3, Exponential)),
	}},

	// Aggressive: raw waveforms, most through the distortion stage.
	{Aggressive, Click}: {Voices: []Voice{
		distorted(tone(synth.Sawtooth, 0.1, sweep(800, 50, 0.1, Exponential), sweep(0.3, 0.01, 0.1, Exponential))),
	}},
	{Aggressive, Hover}: {Voices: []Voice{
		tone(synth.Square, 0.05, sweep(200, 100, 0.05, Linear), sweep(0.05, 0.001, 0.05, Exponential)),
	}},
	{Aggressive, Success}: {Voices: []Voice{
		arpeggioNote(440, 0),
		arpeggioNote(554.37, 0.08),
		arpeggioNote(698.46, 0.16),
	}},
	{Aggressive, Error}: {Voices: []Voice{
		func() Voice {
			v := distorted(tone(synth.Sawtooth, 0.3, sweep(100, 50, 0.3, Linear), sweep(0.4, 0.01, 0.3, Exponential)))
			v.Glitch = &Modulator{Wave: synth.Square, Rate: 30, Depth: 500, Duration: 0.15}
			return v
		}(),
	}},
	{Aggressive, Toggle}: {Voices: []Voice{
		distorted(tone(synth.Square, 0.08, sweep(150, 80, 0.08, Exponential), sweep(0.2, 0.01, 0.08, Exponential))),
	}},
	{Aggressive, Light}: {Voices: []Voice{
		tone(synth.Square, 0.03, sweep(2000, 1000, 0.03, Exponential), sweep(0.08, 0.001, 0.03, Exponential)),
	}},
	{Aggressive, Secret}: {Voices: []Voice{
		distorted(tone(synth.Sawtooth, 0.4, sweep(60, 1200, 0.4, Exponential), sweep(0.25, 0.01, 0.4, Linear))),
	}},
	{Aggressive, Heavy}: {Voices: []Voice{
		distorted(tone(synth.Sawtooth, 0.5, sweep(80, 20, 0.5, Exponential), sweep(0.7, 0.01, 0.5, Exponential))),
	}},
}
