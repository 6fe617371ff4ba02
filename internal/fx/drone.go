package fx

import "github.com/olivier-w/sonance/internal/synth"

const (
	droneLevel        = 0.05
	droneTimeConstant = 1.0
)

// droneVoicing is the set of drone parameters a mode retunes toward.
type droneVoicing struct {
	freqA, freqB float64
	filter       synth.FilterType
	cutoff       float64
	resonance    float64
	lfoRate      float64
	lfoDepth     float64
}

var droneVoicings = map[Mode]droneVoicing{
	Standard: {
		freqA: 55, freqB: 55.5,
		filter: synth.Lowpass, cutoff: 200, resonance: 1,
		lfoRate: 0.1, lfoDepth: 50,
	},
	Aggressive: {
		freqA: 40, freqB: 41.5,
		filter: synth.Bandpass, cutoff: 300, resonance: 5,
		lfoRate: 0.5, lfoDepth: 150,
	},
}

// drone is the ambient bed: two detuned oscillators into a shared filter
// whose cutoff is swept by an LFO, out through a fixed low gain. It is
// built whole and never torn down.
type drone struct {
	oscA    *synth.Oscillator
	oscB    *synth.Oscillator
	filter  *synth.BiquadFilter
	lfo     *synth.Oscillator
	lfoGain *synth.Gain
	out     *synth.Gain
}

func startDrone(ctx *synth.Context, dst synth.Node, v droneVoicing) *drone {
	d := &drone{
		oscA:    ctx.NewOscillator(synth.Sawtooth),
		oscB:    ctx.NewOscillator(synth.Sawtooth),
		filter:  ctx.NewBiquadFilter(),
		lfo:     ctx.NewOscillator(synth.Sine),
		lfoGain: ctx.NewGain(),
		out:     ctx.NewGain(),
	}
	d.oscA.Frequency().SetValue(v.freqA)
	d.oscB.Frequency().SetValue(v.freqB)
	d.filter.SetType(v.filter)
	d.filter.Frequency().SetValue(v.cutoff)
	d.filter.Q().SetValue(v.resonance)
	d.lfo.Frequency().SetValue(v.lfoRate)
	d.lfoGain.Gain().SetValue(v.lfoDepth)
	d.out.Gain().SetValue(droneLevel)

	d.oscA.Connect(d.filter)
	d.oscB.Connect(d.filter)
	d.lfo.Connect(d.lfoGain)
	d.lfoGain.ConnectParam(d.filter.Frequency())
	d.filter.Connect(d.out)
	d.out.Connect(dst)

	now := ctx.CurrentTime()
	d.oscA.Start(now)
	d.oscB.Start(now)
	d.lfo.Start(now)
	return d
}

// retune glides every drone parameter toward v. Node identities and
// connections are untouched.
func (d *drone) retune(v droneVoicing, now float64) {
	d.oscA.Frequency().SetTargetAtTime(v.freqA, now, droneTimeConstant)
	d.oscB.Frequency().SetTargetAtTime(v.freqB, now, droneTimeConstant)
	d.filter.SetType(v.filter)
	d.filter.Frequency().SetTargetAtTime(v.cutoff, now, droneTimeConstant)
	d.filter.Q().SetTargetAtTime(v.resonance, now, droneTimeConstant)
	d.lfo.Frequency().SetTargetAtTime(v.lfoRate, now, droneTimeConstant)
	d.lfoGain.Gain().SetTargetAtTime(v.lfoDepth, now, droneTimeConstant)
}
