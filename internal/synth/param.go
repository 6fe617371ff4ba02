package synth

import (
	"math"
	"sort"
)

// EventKind identifies an automation event type.
type EventKind uint8

const (
	SetValue EventKind = iota
	LinearRamp
	ExponentialRamp
	SetTarget
)

func (k EventKind) String() string {
	switch k {
	case LinearRamp:
		return "linear"
	case ExponentialRamp:
		return "exponential"
	case SetTarget:
		return "target"
	default:
		return "set"
	}
}

// Event is one entry on a parameter's automation timeline. Ramps end at
// Time; SetTarget starts at Time and approaches Value with TimeConstant.
type Event struct {
	Kind         EventKind
	Value        float64
	Time         float64
	TimeConstant float64
}

// Param is an automatable value evaluated per sample. Connected nodes are
// summed onto the automated value.
type Param struct {
	ctx    *Context
	value  float64
	events []Event
	inputs []Node
	buf    []float64
}

func newParam(ctx *Context, value float64) *Param {
	return &Param{ctx: ctx, value: value, buf: make([]float64, Quantum)}
}

// Value returns the automated value at the context's current time,
// excluding connected inputs.
func (p *Param) Value() float64 {
	p.ctx.mu.Lock()
	defer p.ctx.mu.Unlock()
	return evaluate(p.events, p.value, p.ctx.now())
}

// SetValue sets the value immediately and cancels all automation.
func (p *Param) SetValue(v float64) {
	p.ctx.mu.Lock()
	defer p.ctx.mu.Unlock()
	p.value = v
	p.events = nil
}

// SetValueAtTime steps to v at time t.
func (p *Param) SetValueAtTime(v, t float64) *Param {
	return p.schedule(Event{Kind: SetValue, Value: v, Time: t})
}

// LinearRampToValueAtTime ramps linearly from the previous event to v at t.
func (p *Param) LinearRampToValueAtTime(v, t float64) *Param {
	return p.schedule(Event{Kind: LinearRamp, Value: v, Time: t})
}

// ExponentialRampToValueAtTime ramps geometrically from the previous event
// to v at t. If the endpoints are zero or differ in sign the previous value
// is held until t.
func (p *Param) ExponentialRampToValueAtTime(v, t float64) *Param {
	return p.schedule(Event{Kind: ExponentialRamp, Value: v, Time: t})
}

// SetTargetAtTime approaches target exponentially from time t with the
// given time constant in seconds.
func (p *Param) SetTargetAtTime(target, t, timeConstant float64) *Param {
	if timeConstant <= 0 {
		return p.SetValueAtTime(target, t)
	}
	return p.schedule(Event{Kind: SetTarget, Value: target, Time: t, TimeConstant: timeConstant})
}

// Events returns a copy of the pending automation timeline.
func (p *Param) Events() []Event {
	p.ctx.mu.Lock()
	defer p.ctx.mu.Unlock()
	out := make([]Event, len(p.events))
	copy(out, p.events)
	return out
}

func (p *Param) schedule(ev Event) *Param {
	p.ctx.mu.Lock()
	defer p.ctx.mu.Unlock()

	p.prune(p.ctx.now())
	i := sort.Search(len(p.events), func(i int) bool {
		return p.events[i].Time > ev.Time
	})
	p.events = append(p.events, Event{})
	copy(p.events[i+1:], p.events[i:])
	p.events[i] = ev
	return p
}

// prune folds events that can no longer affect values at or after now into
// the base value. The most recent started event is kept.
func (p *Param) prune(now float64) {
	k := -1
	for i, ev := range p.events {
		if ev.Time > now {
			break
		}
		k = i
	}
	if k < 1 {
		return
	}
	p.value = evaluate(p.events[:k], p.value, p.events[k].Time)
	p.events = append(p.events[:0], p.events[k:]...)
}

// values renders the parameter for quantum q. Caller holds the lock.
func (p *Param) values(q *quantum) []float64 {
	if len(p.events) == 0 {
		for i := range p.buf {
			p.buf[i] = p.value
		}
	} else {
		for i := range p.buf {
			p.buf[i] = evaluate(p.events, p.value, q.time(i))
		}
	}
	for _, in := range p.inputs {
		b := in.graph().pull(q)
		for i := range p.buf {
			p.buf[i] += b[i]
		}
	}
	return p.buf
}

// evaluate computes the automated value at t from a sorted timeline.
func evaluate(events []Event, base, t float64) float64 {
	v, vt := base, 0.0
	for i, ev := range events {
		if ev.Time > t {
			switch ev.Kind {
			case LinearRamp:
				return linearAt(v, vt, ev.Value, ev.Time, t)
			case ExponentialRamp:
				return exponentialAt(v, vt, ev.Value, ev.Time, t)
			}
			return v
		}
		if ev.Kind == SetTarget {
			end := t
			if i+1 < len(events) && events[i+1].Time <= t {
				end = events[i+1].Time
			}
			v = ev.Value + (v-ev.Value)*math.Exp(-(end-ev.Time)/ev.TimeConstant)
			vt = end
			continue
		}
		v, vt = ev.Value, ev.Time
	}
	return v
}

func linearAt(v0, t0, v1, t1, t float64) float64 {
	if t1 <= t0 {
		return v1
	}
	return v0 + (v1-v0)*(t-t0)/(t1-t0)
}

func exponentialAt(v0, t0, v1, t1, t float64) float64 {
	if t1 <= t0 {
		return v1
	}
	if v0 == 0 || v1 == 0 || (v0 < 0) != (v1 < 0) {
		return v0
	}
	return v0 * math.Pow(v1/v0, (t-t0)/(t1-t0))
}
