package synth

import (
	"encoding/binary"
	"errors"
	"io"
	"math"
	"testing"
)

type stubSink struct {
	plays  int
	pauses int
}

func (s *stubSink) Play()  { s.plays++ }
func (s *stubSink) Pause() { s.pauses++ }

func TestNewContextStartsSuspended(t *testing.T) {
	sink := &stubSink{}
	ctx, err := NewContext(Options{Open: func(int, io.Reader) (Sink, error) { return sink, nil }})
	if err != nil {
		t.Fatalf("NewContext returned error: %v", err)
	}
	if ctx.State() != Suspended {
		t.Fatalf("expected suspended context, got %v", ctx.State())
	}
	if ctx.SampleRate() != DefaultSampleRate {
		t.Fatalf("expected default sample rate, got %v", ctx.SampleRate())
	}

	ctx.Resume()
	ctx.Resume()
	if sink.plays != 1 {
		t.Fatalf("expected one Play call, got %d", sink.plays)
	}
	ctx.Suspend()
	if sink.pauses != 1 || ctx.State() != Suspended {
		t.Fatalf("expected suspend to pause sink, pauses=%d state=%v", sink.pauses, ctx.State())
	}
}

func TestNewContextPropagatesOpenError(t *testing.T) {
	boom := errors.New("no device")
	_, err := NewContext(Options{Open: func(int, io.Reader) (Sink, error) { return nil, boom }})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped open error, got %v", err)
	}
}

func TestRenderAdvancesClockByQuantum(t *testing.T) {
	ctx := newOffline(t)
	ctx.Render(make([]float64, 1))
	want := float64(Quantum) / 44100
	if got := ctx.CurrentTime(); !approx(got, want, 1e-12) {
		t.Fatalf("expected clock %v, got %v", want, got)
	}
}

func TestOscillatorSilentOutsideWindowAndRetired(t *testing.T) {
	ctx := newOffline(t)
	osc := ctx.NewOscillator(Square)
	osc.Frequency().SetValue(100)
	osc.Connect(ctx.Destination())

	ended := 0
	osc.OnEnded(func() {
		ended++
		osc.Disconnect()
	})
	osc.Start(0.01)
	osc.Stop(0.02)

	buf := make([]float64, 4410) // 0.1s
	ctx.Render(buf)

	if buf[0] != 0 {
		t.Fatalf("expected silence before start, got %v", buf[0])
	}
	if buf[441+10] == 0 {
		t.Fatal("expected signal inside the start/stop window")
	}
	if buf[4000] != 0 {
		t.Fatalf("expected silence after stop, got %v", buf[4000])
	}
	if !osc.Ended() || ended != 1 {
		t.Fatalf("expected oscillator retired once, ended=%v calls=%d", osc.Ended(), ended)
	}
	if len(ctx.Sources()) != 0 {
		t.Fatalf("expected no live sources, got %d", len(ctx.Sources()))
	}
	if len(osc.Outputs()) != 0 {
		t.Fatal("expected ended callback to disconnect the oscillator")
	}
}

func TestOscillatorStartIsSingleUse(t *testing.T) {
	ctx := newOffline(t)
	osc := ctx.NewOscillator(Sine)
	osc.Start(0)
	osc.Start(1)
	if got := osc.StartTime(); got != 0 {
		t.Fatalf("expected first start time to win, got %v", got)
	}
	if len(ctx.Sources()) != 1 {
		t.Fatalf("expected one registered source, got %d", len(ctx.Sources()))
	}
}

func TestReadWritesInterleavedStereoFloat32(t *testing.T) {
	ctx := newOffline(t)
	g := ctx.NewGain()
	osc := ctx.NewOscillator(Square)
	osc.Frequency().SetValue(10)
	osc.Connect(g)
	g.Gain().SetValue(0.5)
	g.Connect(ctx.Destination())
	osc.Start(0)

	p := make([]byte, 16*bytesPerFrame+3)
	n, err := ctx.Read(p)
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if n != 16*bytesPerFrame {
		t.Fatalf("expected whole frames only, got %d bytes", n)
	}
	l := math.Float32frombits(binary.LittleEndian.Uint32(p[0:]))
	r := math.Float32frombits(binary.LittleEndian.Uint32(p[4:]))
	if l != 0.5 || r != 0.5 {
		t.Fatalf("expected both channels at 0.5, got %v/%v", l, r)
	}
}

func TestParamInputModulatesValue(t *testing.T) {
	ctx := newOffline(t)
	carrier := ctx.NewGain()
	carrier.Gain().SetValue(0)

	dc := ctx.NewOscillator(Square)
	dc.Frequency().SetValue(1)
	dc.Start(0)
	dc.ConnectParam(carrier.Gain())

	src := ctx.NewOscillator(Square)
	src.Frequency().SetValue(1)
	src.Start(0)
	src.Connect(carrier)
	carrier.Connect(ctx.Destination())

	buf := make([]float64, 8)
	ctx.Render(buf)
	if buf[1] != 1 {
		t.Fatalf("expected modulated gain of 1, got %v", buf[1])
	}
}
