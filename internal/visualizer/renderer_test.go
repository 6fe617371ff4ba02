package visualizer

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/olivier-w/sonance/internal/fx"
	"github.com/olivier-w/sonance/internal/persona"
)

type fakeTap struct {
	data  []byte
	reads int
}

func (f *fakeTap) FrequencyBinCount() int { return len(f.data) }

func (f *fakeTap) GetByteFrequencyData(dst []byte) {
	f.reads++
	copy(dst, f.data)
}

type fakeSource struct {
	tap fx.FrequencyTap
}

func (s *fakeSource) FrequencyTap() fx.FrequencyTap { return s.tap }

type fill struct {
	x, y, w, h int
	alpha      float64
}

type fakeSurface struct {
	width, height int
	clears        int
	fills         []fill
	resizes       int
}

func (s *fakeSurface) Size() (int, int) { return s.width, s.height }

func (s *fakeSurface) Resize(w, h int) {
	s.resizes++
	s.width, s.height = w, h
}

func (s *fakeSurface) Clear() {
	s.clears++
	s.fills = s.fills[:0]
}

func (s *fakeSurface) FillRect(x, y, w, h int, _ colorful.Color, alpha float64) {
	s.fills = append(s.fills, fill{x, y, w, h, alpha})
}

func loudTap(n int) *fakeTap {
	data := make([]byte, n)
	for i := range data {
		data[i] = 200
	}
	return &fakeTap{data: data}
}

// frame delivers the frame message the renderer is currently waiting for.
func frame(r *Renderer) tea.Cmd {
	return r.Update(frameMsg{gen: r.frameGen, at: time.Now()})
}

func TestAttachOnLowTierIsHardNoOp(t *testing.T) {
	tap := loudTap(128)
	r := NewRenderer(&fakeSource{tap: tap}, Settings{Tier: Low})
	surface := &fakeSurface{width: 40, height: 10}

	if cmd := r.Attach(surface); cmd != nil {
		t.Fatal("expected no frame command on low tier")
	}
	if r.Attached() || r.scheduled != 0 {
		t.Fatalf("expected nothing scheduled, attached=%v scheduled=%d", r.Attached(), r.scheduled)
	}
	if cmd := frame(r); cmd != nil {
		t.Fatal("expected frame to be ignored while detached")
	}
	if surface.clears != 0 || len(surface.fills) != 0 || tap.reads != 0 {
		t.Fatalf("expected no drawing, clears=%d fills=%d reads=%d", surface.clears, len(surface.fills), tap.reads)
	}
}

func TestTickWithoutSignalClearsButDoesNotFill(t *testing.T) {
	tap := loudTap(128)
	tap.data[0], tap.data[10], tap.data[20] = 0, 0, 0
	r := NewRenderer(&fakeSource{tap: tap}, Settings{Tier: High})
	surface := &fakeSurface{width: 40, height: 10}

	if r.Attach(surface) == nil {
		t.Fatal("expected a frame command")
	}
	if frame(r) == nil {
		t.Fatal("expected the loop to reschedule")
	}
	if surface.clears != 1 {
		t.Fatalf("expected one clear, got %d", surface.clears)
	}
	if len(surface.fills) != 0 {
		t.Fatalf("expected no fills, got %d", len(surface.fills))
	}
	if r.ticks != 1 {
		t.Fatalf("expected tick to count, got %d", r.ticks)
	}
}

func TestHiddenTerminalReschedulesWithoutDrawing(t *testing.T) {
	tap := loudTap(128)
	r := NewRenderer(&fakeSource{tap: tap}, Settings{Tier: High})
	surface := &fakeSurface{width: 40, height: 10}
	r.Attach(surface)
	r.Update(tea.BlurMsg{})

	if frame(r) == nil {
		t.Fatal("expected the loop to reschedule while hidden")
	}
	if surface.clears != 0 || tap.reads != 0 {
		t.Fatalf("expected no drawing while hidden, clears=%d reads=%d", surface.clears, tap.reads)
	}

	r.Update(tea.FocusMsg{})
	frame(r)
	if surface.clears != 1 || len(surface.fills) == 0 {
		t.Fatalf("expected drawing after focus, clears=%d fills=%d", surface.clears, len(surface.fills))
	}
}

func TestMissingTapSkipsTick(t *testing.T) {
	src := &fakeSource{}
	r := NewRenderer(src, Settings{Tier: High})
	surface := &fakeSurface{width: 40, height: 10}
	r.Attach(surface)

	if frame(r) == nil {
		t.Fatal("expected the loop to keep running without a tap")
	}
	if surface.clears != 0 {
		t.Fatalf("expected no clear without a tap, got %d", surface.clears)
	}

	src.tap = loudTap(128)
	frame(r)
	if surface.clears != 1 {
		t.Fatalf("expected drawing once the tap appears, got %d clears", surface.clears)
	}
}

func TestDetachDropsPendingFrameAndResize(t *testing.T) {
	r := NewRenderer(&fakeSource{tap: loudTap(128)}, Settings{Tier: High})
	surface := &fakeSurface{width: 40, height: 10}
	r.Attach(surface)

	stale := frameMsg{gen: r.frameGen}
	if r.Update(tea.WindowSizeMsg{Width: 80, Height: 24}) == nil {
		t.Fatal("expected a debounced resize command")
	}
	pending := resizeMsg{seq: r.resizeSeq, width: 80, height: 24}

	r.Detach()
	r.Detach()

	if r.Attached() {
		t.Fatal("expected renderer to be detached")
	}
	if cmd := r.Update(stale); cmd != nil {
		t.Fatal("expected stale frame to stop the loop")
	}
	r.Update(pending)
	if surface.clears != 0 || surface.resizes != 0 {
		t.Fatalf("expected no work after detach, clears=%d resizes=%d", surface.clears, surface.resizes)
	}
}

func TestDetachCancelsExactlyOnce(t *testing.T) {
	r := NewRenderer(&fakeSource{}, Settings{Tier: High})
	r.Attach(&fakeSurface{})
	calls := 0
	inner := r.cancel
	r.cancel = func() {
		calls++
		inner()
	}

	r.Detach()
	r.Detach()
	if calls != 1 {
		t.Fatalf("expected cancel once, got %d", calls)
	}
}

func TestResizeIsDebounced(t *testing.T) {
	r := NewRenderer(&fakeSource{}, Settings{Tier: High})
	surface := &fakeSurface{width: 10, height: 5}
	r.Attach(surface)

	r.Update(tea.WindowSizeMsg{Width: 50, Height: 20})
	first := resizeMsg{seq: r.resizeSeq, width: 50, height: 20}
	r.Update(tea.WindowSizeMsg{Width: 60, Height: 30})
	last := resizeMsg{seq: r.resizeSeq, width: 60, height: 30}

	r.Update(first)
	if surface.resizes != 0 {
		t.Fatal("expected superseded resize to be dropped")
	}
	r.Update(last)
	if surface.resizes != 1 || surface.width != 60 || surface.height != 30 {
		t.Fatalf("expected one resize to 60x30, got %d to %dx%d", surface.resizes, surface.width, surface.height)
	}
}

func TestSnapshotBufferIsReused(t *testing.T) {
	tap := loudTap(128)
	r := NewRenderer(&fakeSource{tap: tap}, Settings{Tier: High})
	r.Attach(&fakeSurface{width: 20, height: 8})

	frame(r)
	first := &r.buf[0]
	frame(r)
	if &r.buf[0] != first {
		t.Fatal("expected the snapshot buffer to be reused")
	}

	tap.data = append(tap.data, make([]byte, 128)...)
	for i := range tap.data {
		tap.data[i] = 100
	}
	frame(r)
	if len(r.buf) != 256 {
		t.Fatalf("expected buffer resized to 256, got %d", len(r.buf))
	}
}

func TestDefaultPersonaFieldOpacityFollowsTier(t *testing.T) {
	for _, tc := range []struct {
		tier  Tier
		alpha float64
	}{
		{Balanced, 0.25},
		{High, 0.5},
	} {
		r := NewRenderer(&fakeSource{tap: loudTap(128)}, Settings{Tier: tc.tier, Persona: persona.Default})
		surface := &fakeSurface{width: 20, height: 8}
		r.Attach(surface)
		// The springs start at rest; give them time to rise.
		for range 30 {
			frame(r)
		}

		if len(surface.fills) == 0 {
			t.Fatalf("%s: expected fills", tc.tier)
		}
		for _, f := range surface.fills {
			if f.alpha != tc.alpha {
				t.Fatalf("%s: expected alpha %.2f, got %.2f", tc.tier, tc.alpha, f.alpha)
			}
			if f.w != fieldBarWidth {
				t.Fatalf("%s: expected bar width %d, got %d", tc.tier, fieldBarWidth, f.w)
			}
		}
	}
}

func TestPersonaSpectrumIsMirrored(t *testing.T) {
	r := NewRenderer(&fakeSource{tap: loudTap(128)}, Settings{Tier: High, Persona: persona.Neon})
	surface := &fakeSurface{width: 16, height: 10}
	r.Attach(surface)
	frame(r)

	// 200/255 of 10 rows is 7; mirrored at 3 from the top.
	if len(surface.fills) != 32 {
		t.Fatalf("expected two fills per column, got %d", len(surface.fills))
	}
	bottom, top := surface.fills[0], surface.fills[1]
	if bottom.y != 3 || bottom.h != 7 || bottom.alpha != spectrumOpacity {
		t.Fatalf("unexpected bottom bar %+v", bottom)
	}
	if top.y != 0 || top.h != 3 || top.alpha != mirrorOpacity {
		t.Fatalf("unexpected mirrored bar %+v", top)
	}
}

func TestSetTierToLowDetachesAndBack(t *testing.T) {
	r := NewRenderer(&fakeSource{}, Settings{Tier: High})
	surface := &fakeSurface{}
	r.Attach(surface)

	if cmd := r.SetTier(Low); cmd != nil || r.Attached() {
		t.Fatal("expected low tier to detach")
	}
	if cmd := r.SetTier(Balanced); cmd == nil || !r.Attached() {
		t.Fatal("expected leaving low tier to re-attach")
	}
}

func TestLeavingLowTierAttachesRequestedSurface(t *testing.T) {
	tap := loudTap(128)
	r := NewRenderer(&fakeSource{tap: tap}, Settings{Tier: Low})
	surface := &fakeSurface{width: 20, height: 8}

	if cmd := r.Attach(surface); cmd != nil {
		t.Fatal("expected no frame command on low tier")
	}
	if r.surface != nil {
		t.Fatal("expected no surface bound on low tier")
	}

	if cmd := r.SetTier(High); cmd == nil {
		t.Fatal("expected a frame command after leaving low tier")
	}
	if !r.Attached() || r.scheduled != 1 {
		t.Fatalf("expected attached with one frame scheduled, attached=%v scheduled=%d", r.Attached(), r.scheduled)
	}
	frame(r)
	if surface.clears != 1 || len(surface.fills) == 0 {
		t.Fatalf("expected drawing on the requested surface, clears=%d fills=%d", surface.clears, len(surface.fills))
	}
}
