package visualizer

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/olivier-w/sonance/internal/fx"
	"github.com/olivier-w/sonance/internal/persona"
)

const (
	defaultFPS     = 60
	resizeDebounce = 100 * time.Millisecond

	fieldBarWidth   = 2
	spectrumOpacity = 0.8
	mirrorOpacity   = 0.4
)

// Source supplies the frequency tap; it may return nil while audio is
// unavailable.
type Source interface {
	FrequencyTap() fx.FrequencyTap
}

// Settings are the externally owned inputs to the renderer.
type Settings struct {
	Tier    Tier
	Persona persona.Persona
	FPS     int
}

type frameMsg struct {
	gen uint64
	at  time.Time
}

type resizeMsg struct {
	seq    uint64
	width  int
	height int
}

// Renderer draws the live spectrum onto a Surface once per frame. It runs
// on the bubbletea loop: Attach returns the first frame command and Update
// keeps the loop going.
type Renderer struct {
	source   Source
	tier     Tier
	persona  persona.Persona
	interval time.Duration

	surface   Surface
	requested Surface
	attached  bool
	visible   bool
	frameGen  uint64
	resizeSeq uint64
	cancel    func()

	buf   []byte
	field barSprings

	scheduled int
	ticks     int
}

// NewRenderer creates a detached renderer.
func NewRenderer(src Source, s Settings) *Renderer {
	fps := s.FPS
	if fps <= 0 {
		fps = defaultFPS
	}
	return &Renderer{
		source:   src,
		tier:     s.Tier,
		persona:  s.Persona,
		interval: time.Second / time.Duration(fps),
		visible:  true,
		field:    newBarSprings(fps, 8.0, 0.6),
	}
}

// Attached reports whether a frame loop is active.
func (r *Renderer) Attached() bool { return r.attached }

// Tier returns the current performance tier.
func (r *Renderer) Tier() Tier { return r.tier }

// Attach binds the renderer to surface and schedules the first frame. On
// the low tier nothing is bound or scheduled; the surface is remembered so
// that leaving low can bind it later.
func (r *Renderer) Attach(surface Surface) tea.Cmd {
	r.requested = surface
	if r.tier == Low || r.attached {
		return nil
	}
	r.surface = surface
	r.attached = true
	r.frameGen++
	r.cancel = func() {
		r.frameGen++
		r.resizeSeq++
		r.attached = false
	}
	return r.nextFrame()
}

// Detach stops the frame loop and drops pending resizes.
func (r *Renderer) Detach() {
	if r.cancel == nil {
		return
	}
	cancel := r.cancel
	r.cancel = nil
	cancel()
}

// SetPersona changes the palette from the next frame on.
func (r *Renderer) SetPersona(p persona.Persona) {
	r.persona = p
}

// SetTier changes the performance tier. Moving to low detaches; leaving
// low attaches to the last requested surface.
func (r *Renderer) SetTier(t Tier) tea.Cmd {
	r.tier = t
	if t == Low {
		r.Detach()
		return nil
	}
	if !r.attached && r.requested != nil {
		return r.Attach(r.requested)
	}
	return nil
}

func (r *Renderer) nextFrame() tea.Cmd {
	gen := r.frameGen
	r.scheduled++
	return tea.Tick(r.interval, func(t time.Time) tea.Msg {
		return frameMsg{gen: gen, at: t}
	})
}

// Update handles frame, resize and focus messages.
func (r *Renderer) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case frameMsg:
		if !r.attached || msg.gen != r.frameGen {
			return nil
		}
		r.tick()
		return r.nextFrame()

	case tea.WindowSizeMsg:
		if !r.attached {
			return nil
		}
		r.resizeSeq++
		seq, w, h := r.resizeSeq, msg.Width, msg.Height
		return tea.Tick(resizeDebounce, func(time.Time) tea.Msg {
			return resizeMsg{seq: seq, width: w, height: h}
		})

	case resizeMsg:
		if !r.attached || msg.seq != r.resizeSeq || r.surface == nil {
			return nil
		}
		r.surface.Resize(msg.width, msg.height)

	case tea.FocusMsg:
		r.visible = true

	case tea.BlurMsg:
		r.visible = false
	}
	return nil
}

func (r *Renderer) tick() {
	r.ticks++
	if !r.visible || r.surface == nil || r.source == nil {
		return
	}
	tap := r.source.FrequencyTap()
	if tap == nil {
		return
	}
	if n := tap.FrequencyBinCount(); len(r.buf) != n {
		r.buf = make([]byte, n)
	}
	tap.GetByteFrequencyData(r.buf)

	r.surface.Clear()
	if !hasSignal(r.buf) {
		return
	}
	w, h := r.surface.Size()
	if w <= 0 || h <= 0 {
		return
	}
	if r.persona == persona.Default {
		r.drawField(w, h)
	} else {
		r.drawSpectrum(w, h)
	}
}

// hasSignal is a cheap presence check on a few low bins.
func hasSignal(data []byte) bool {
	for _, i := range [...]int{0, 10, 20} {
		if i < len(data) && data[i] > 0 {
			return true
		}
	}
	return false
}

// drawField paints smoothed translucent bars across the width from the
// lower half of the spectrum.
func (r *Renderer) drawField(w, h int) {
	bars := max(w/fieldBarWidth, 1)
	r.field.fit(bars)
	bins := max(len(r.buf)/2, 1)
	alpha := r.tier.fieldOpacity()
	white := colorful.Color{R: 1, G: 1, B: 1}

	for i := range bars {
		target := float64(r.buf[i*bins/bars]) / 255 * float64(h)
		bh := min(int(r.field.ease(i, target)+0.5), h)
		if bh <= 0 {
			continue
		}
		r.surface.FillRect(i*fieldBarWidth, h-bh, fieldBarWidth, bh, white, alpha)
	}
}

// drawSpectrum paints one bar per column in the persona's color, rising
// from the bottom edge and mirrored at half height from the top.
func (r *Renderer) drawSpectrum(w, h int) {
	base := fromRGB(r.persona.Color())
	bins := len(r.buf)
	for x := range w {
		v := r.buf[x*bins/w]
		bh := int(float64(v) / 255 * float64(h))
		if bh <= 0 {
			continue
		}
		c := magnitudeColor(base, v)
		r.surface.FillRect(x, h-bh, 1, bh, c, spectrumOpacity)
		if mirror := bh / 2; mirror > 0 {
			r.surface.FillRect(x, 0, 1, mirror, c, mirrorOpacity)
		}
	}
}
