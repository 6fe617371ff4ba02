package visualizer

import (
	"strings"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
	"github.com/olivier-w/sonance/internal/persona"
)

var (
	profileOnce sync.Once
	profile     termenv.Profile
)

func currentColorProfile() termenv.Profile {
	profileOnce.Do(func() {
		profile = termenv.EnvColorProfile()
	})
	return profile
}

func fromRGB(c persona.RGB) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// magnitudeColor brightens a persona color toward white with loudness.
func magnitudeColor(base colorful.Color, magnitude byte) colorful.Color {
	white := colorful.Color{R: 1, G: 1, B: 1}
	return base.BlendRgb(white, float64(magnitude)/255*0.5).Clamped()
}

// ansiState writes foreground color changes, skipping redundant ones.
type ansiState struct {
	profile termenv.Profile
	current string
}

func newANSIState(p termenv.Profile) ansiState {
	return ansiState{profile: p}
}

func (s *ansiState) set(sb *strings.Builder, c colorful.Color) {
	if s.profile == termenv.Ascii {
		return
	}
	seq := s.profile.FromColor(c).Sequence(false)
	if seq == "" || seq == s.current {
		return
	}
	sb.WriteString(termenv.CSI + seq + "m")
	s.current = seq
}

func (s *ansiState) reset(sb *strings.Builder) {
	if s.current == "" {
		return
	}
	sb.WriteString(termenv.CSI + termenv.ResetSeq + "m")
	s.current = ""
}
