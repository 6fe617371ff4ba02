package visualizer

import (
	"fmt"
	"strings"
)

// Tier is the performance setting that gates rendering cost.
type Tier uint8

const (
	Low Tier = iota
	Balanced
	High
)

func (t Tier) String() string {
	switch t {
	case Low:
		return "low"
	case Balanced:
		return "balanced"
	default:
		return "high"
	}
}

// Next cycles low → balanced → high → low.
func (t Tier) Next() Tier {
	return (t + 1) % (High + 1)
}

// fieldOpacity is the bar opacity of the default persona's field.
func (t Tier) fieldOpacity() float64 {
	if t == Balanced {
		return 0.25
	}
	return 0.5
}

// ParseTier resolves a tier by name.
func ParseTier(s string) (Tier, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return Low, nil
	case "balanced":
		return Balanced, nil
	case "high":
		return High, nil
	}
	return High, fmt.Errorf("unknown performance tier %q", s)
}

// UnmarshalText lets tiers be read from configuration.
func (t *Tier) UnmarshalText(text []byte) error {
	v, err := ParseTier(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
