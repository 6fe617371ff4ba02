// Package persona defines the theming identities that color the visualizer
// and pick the engine's sound mode.
package persona

import (
	"fmt"
	"strings"
)

// Persona is a theming identity.
type Persona uint8

const (
	Default Persona = iota
	Neon
	Crimson
	Void
	Solar
)

// RGB is an 8-bit color triple.
type RGB struct {
	R, G, B uint8
}

var personas = [...]struct {
	name       string
	color      RGB
	aggressive bool
}{
	Default: {"default", RGB{255, 255, 255}, false},
	Neon:    {"neon", RGB{0, 255, 170}, false},
	Crimson: {"crimson", RGB{220, 20, 60}, true},
	Void:    {"void", RGB{138, 43, 226}, true},
	Solar:   {"solar", RGB{255, 170, 0}, false},
}

// All lists every persona in cycle order.
func All() []Persona {
	return []Persona{Default, Neon, Crimson, Void, Solar}
}

func (p Persona) valid() bool { return int(p) < len(personas) }

func (p Persona) String() string {
	if !p.valid() {
		return fmt.Sprintf("persona(%d)", uint8(p))
	}
	return personas[p].name
}

// Color is the persona's base color. Unknown personas map to white.
func (p Persona) Color() RGB {
	if !p.valid() {
		return personas[Default].color
	}
	return personas[p].color
}

// Aggressive reports whether the persona uses the aggressive sound set.
func (p Persona) Aggressive() bool {
	return p.valid() && personas[p].aggressive
}

// Next cycles to the following persona.
func (p Persona) Next() Persona {
	return Persona((int(p) + 1) % len(personas))
}

// Parse resolves a persona by name.
func Parse(s string) (Persona, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, v := range personas {
		if v.name == s {
			return Persona(i), nil
		}
	}
	return Default, fmt.Errorf("unknown persona %q", s)
}

// UnmarshalText lets personas be read from configuration.
func (p *Persona) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}
