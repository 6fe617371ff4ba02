package fx

import (
	"fmt"
	"strings"
)

// Event is a discrete UI event that has a one-shot sound.
type Event uint8

const (
	Click Event = iota
	Hover
	Success
	Error
	Toggle
	Light
	Secret
	Heavy
)

var eventNames = [...]string{
	Click:   "click",
	Hover:   "hover",
	Success: "success",
	Error:   "error",
	Toggle:  "toggle",
	Light:   "light",
	Secret:  "secret",
	Heavy:   "heavy",
}

// Events lists every event in declaration order.
func Events() []Event {
	return []Event{Click, Hover, Success, Error, Toggle, Light, Secret, Heavy}
}

func (e Event) String() string {
	if int(e) < len(eventNames) {
		return eventNames[e]
	}
	return fmt.Sprintf("event(%d)", uint8(e))
}

// ParseEvent resolves an event by name, case-insensitively.
func ParseEvent(s string) (Event, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range eventNames {
		if name == s {
			return Event(i), nil
		}
	}
	return 0, fmt.Errorf("unknown sound event %q", s)
}

// Mode selects the character of every sound the engine makes.
type Mode uint8

const (
	Standard Mode = iota
	Aggressive
)

func modeOf(aggressive bool) Mode {
	if aggressive {
		return Aggressive
	}
	return Standard
}

func (m Mode) String() string {
	if m == Aggressive {
		return "aggressive"
	}
	return "standard"
}
