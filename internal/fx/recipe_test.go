package fx

import "testing"

func TestEveryEventHasRecipeInBothModes(t *testing.T) {
	for _, mode := range []Mode{Standard, Aggressive} {
		for _, ev := range Events() {
			r, ok := Recipe(mode, ev)
			if !ok || len(r.Voices) == 0 {
				t.Fatalf("missing recipe for %v/%v", mode, ev)
			}
			if d := r.Duration(); d <= 0 || d > 0.5 {
				t.Fatalf("%v/%v lasts %vs, want (0, 0.5]", mode, ev, d)
			}
			for _, v := range r.Voices {
				if len(v.Freq) == 0 || len(v.Gain) == 0 {
					t.Fatalf("%v/%v has an empty envelope", mode, ev)
				}
				if v.Freq[0].At != 0 || v.Gain[0].At != 0 {
					t.Fatalf("%v/%v envelope must start at the voice start", mode, ev)
				}
				for _, bp := range append(append([]Breakpoint{}, v.Freq...), v.Gain...) {
					if bp.Curve == Exponential && bp.Value <= 0 {
						t.Fatalf("%v/%v exponential breakpoint to %v", mode, ev, bp.Value)
					}
					if bp.At > v.Duration {
						t.Fatalf("%v/%v breakpoint at %v outlives voice", mode, ev, bp.At)
					}
				}
			}
		}
	}
}

func TestStandardSuccessStepsBetweenTwoPitches(t *testing.T) {
	r, _ := Recipe(Standard, Success)
	if len(r.Voices) != 1 {
		t.Fatalf("expected a single voice, got %d", len(r.Voices))
	}
	freq := r.Voices[0].Freq
	if len(freq) != 2 || freq[0].Value != 440 || freq[1].Value != 554.37 || freq[1].Curve != Step {
		t.Fatalf("unexpected success sweep %+v", freq)
	}
}

func TestOnlyAggressiveRecipesDistort(t *testing.T) {
	for _, ev := range Events() {
		r, _ := Recipe(Standard, ev)
		for _, v := range r.Voices {
			if v.Distort || v.Glitch != nil {
				t.Fatalf("standard %v must not use distortion or modulation", ev)
			}
		}
	}
	r, _ := Recipe(Aggressive, Click)
	if !r.Voices[0].Distort {
		t.Fatal("expected aggressive click to distort")
	}
}

func TestParseEventRoundTrips(t *testing.T) {
	for _, ev := range Events() {
		got, err := ParseEvent(" " + ev.String() + " ")
		if err != nil || got != ev {
			t.Fatalf("ParseEvent(%q) = %v, %v", ev.String(), got, err)
		}
	}
	if _, err := ParseEvent("boom"); err == nil {
		t.Fatal("expected error for unknown event")
	}
	if Event(99).String() != "event(99)" {
		t.Fatalf("unexpected name for unknown event: %s", Event(99))
	}
}
