package configure

import "testing"

func TestTransitions(t *testing.T) {
	tests := []struct {
		from, to State
		ok       bool
	}{
		{Init, DetectPlatform, true},
		{DetectPlatform, SelectFlags, true},
		{ProbeExecutables, Emit, true},
		{Emit, Done, true},
		{ProbeLibraries, Aborted, true},
		{ProbeHeaders, Aborted, true},
		{Emit, Aborted, true},

		{Init, ProbeLibraries, false},
		{ProbeLibraries, Emit, false},
		{ProbeHeaders, ProbeLibraries, false},
		{DetectPlatform, Aborted, false},
		{Done, Init, false},
		{Aborted, Done, false},
	}
	for _, tc := range tests {
		cur := tc.from
		err := transition(&cur, tc.to)
		if (err == nil) != tc.ok {
			t.Errorf("%s -> %s: err = %v, want ok=%v", tc.from, tc.to, err, tc.ok)
			continue
		}
		if tc.ok && cur != tc.to {
			t.Errorf("%s -> %s: state left at %s", tc.from, tc.to, cur)
		}
		if !tc.ok && cur != tc.from {
			t.Errorf("%s -> %s: rejected transition changed state to %s", tc.from, tc.to, cur)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	for _, s := range sequence {
		if got := IsTerminal(s); got != (s == Done) {
			t.Errorf("IsTerminal(%s) = %v", s, got)
		}
	}
	if !IsTerminal(Aborted) {
		t.Error("ABORTED should be terminal")
	}
}
