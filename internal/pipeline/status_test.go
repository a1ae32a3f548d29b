package pipeline

import "testing"

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"saved", "applied", "interviewing", "offer", "hired", "rejected"} {
		st, err := ParseStatus(s)
		if err != nil {
			t.Errorf("ParseStatus(%q) unexpected err: %v", s, err)
		}
		if string(st) != s {
			t.Errorf("ParseStatus(%q) = %q", s, st)
		}
	}

	for _, s := range []string{"", "SAVED", "archived", "in-progress"} {
		if _, err := ParseStatus(s); err == nil {
			t.Errorf("ParseStatus(%q) expected error", s)
		}
	}
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusSaved, StatusApplied, true},
		{StatusApplied, StatusInterviewing, true},
		{StatusInterviewing, StatusOffer, true},
		{StatusOffer, StatusHired, true},

		// Any non-terminal status can be rejected.
		{StatusSaved, StatusRejected, true},
		{StatusApplied, StatusRejected, true},
		{StatusInterviewing, StatusRejected, true},
		{StatusOffer, StatusRejected, true},

		// No skipping stages.
		{StatusSaved, StatusInterviewing, false},
		{StatusSaved, StatusOffer, false},
		{StatusApplied, StatusHired, false},

		// No moving backwards.
		{StatusApplied, StatusSaved, false},
		{StatusOffer, StatusInterviewing, false},

		// Terminal statuses have no outgoing edges.
		{StatusHired, StatusRejected, false},
		{StatusHired, StatusApplied, false},
		{StatusRejected, StatusSaved, false},
		{StatusRejected, StatusApplied, false},

		// No self loops.
		{StatusSaved, StatusSaved, false},
		{StatusApplied, StatusApplied, false},
	}

	for _, c := range cases {
		if got := CanTransition(c.from, c.to); got != c.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	if !IsTerminal(StatusHired) || !IsTerminal(StatusRejected) {
		t.Error("hired and rejected are terminal")
	}
	for _, s := range []Status{StatusSaved, StatusApplied, StatusInterviewing, StatusOffer} {
		if IsTerminal(s) {
			t.Errorf("%s should not be terminal", s)
		}
	}
}
