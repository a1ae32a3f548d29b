package term

import (
	"testing"
	"time"
)

func TestNormalize(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Golang Developer", "golang developer"},
		{"  golang   developer  ", "golang developer"},
		{"GOLANG\tDEVELOPER", "golang developer"},
		{"golang developer", "golang developer"},
		{"   ", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := Normalize(c.in); got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestStaleAt(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	threshold := 24 * time.Hour

	if !(SearchTerm{}).StaleAt(now, threshold) {
		t.Error("never-fetched term must be stale")
	}

	fresh := now.Add(-23 * time.Hour)
	if (SearchTerm{LastFetchedAt: &fresh}).StaleAt(now, threshold) {
		t.Error("23h-old fetch must be fresh")
	}

	stale := now.Add(-25 * time.Hour)
	if !(SearchTerm{LastFetchedAt: &stale}).StaleAt(now, threshold) {
		t.Error("25h-old fetch must be stale")
	}
}

func TestNeverFetched(t *testing.T) {
	if !(SearchTerm{}).NeverFetched() {
		t.Error("nil LastFetchedAt means never fetched")
	}
	at := time.Now()
	if (SearchTerm{LastFetchedAt: &at}).NeverFetched() {
		t.Error("set LastFetchedAt means fetched")
	}
}
