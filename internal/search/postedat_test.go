package search

import (
	"testing"
	"time"
)

func TestParsePostedAt_Relative(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		in   string
		want time.Time
	}{
		{"5 hours ago", now.Add(-5 * time.Hour)},
		{"1 hour ago", now.Add(-1 * time.Hour)},
		{"2 hrs ago", now.Add(-2 * time.Hour)},
		{"3 days ago", now.AddDate(0, 0, -3)},
		{"1 day ago", now.AddDate(0, 0, -1)},
		{"2 weeks ago", now.AddDate(0, 0, -14)},
		{"1 wk ago", now.AddDate(0, 0, -7)},
		{"1 month ago", now.AddDate(0, -1, 0)},
		{"6 months ago", now.AddDate(0, -6, 0)},
		{"yesterday", now.AddDate(0, 0, -1)},
		{"Yesterday", now.AddDate(0, 0, -1)},
		{"today", now},
		{"just now", now},
		{"  3 Days Ago  ", now.AddDate(0, 0, -3)},
	}

	for _, c := range cases {
		got := ParsePostedAt(c.in, now)
		if !got.Equal(c.want) {
			t.Errorf("ParsePostedAt(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParsePostedAt_UnparseableFallsBackToNow(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	for _, in := range []string{"", "soon", "posted recently", "明日", "days ago"} {
		if got := ParsePostedAt(in, now); !got.Equal(now) {
			t.Errorf("ParsePostedAt(%q) = %v, want now", in, got)
		}
	}
}

func TestParsePostedAt_OrderedRulesPreferHours(t *testing.T) {
	// When both units appear the hours rule wins because it is tried first.
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	got := ParsePostedAt("1 day 2 hours ago", now)
	if !got.Equal(now.Add(-2 * time.Hour)) {
		t.Fatalf("got %v", got)
	}
}
