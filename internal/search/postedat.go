package search

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Relative-date rules are tried in order; the first match wins. Anything
// unparseable resolves to now so a bad source string only affects ordering
// and expiry, never the rest of the record.
var (
	hoursAgoRe  = regexp.MustCompile(`(\d+)\s*(?:hour|hr)s?\s+ago`)
	daysAgoRe   = regexp.MustCompile(`(\d+)\s*(?:day)s?\s+ago`)
	weeksAgoRe  = regexp.MustCompile(`(\d+)\s*(?:week|wk)s?\s+ago`)
	monthsAgoRe = regexp.MustCompile(`(\d+)\s*(?:month|mo)s?\s+ago`)
)

// ParsePostedAt resolves a relative posted-date string ("2 days ago",
// "3 weeks ago", "yesterday", "just now") against now.
func ParsePostedAt(text string, now time.Time) time.Time {
	s := strings.ToLower(strings.TrimSpace(text))
	if s == "" {
		return now
	}

	if m := hoursAgoRe.FindStringSubmatch(s); m != nil {
		return now.Add(-time.Duration(mustAtoi(m[1])) * time.Hour)
	}
	if m := daysAgoRe.FindStringSubmatch(s); m != nil {
		return now.AddDate(0, 0, -mustAtoi(m[1]))
	}
	if m := weeksAgoRe.FindStringSubmatch(s); m != nil {
		return now.AddDate(0, 0, -7*mustAtoi(m[1]))
	}
	if m := monthsAgoRe.FindStringSubmatch(s); m != nil {
		return now.AddDate(0, -mustAtoi(m[1]), 0)
	}

	switch s {
	case "yesterday":
		return now.AddDate(0, 0, -1)
	case "today", "just now", "now":
		return now
	}

	return now
}

func mustAtoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
