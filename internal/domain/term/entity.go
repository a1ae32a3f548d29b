package term

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// SearchTerm is one canonical (raw_term, location) pair. Canonical equals the
// normalized raw term; no semantic rewriting happens in the search path.
type SearchTerm struct {
	ID             uuid.UUID
	RawTerm        string
	CanonicalTerm  string
	Location       string
	SearchCount    int
	LastSearchedAt time.Time
	LastFetchedAt  *time.Time
}

// Normalize lowercases, trims and collapses inner whitespace.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Join(strings.Fields(s), " ")
}

// NeverFetched reports whether the term has no successful external fetch yet.
func (t SearchTerm) NeverFetched() bool {
	return t.LastFetchedAt == nil
}

// StaleAt reports whether the term's cached jobs are older than threshold at now.
// A never-fetched term is always stale.
func (t SearchTerm) StaleAt(now time.Time, threshold time.Duration) bool {
	if t.LastFetchedAt == nil {
		return true
	}
	return t.LastFetchedAt.Before(now.Add(-threshold))
}
