package usecase

import (
	"strings"
	"testing"
)

func TestSearchResponseCacheKey(t *testing.T) {
	base := SearchParams{Keywords: "golang developer", Location: "berlin", Page: 1, PageSize: 20}

	if k := SearchResponseCacheKey(base); !strings.HasPrefix(k, "search:response:") {
		t.Fatalf("unexpected key prefix: %q", k)
	}

	// Normalization makes equivalent inputs share a key.
	messy := base
	messy.Keywords = "  Golang   Developer "
	if SearchResponseCacheKey(messy) != SearchResponseCacheKey(base) {
		t.Error("normalized-equal keywords must share a key")
	}

	// Server-side parameters partition the key.
	other := base
	other.Page = 2
	if SearchResponseCacheKey(other) == SearchResponseCacheKey(base) {
		t.Error("page must partition the key")
	}

	// Client-pass filters do not.
	filtered := base
	filtered.DatePosted = "week"
	filtered.ExperienceLevel = "senior"
	if SearchResponseCacheKey(filtered) != SearchResponseCacheKey(base) {
		t.Error("client-pass filters must not partition the key")
	}
}

func TestFetchLockKey(t *testing.T) {
	if FetchLockKey("  Golang   Developer ") != "search:fetch-lock:golang developer" {
		t.Fatalf("got %q", FetchLockKey("  Golang   Developer "))
	}
}
