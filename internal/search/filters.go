package search

import (
	"strings"
	"time"

	"job-scout/internal/domain/job"
)

// ClientFilter is the second, page-local filter pass. It runs over rows the
// server already returned, so applying it can shrink a page below its
// requested size without triggering a re-fetch.
type ClientFilter struct {
	WorkType        string
	ExperienceLevel string
	DatePosted      string
	EasyApply       *bool
}

// Stats are the display counters shown next to a result page. They must be
// recomputed from the client-filtered rows, not the raw page.
type Stats struct {
	Remote     int `json:"remote"`
	EasyApply  int `json:"easyApply"`
	RecentWeek int `json:"recentWeek"`
}

var seniorKeywords = []string{"senior", "sr.", "sr ", "staff", "principal", "lead"}
var entryKeywords = []string{"junior", "jr.", "jr ", "entry", "intern", "graduate", "trainee"}

// ApplyClientFilters filters one page of jobs in place of the UI.
func ApplyClientFilters(jobs []job.Job, f ClientFilter, now time.Time) []job.Job {
	cutoff := dateCutoff(f.DatePosted, now)

	out := make([]job.Job, 0, len(jobs))
	for _, j := range jobs {
		if f.WorkType != "" && !strings.Contains(strings.ToLower(j.WorkType), strings.ToLower(f.WorkType)) {
			continue
		}
		if f.ExperienceLevel != "" && !matchesExperience(j.Title, f.ExperienceLevel) {
			continue
		}
		if !cutoff.IsZero() && j.PostedAt.Before(cutoff) {
			continue
		}
		if f.EasyApply != nil && j.IsEasyApply != *f.EasyApply {
			continue
		}
		out = append(out, j)
	}
	return out
}

// ComputeStats counts remote, easy-apply and recently posted rows.
func ComputeStats(jobs []job.Job, now time.Time) Stats {
	weekAgo := now.AddDate(0, 0, -7)
	var s Stats
	for _, j := range jobs {
		if IsRemote(j) {
			s.Remote++
		}
		if j.IsEasyApply {
			s.EasyApply++
		}
		if j.PostedAt.After(weekAgo) {
			s.RecentWeek++
		}
	}
	return s
}

// IsRemote is a display heuristic over work type and location text.
func IsRemote(j job.Job) bool {
	return strings.Contains(strings.ToLower(j.WorkType), "remote") ||
		strings.Contains(strings.ToLower(j.Location), "remote")
}

// matchesExperience is a title-keyword heuristic. Postings rarely carry a
// structured level, so senior/entry are keyed off title words and mid is
// everything that matches neither set.
func matchesExperience(title, level string) bool {
	t := strings.ToLower(title)
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "senior":
		return containsAny(t, seniorKeywords)
	case "entry", "junior":
		return containsAny(t, entryKeywords)
	case "mid", "mid-level":
		return !containsAny(t, seniorKeywords) && !containsAny(t, entryKeywords)
	default:
		return true
	}
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func dateCutoff(datePosted string, now time.Time) time.Time {
	switch strings.ToLower(strings.TrimSpace(datePosted)) {
	case "24h", "day", "past-24h":
		return now.AddDate(0, 0, -1)
	case "week", "past-week":
		return now.AddDate(0, 0, -7)
	case "month", "past-month":
		return now.AddDate(0, -1, 0)
	default:
		return time.Time{}
	}
}
