package job

import (
	"time"

	"github.com/google/uuid"
)

// RetentionDays controls how long a posting stays queryable after its
// resolved posting date. ExpiresAt is always PostedAt + RetentionDays.
const RetentionDays = 30

// Job is a deduplicated posting. JobURL is the stable external identifier
// and the only dedup key; records without one are never stored.
type Job struct {
	ID             uuid.UUID
	JobURL         string
	Title          string
	Company        string
	Location       string
	WorkType       string
	Salary         string
	Description    string
	Skills         []string
	Benefits       []string
	IsEasyApply    bool
	ApplicantCount int
	PostedAt       time.Time
	PostedAtText   string
	ExpiresAt      time.Time
	RawPayload     map[string]any
	UpdatedAt      time.Time
}

// Upsert is the write-side shape used when merging a scraped batch.
// Fields mirror Job minus the generated ID.
type Upsert struct {
	JobURL         string
	Title          string
	Company        string
	Location       string
	WorkType       string
	Salary         string
	Description    string
	Skills         []string
	Benefits       []string
	IsEasyApply    bool
	ApplicantCount int
	PostedAt       time.Time
	PostedAtText   string
	ExpiresAt      time.Time
	RawPayload     map[string]any
}

// Expired reports whether the posting is logically deleted at t.
func (j Job) Expired(t time.Time) bool {
	return !j.ExpiresAt.After(t)
}
