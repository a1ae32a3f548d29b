package dto

import (
	"time"

	"job-scout/internal/domain/job"
	"job-scout/internal/search"
)

type SearchResponse struct {
	Jobs           []map[string]any `json:"jobs"`
	TotalCount     int              `json:"totalCount"`
	Page           int              `json:"page"`
	PageSize       int              `json:"pageSize"`
	TotalPages     int              `json:"totalPages"`
	HasMoreResults bool             `json:"hasMoreResults"`
	FromCache      bool             `json:"fromCache"`
	Stats          search.Stats     `json:"stats"`
}

// JobPayload flattens a job for the wire: raw scraper fields first, then the
// normalized fields on top so they win every key collision.
func JobPayload(j job.Job) map[string]any {
	out := make(map[string]any, len(j.RawPayload)+16)
	for k, v := range j.RawPayload {
		out[k] = v
	}

	out["id"] = j.ID
	out["jobUrl"] = j.JobURL
	out["title"] = j.Title
	out["company"] = j.Company
	out["location"] = j.Location
	out["workType"] = j.WorkType
	out["salary"] = j.Salary
	out["description"] = j.Description
	out["skills"] = j.Skills
	out["benefits"] = j.Benefits
	out["isEasyApply"] = j.IsEasyApply
	out["applicantCount"] = j.ApplicantCount
	out["postedAt"] = j.PostedAt.UTC().Format(time.RFC3339)
	out["postedAtText"] = j.PostedAtText
	out["expiresAt"] = j.ExpiresAt.UTC().Format(time.RFC3339)
	return out
}
