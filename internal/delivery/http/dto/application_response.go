package dto

import (
	"time"

	"job-scout/internal/repository"

	"github.com/google/uuid"
)

type ApplicationResponse struct {
	ID        uuid.UUID  `json:"id"`
	JobID     *uuid.UUID `json:"jobId,omitempty"`
	Title     string     `json:"title"`
	Company   string     `json:"company"`
	JobURL    string     `json:"jobUrl"`
	Status    string     `json:"status"`
	Notes     string     `json:"notes"`
	AppliedAt string     `json:"appliedAt,omitempty"`
	CreatedAt string     `json:"createdAt"`
	UpdatedAt string     `json:"updatedAt"`
}

func FromApplication(a repository.Application) ApplicationResponse {
	out := ApplicationResponse{
		ID:        a.ID,
		JobID:     a.JobID,
		Title:     a.Title,
		Company:   a.Company,
		JobURL:    a.JobURL,
		Status:    string(a.Status),
		Notes:     a.Notes,
		CreatedAt: a.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: a.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if a.AppliedAt != nil {
		out.AppliedAt = a.AppliedAt.UTC().Format(time.RFC3339)
	}
	return out
}
