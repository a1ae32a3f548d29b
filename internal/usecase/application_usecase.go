package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"job-scout/internal/infrastructure/extraction"
	"job-scout/internal/pipeline"
	"job-scout/internal/repository"

	"github.com/google/uuid"
)

type ApplicationCreateParams struct {
	JobID   *uuid.UUID
	Title   string
	Company string
	JobURL  string
	Notes   string
	// RawText is an optional pasted posting; when set and extraction is
	// configured, it fills in whatever fields the caller left blank.
	RawText string
}

type postingExtractor interface {
	ExtractPosting(ctx context.Context, text string) (extraction.Posting, error)
}

type ApplicationUsecase interface {
	Create(ctx context.Context, p ApplicationCreateParams) (repository.Application, error)
	List(ctx context.Context, status string, limit, offset int) ([]repository.Application, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (repository.Application, error)
}

type Applications struct {
	repo      repository.ApplicationRepository
	extractor postingExtractor
	logger    *log.Logger
	now       func() time.Time
}

func NewApplicationUsecase(repo repository.ApplicationRepository, extractor postingExtractor, logger *log.Logger) *Applications {
	return &Applications{repo: repo, extractor: extractor, logger: logger, now: time.Now}
}

func (u *Applications) Create(ctx context.Context, p ApplicationCreateParams) (repository.Application, error) {
	if strings.TrimSpace(p.RawText) != "" && u.extractor != nil {
		posting, err := u.extractor.ExtractPosting(ctx, p.RawText)
		if err != nil {
			if u.logger != nil {
				u.logger.Printf("[Applications] Extraction failed, keeping manual fields: %v", err)
			}
		} else {
			if p.Title == "" {
				p.Title = posting.Title
			}
			if p.Company == "" {
				p.Company = posting.Company
			}
		}
	}

	if strings.TrimSpace(p.Title) == "" && strings.TrimSpace(p.JobURL) == "" {
		return repository.Application{}, ErrInvalidInput
	}

	a, err := u.repo.Create(ctx, repository.Application{
		JobID:   p.JobID,
		Title:   strings.TrimSpace(p.Title),
		Company: strings.TrimSpace(p.Company),
		JobURL:  strings.TrimSpace(p.JobURL),
		Status:  pipeline.StatusSaved,
		Notes:   p.Notes,
	})
	if err != nil {
		return repository.Application{}, fmt.Errorf("%w: create application: %v", ErrInternal, err)
	}
	return a, nil
}

func (u *Applications) List(ctx context.Context, status string, limit, offset int) ([]repository.Application, error) {
	var filter *pipeline.Status
	if strings.TrimSpace(status) != "" {
		st, err := pipeline.ParseStatus(status)
		if err != nil {
			return nil, ErrInvalidInput
		}
		filter = &st
	}

	out, err := u.repo.List(ctx, filter, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%w: list applications: %v", ErrInternal, err)
	}
	return out, nil
}

func (u *Applications) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (repository.Application, error) {
	to, err := pipeline.ParseStatus(status)
	if err != nil {
		return repository.Application{}, ErrInvalidInput
	}

	a, err := u.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return repository.Application{}, ErrNotFound
		}
		return repository.Application{}, fmt.Errorf("%w: load application: %v", ErrInternal, err)
	}

	if !pipeline.CanTransition(a.Status, to) {
		return repository.Application{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, a.Status, to)
	}

	var appliedAt *time.Time
	if to == pipeline.StatusApplied {
		now := u.now().UTC()
		appliedAt = &now
	}

	if err := u.repo.UpdateStatus(ctx, id, to, appliedAt); err != nil {
		return repository.Application{}, fmt.Errorf("%w: update status: %v", ErrInternal, err)
	}

	a.Status = to
	if appliedAt != nil {
		a.AppliedAt = appliedAt
	}
	return a, nil
}

var _ ApplicationUsecase = (*Applications)(nil)
