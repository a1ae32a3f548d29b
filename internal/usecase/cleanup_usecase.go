package usecase

import (
	"context"
	"fmt"
	"log"

	"job-scout/internal/repository"
)

// searchInvalidator drops cached search responses after rows disappear.
type searchInvalidator interface {
	InvalidateSearch(ctx context.Context) error
}

type CleanupUsecase interface {
	CleanupExpired(ctx context.Context) (int64, error)
}

// Cleanup deletes logically-expired jobs. The delete is a plain where-clause
// and is safe to run on a schedule or concurrently with searches.
type Cleanup struct {
	jobs   repository.JobRepository
	cache  searchInvalidator
	logger *log.Logger
}

func NewCleanupUsecase(jobs repository.JobRepository, cache searchInvalidator, logger *log.Logger) *Cleanup {
	return &Cleanup{jobs: jobs, cache: cache, logger: logger}
}

func (u *Cleanup) CleanupExpired(ctx context.Context) (int64, error) {
	deleted, err := u.jobs.DeleteExpired(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: delete expired: %v", ErrInternal, err)
	}

	if deleted > 0 && u.cache != nil {
		if err := u.cache.InvalidateSearch(ctx); err != nil && u.logger != nil {
			u.logger.Printf("[Cleanup] Cache invalidation failed: %v", err)
		}
	}

	if u.logger != nil {
		u.logger.Printf("[Cleanup] Expired jobs removed | count=%d", deleted)
	}
	return deleted, nil
}

var _ CleanupUsecase = (*Cleanup)(nil)
