// Package scheduler runs the periodic sweep: expiry cleanup followed by a
// best-effort prefetch of the most popular stale search terms. The sweep
// reuses the orchestrator's fetch path and never touches the request hot
// path.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"job-scout/internal/config"
	"job-scout/internal/repository"
	"job-scout/internal/usecase"

	"github.com/robfig/cron/v3"
)

type Scheduler struct {
	cron    *cron.Cron
	terms   repository.SearchTermRepository
	search  usecase.SearchUsecase
	cleanup usecase.CleanupUsecase
	cfg     config.SweepConfig
	stale   time.Duration
	logger  *log.Logger
}

func New(
	terms repository.SearchTermRepository,
	search usecase.SearchUsecase,
	cleanup usecase.CleanupUsecase,
	cfg config.SweepConfig,
	staleAfter time.Duration,
	logger *log.Logger,
) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		terms:   terms,
		search:  search,
		cleanup: cleanup,
		cfg:     cfg,
		stale:   staleAfter,
		logger:  logger,
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	spec := s.cfg.CronSpec
	if spec == "" {
		spec = "@every 1h"
	}
	if _, err := s.cron.AddFunc(spec, func() { s.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}
	s.cron.Start()
	if s.logger != nil {
		s.logger.Printf("[Sweep] Scheduler started | spec=%s", spec)
	}
	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
	if s.logger != nil {
		s.logger.Printf("[Sweep] Scheduler stopped")
	}
}

// RunOnce executes a full sweep cycle. Failures are logged and skipped;
// the next tick simply tries again.
func (s *Scheduler) RunOnce(ctx context.Context) {
	if s.cleanup != nil {
		if _, err := s.cleanup.CleanupExpired(ctx); err != nil && s.logger != nil {
			s.logger.Printf("[Sweep] Cleanup error: %v", err)
		}
	}

	if s.terms == nil || s.search == nil {
		return
	}

	olderThan := time.Now().Add(-s.stale)
	terms, err := s.terms.ListStalePopular(ctx, olderThan, s.cfg.PrefetchLimit)
	if err != nil {
		if s.logger != nil {
			s.logger.Printf("[Sweep] Stale term listing error: %v", err)
		}
		return
	}

	for _, t := range terms {
		_, err := s.search.Search(ctx, usecase.SearchParams{
			Keywords: t.RawTerm,
			Location: t.Location,
			Page:     1,
		})
		if err != nil && s.logger != nil {
			s.logger.Printf("[Sweep] Prefetch error | term=%q location=%q err=%v", t.RawTerm, t.Location, err)
		}
	}

	if s.logger != nil {
		s.logger.Printf("[Sweep] Cycle complete | prefetched_terms=%d", len(terms))
	}
}
