package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"job-scout/internal/config"
	"job-scout/internal/domain/job"
	"job-scout/internal/domain/term"
	"job-scout/internal/infrastructure/scraper"
	"job-scout/internal/repository"
	"job-scout/internal/search"
)

// SearchParams are the caller-supplied search inputs. Remote and EasyApply
// are applied server-side; DatePosted and ExperienceLevel belong to the
// page-local client pass and are carried through untouched.
type SearchParams struct {
	Keywords        string
	Location        string
	Remote          *bool
	DatePosted      string
	ExperienceLevel string
	EasyApply       *bool
	Page            int
	PageSize        int
	ForceRefresh    bool
}

type SearchResult struct {
	Jobs           []job.Job
	TotalCount     int
	Page           int
	PageSize       int
	TotalPages     int
	HasMoreResults bool
	FromCache      bool
	Stats          search.Stats
}

type SearchUsecase interface {
	Search(ctx context.Context, p SearchParams) (SearchResult, error)
}

// fetchNotifier is told when a term's jobs were refreshed from the external
// source, so connected clients can re-query.
type fetchNotifier interface {
	JobsUpdated(rawTerm string, count int)
}

const fetchLockTTL = 2 * time.Minute

// Search is the cache orchestrator: it decides cache-hit vs refetch per
// term, merges scraper batches into the job store and serves paginated
// pages from the merged set.
type Search struct {
	terms   repository.SearchTermRepository
	jobs    repository.JobRepository
	scraper scraper.Client
	cache   SearchCache
	notify  fetchNotifier
	logger  *log.Logger
	cfg     config.SearchConfig
	actorID string
	now     func() time.Time
}

func NewSearchUsecase(
	terms repository.SearchTermRepository,
	jobs repository.JobRepository,
	scraperClient scraper.Client,
	cache SearchCache,
	notify fetchNotifier,
	logger *log.Logger,
	cfg config.SearchConfig,
	actorID string,
) *Search {
	if cfg.StaleAfter <= 0 {
		cfg.StaleAfter = 24 * time.Hour
	}
	if cfg.MinJobsThreshold <= 0 {
		cfg.MinJobsThreshold = 50
	}
	if cfg.DefaultPageSize <= 0 {
		cfg.DefaultPageSize = 20
	}
	if cfg.MaxPageSize <= 0 {
		cfg.MaxPageSize = 100
	}
	return &Search{
		terms:   terms,
		jobs:    jobs,
		scraper: scraperClient,
		cache:   cache,
		notify:  notify,
		logger:  logger,
		cfg:     cfg,
		actorID: actorID,
		now:     time.Now,
	}
}

func (u *Search) Search(ctx context.Context, p SearchParams) (SearchResult, error) {
	keywords := term.Normalize(p.Keywords)
	location := term.Normalize(p.Location)
	if keywords == "" && location == "" {
		return SearchResult{}, ErrInvalidInput
	}

	p.Page = normalizePage(p.Page)
	p.PageSize = clampPageSize(p.PageSize, u.cfg.DefaultPageSize, u.cfg.MaxPageSize)

	now := u.now()

	// Resolve before consulting the response cache: search_count and
	// last_searched_at move on every lookup, cached or not.
	t, err := u.terms.Resolve(ctx, keywords, location)
	if err != nil {
		return SearchResult{}, fmt.Errorf("%w: resolve term: %v", ErrInternal, err)
	}

	cacheKey := SearchResponseCacheKey(p)
	if !p.ForceRefresh && u.cache != nil {
		var cached SearchResult
		hit, err := u.cache.GetJSON(ctx, cacheKey, &cached)
		if err == nil && hit {
			if u.logger != nil {
				u.logger.Printf("[Search] Response cache HIT: %s", cacheKey)
			}
			cached.FromCache = true
			return cached, nil
		}
	}

	filter := repository.ActiveFilter{Remote: p.Remote, EasyApply: p.EasyApply}
	jobs, err := u.jobs.ListActiveByRawTerm(ctx, t.RawTerm, filter)
	if err != nil {
		return SearchResult{}, fmt.Errorf("%w: query jobs: %v", ErrInternal, err)
	}

	isStale := t.StaleAt(now, u.cfg.StaleAfter)
	needsFetch := p.ForceRefresh || isStale || len(jobs) < u.cfg.MinJobsThreshold

	fetched := false
	if needsFetch && u.scraper != nil {
		if u.acquireFetchLock(ctx, t.RawTerm) {
			// Detached from the request so a client abort can't leave a
			// half-written batch with last_fetched_at unset.
			fetchCtx := context.WithoutCancel(ctx)
			count, err := u.refreshFromScraper(fetchCtx, t, p, now)
			u.releaseFetchLock(fetchCtx, t.RawTerm)
			switch {
			case err == nil:
				fetched = true
				jobs, err = u.jobs.ListActiveByRawTerm(ctx, t.RawTerm, filter)
				if err != nil {
					return SearchResult{}, fmt.Errorf("%w: re-query jobs: %v", ErrInternal, err)
				}
				if u.notify != nil {
					u.notify.JobsUpdated(t.RawTerm, count)
				}
			case isScraperError(err):
				// Partial or stale data beats no data; serve what we have.
				if u.logger != nil {
					u.logger.Printf("[Search] Fetch failed, serving cache | term=%q location=%q err=%v", t.RawTerm, t.Location, err)
				}
			default:
				return SearchResult{}, err
			}
		} else if u.logger != nil {
			u.logger.Printf("[Search] Fetch lock busy, serving cache | term=%q", t.RawTerm)
		}
	}

	result := paginate(jobs, p.Page, p.PageSize)
	result.FromCache = !fetched
	result.Stats = search.ComputeStats(jobs, now)

	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, cacheKey, result, u.cfg.ResponseCacheTTL)
	}
	return result, nil
}

// refreshFromScraper runs one actor fetch and merges the batch: upsert jobs,
// link them to the term, stamp last_fetched_at. The read-back happens in the
// caller strictly after this returns, never against a partial batch.
func (u *Search) refreshFromScraper(ctx context.Context, t term.SearchTerm, p SearchParams, now time.Time) (int, error) {
	items, err := u.scraper.Run(ctx, u.actorID, buildActorInput(t, p))
	if err != nil {
		return 0, err
	}

	batch := make([]job.Upsert, 0, len(items))
	urls := make([]string, 0, len(items))
	for _, item := range items {
		up, ok := upsertFromItem(item, now)
		if !ok {
			// No dedup key means the record can't be stored without
			// unbounded duplicate growth; skip it.
			continue
		}
		batch = append(batch, up)
		urls = append(urls, up.JobURL)
	}

	inserted, err := u.jobs.UpsertJobs(ctx, batch)
	if err != nil {
		return 0, fmt.Errorf("%w: upsert jobs: %v", ErrInternal, err)
	}
	if err := u.jobs.LinkJobsToTerm(ctx, t.ID, urls); err != nil {
		return 0, fmt.Errorf("%w: link jobs: %v", ErrInternal, err)
	}
	if err := u.terms.MarkFetched(ctx, t.ID, now); err != nil {
		return 0, fmt.Errorf("%w: mark fetched: %v", ErrInternal, err)
	}

	if u.logger != nil {
		u.logger.Printf("[Search] Fetch merged | term=%q location=%q items=%d inserted=%d", t.RawTerm, t.Location, len(batch), inserted)
	}
	return len(batch), nil
}

// acquireFetchLock is best-effort dedup of concurrent fetches for one term.
// Redis being down or erroring never blocks the fetch; a held lock skips it.
func (u *Search) acquireFetchLock(ctx context.Context, rawTerm string) bool {
	if u.cache == nil {
		return true
	}
	ok, err := u.cache.SetIfNotExists(ctx, FetchLockKey(rawTerm), "1", fetchLockTTL)
	if err != nil {
		return true
	}
	return ok
}

func (u *Search) releaseFetchLock(ctx context.Context, rawTerm string) {
	if u.cache == nil {
		return
	}
	_ = u.cache.Delete(ctx, FetchLockKey(rawTerm))
}

func isScraperError(err error) bool {
	var se *scraper.ScraperError
	return errors.As(err, &se)
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func clampPageSize(size, def, max int) int {
	if size <= 0 {
		return def
	}
	if size > max {
		return max
	}
	return size
}

func paginate(jobs []job.Job, page, pageSize int) SearchResult {
	total := len(jobs)
	totalPages := 0
	if total > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}

	// page is caller-supplied and unbounded; compare against totalPages
	// before multiplying so the offset cannot overflow. Anything past the
	// last page is an empty page, not an error.
	start := total
	if page <= totalPages {
		start = (page - 1) * pageSize
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	return SearchResult{
		Jobs:           jobs[start:end],
		TotalCount:     total,
		Page:           page,
		PageSize:       pageSize,
		TotalPages:     totalPages,
		HasMoreResults: end < total,
	}
}

// buildActorInput shapes the external fetch request. Location matters here
// even though it doesn't partition the cache: the scraper needs it to target
// the right postings.
func buildActorInput(t term.SearchTerm, p SearchParams) map[string]any {
	in := map[string]any{
		"keywords": t.CanonicalTerm,
		"location": t.Location,
		"rows":     100,
	}
	if p.Remote != nil {
		in["remote"] = *p.Remote
	}
	if p.EasyApply != nil {
		in["easyApply"] = *p.EasyApply
	}
	if p.DatePosted != "" {
		in["datePosted"] = p.DatePosted
	}
	if p.ExperienceLevel != "" {
		in["experienceLevel"] = p.ExperienceLevel
	}
	return in
}

var _ SearchUsecase = (*Search)(nil)
