package repository

import (
	"context"
	"encoding/json"
	"strings"

	"job-scout/internal/database"
	"job-scout/internal/domain/job"

	"github.com/google/uuid"
)

// ActiveFilter holds the predicates the store can apply server-side; the
// remaining display filters run over the returned page.
type ActiveFilter struct {
	Remote    *bool
	EasyApply *bool
}

type JobRepository interface {
	// UpsertJobs merges a scraped batch keyed on job_url and reports how
	// many rows were newly inserted. Records without a job_url are skipped.
	UpsertJobs(ctx context.Context, batch []job.Upsert) (int, error)
	// LinkJobsToTerm attaches every job in the batch to the given search
	// term; existing pairs are left untouched.
	LinkJobsToTerm(ctx context.Context, termID uuid.UUID, jobURLs []string) error
	// ListActiveByRawTerm returns non-expired jobs linked to any search
	// term sharing rawTerm, newest first. Location does not partition the
	// cache; it only shapes the external fetch.
	ListActiveByRawTerm(ctx context.Context, rawTerm string, f ActiveFilter) ([]job.Job, error)
	// DeleteExpired removes rows whose expires_at has passed.
	DeleteExpired(ctx context.Context) (int64, error)
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

func (r *PostgresJobRepository) UpsertJobs(ctx context.Context, batch []job.Upsert) (int, error) {
	if len(batch) == 0 {
		return 0, nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	inserted := 0
	for _, u := range batch {
		if strings.TrimSpace(u.JobURL) == "" {
			continue
		}

		payload, err := json.Marshal(u.RawPayload)
		if err != nil {
			payload = []byte("{}")
		}

		row := tx.QueryRow(ctx, `
			INSERT INTO jobs (
				job_url, title, company, location, work_type, salary, description,
				skills, benefits, is_easy_apply, applicant_count,
				posted_at, posted_at_text, expires_at, raw_payload, updated_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,now())
			ON CONFLICT (job_url) DO UPDATE SET
				title = EXCLUDED.title,
				company = EXCLUDED.company,
				location = EXCLUDED.location,
				work_type = EXCLUDED.work_type,
				salary = EXCLUDED.salary,
				description = EXCLUDED.description,
				skills = EXCLUDED.skills,
				benefits = EXCLUDED.benefits,
				is_easy_apply = EXCLUDED.is_easy_apply,
				applicant_count = EXCLUDED.applicant_count,
				posted_at = EXCLUDED.posted_at,
				posted_at_text = EXCLUDED.posted_at_text,
				expires_at = EXCLUDED.expires_at,
				raw_payload = EXCLUDED.raw_payload,
				updated_at = now()
			RETURNING (xmax = 0)`,
			u.JobURL, u.Title, u.Company, u.Location, u.WorkType, u.Salary, u.Description,
			u.Skills, u.Benefits, u.IsEasyApply, u.ApplicantCount,
			u.PostedAt.UTC(), u.PostedAtText, u.ExpiresAt.UTC(), payload,
		)

		var isInsert bool
		if err := row.Scan(&isInsert); err != nil {
			return 0, err
		}
		if isInsert {
			inserted++
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return inserted, nil
}

func (r *PostgresJobRepository) LinkJobsToTerm(ctx context.Context, termID uuid.UUID, jobURLs []string) error {
	urls := make([]string, 0, len(jobURLs))
	for _, u := range jobURLs {
		if strings.TrimSpace(u) == "" {
			continue
		}
		urls = append(urls, u)
	}
	if len(urls) == 0 {
		return nil
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO search_term_jobs (job_id, search_term_id)
		SELECT j.id, $1 FROM jobs j WHERE j.job_url = ANY($2)
		ON CONFLICT (job_id, search_term_id) DO NOTHING`,
		termID, urls,
	)
	return err
}

func (r *PostgresJobRepository) ListActiveByRawTerm(ctx context.Context, rawTerm string, f ActiveFilter) ([]job.Job, error) {
	q := `
		SELECT j.id, j.job_url, j.title, j.company, j.location, j.work_type, j.salary,
			j.description, j.skills, j.benefits, j.is_easy_apply, j.applicant_count,
			j.posted_at, j.posted_at_text, j.expires_at, j.raw_payload, j.updated_at
		FROM jobs j
		WHERE j.expires_at > now()
		AND EXISTS (
			SELECT 1 FROM search_term_jobs l
			JOIN search_terms t ON t.id = l.search_term_id
			WHERE l.job_id = j.id AND t.raw_term = $1
		)`
	args := []any{rawTerm}

	if f.Remote != nil && *f.Remote {
		q += ` AND (j.work_type ILIKE '%remote%' OR j.location ILIKE '%remote%')`
	}
	if f.EasyApply != nil {
		args = append(args, *f.EasyApply)
		q += ` AND j.is_easy_apply = $2`
	}

	q += ` ORDER BY j.posted_at DESC, j.job_url`

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Job, 0)
	for rows.Next() {
		var j job.Job
		var payload []byte
		if err := rows.Scan(
			&j.ID, &j.JobURL, &j.Title, &j.Company, &j.Location, &j.WorkType, &j.Salary,
			&j.Description, &j.Skills, &j.Benefits, &j.IsEasyApply, &j.ApplicantCount,
			&j.PostedAt, &j.PostedAtText, &j.ExpiresAt, &payload, &j.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if len(payload) > 0 {
			_ = json.Unmarshal(payload, &j.RawPayload)
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

func (r *PostgresJobRepository) DeleteExpired(ctx context.Context) (int64, error) {
	return r.db.Exec(ctx, `DELETE FROM jobs WHERE expires_at < now()`)
}

var _ JobRepository = (*PostgresJobRepository)(nil)
