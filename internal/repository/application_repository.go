package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"job-scout/internal/database"
	"job-scout/internal/pipeline"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrApplicationNotFound = errors.New("application not found")

type Application struct {
	ID        uuid.UUID
	JobID     *uuid.UUID
	Title     string
	Company   string
	JobURL    string
	Status    pipeline.Status
	Notes     string
	AppliedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ApplicationRepository interface {
	Create(ctx context.Context, a Application) (Application, error)
	GetByID(ctx context.Context, id uuid.UUID) (Application, error)
	List(ctx context.Context, status *pipeline.Status, limit, offset int) ([]Application, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status pipeline.Status, appliedAt *time.Time) error
}

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

func (r *PostgresApplicationRepository) Create(ctx context.Context, a Application) (Application, error) {
	if a.Status == "" {
		a.Status = pipeline.StatusSaved
	}

	row := r.db.QueryRow(ctx, `
		INSERT INTO applications (job_id, title, company, job_url, status, notes, applied_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING id, created_at, updated_at`,
		a.JobID, a.Title, a.Company, a.JobURL, string(a.Status), a.Notes, a.AppliedAt,
	)
	if err := row.Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return Application{}, err
	}
	return a, nil
}

func (r *PostgresApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (Application, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, job_id, title, company, job_url, status, notes, applied_at, created_at, updated_at
		FROM applications WHERE id = $1`,
		id,
	)

	var a Application
	var status string
	if err := row.Scan(&a.ID, &a.JobID, &a.Title, &a.Company, &a.JobURL, &status, &a.Notes, &a.AppliedAt, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Application{}, ErrApplicationNotFound
		}
		return Application{}, err
	}
	a.Status = pipeline.Status(status)
	return a, nil
}

func (r *PostgresApplicationRepository) List(ctx context.Context, status *pipeline.Status, limit, offset int) ([]Application, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	q := `
		SELECT id, job_id, title, company, job_url, status, notes, applied_at, created_at, updated_at
		FROM applications`
	args := []any{}
	if status != nil {
		q += ` WHERE status = $1`
		args = append(args, string(*status))
	}
	q += ` ORDER BY updated_at DESC LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Application, 0)
	for rows.Next() {
		var a Application
		var st string
		if err := rows.Scan(&a.ID, &a.JobID, &a.Title, &a.Company, &a.JobURL, &st, &a.Notes, &a.AppliedAt, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		a.Status = pipeline.Status(st)
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PostgresApplicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status pipeline.Status, appliedAt *time.Time) error {
	n, err := r.db.Exec(ctx, `
		UPDATE applications
		SET status = $2, applied_at = COALESCE($3, applied_at), updated_at = now()
		WHERE id = $1`,
		id, string(status), appliedAt,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

var _ ApplicationRepository = (*PostgresApplicationRepository)(nil)
