package repository

import (
	"context"
	"errors"
	"time"

	"job-scout/internal/database"
	"job-scout/internal/domain/term"

	"github.com/google/uuid"
)

var ErrTermNotFound = errors.New("search term not found")

type SearchTermRepository interface {
	// Resolve returns the canonical SearchTerm for a (raw term, location)
	// pair, creating it on first lookup and bumping search_count and
	// last_searched_at on every subsequent one.
	Resolve(ctx context.Context, rawTerm, location string) (term.SearchTerm, error)
	MarkFetched(ctx context.Context, id uuid.UUID, at time.Time) error
	ListStalePopular(ctx context.Context, olderThan time.Time, limit int) ([]term.SearchTerm, error)
}

type PostgresSearchTermRepository struct {
	db database.DB
}

func NewPostgresSearchTermRepository(db database.DB) *PostgresSearchTermRepository {
	return &PostgresSearchTermRepository{db: db}
}

// Resolve is a single upsert: two concurrent first lookups of the same pair
// both land on the unique (raw_term, location) constraint and the loser takes
// the DO UPDATE arm, so neither caller ever sees a conflict error.
func (r *PostgresSearchTermRepository) Resolve(ctx context.Context, rawTerm, location string) (term.SearchTerm, error) {
	raw := term.Normalize(rawTerm)
	loc := term.Normalize(location)

	row := r.db.QueryRow(ctx, `
		INSERT INTO search_terms (raw_term, canonical_term, location)
		VALUES ($1, $1, $2)
		ON CONFLICT (raw_term, location) DO UPDATE SET
			search_count = search_terms.search_count + 1,
			last_searched_at = now()
		RETURNING id, raw_term, canonical_term, location, search_count, last_searched_at, last_fetched_at`,
		raw, loc,
	)

	var t term.SearchTerm
	if err := row.Scan(&t.ID, &t.RawTerm, &t.CanonicalTerm, &t.Location, &t.SearchCount, &t.LastSearchedAt, &t.LastFetchedAt); err != nil {
		return term.SearchTerm{}, err
	}
	return t, nil
}

func (r *PostgresSearchTermRepository) MarkFetched(ctx context.Context, id uuid.UUID, at time.Time) error {
	n, err := r.db.Exec(ctx, `UPDATE search_terms SET last_fetched_at = $2 WHERE id = $1`, id, at.UTC())
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTermNotFound
	}
	return nil
}

func (r *PostgresSearchTermRepository) ListStalePopular(ctx context.Context, olderThan time.Time, limit int) ([]term.SearchTerm, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, raw_term, canonical_term, location, search_count, last_searched_at, last_fetched_at
		FROM search_terms
		WHERE last_fetched_at IS NULL OR last_fetched_at < $1
		ORDER BY search_count DESC, last_searched_at DESC
		LIMIT $2`,
		olderThan.UTC(), limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]term.SearchTerm, 0, limit)
	for rows.Next() {
		var t term.SearchTerm
		if err := rows.Scan(&t.ID, &t.RawTerm, &t.CanonicalTerm, &t.Location, &t.SearchCount, &t.LastSearchedAt, &t.LastFetchedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

var _ SearchTermRepository = (*PostgresSearchTermRepository)(nil)
