// Package store provides PostgreSQL persistence for finished screening
// results. The store is optional: without a DATABASE_URL the application
// runs entirely in memory and no run is resumable after a restart.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/resume-screener/internal/pipeline"
	"github.com/jonathan/resume-screener/internal/provider"
	"github.com/jonathan/resume-screener/internal/types"
)

// ErrNotFound is returned when a screening record does not exist.
var ErrNotFound = errors.New("screening not found")

// Store wraps a PostgreSQL connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// Screening is one persisted screening result.
type Screening struct {
	ID         uuid.UUID          `json:"id"`
	FileName   string             `json:"file_name,omitempty"`
	JobExcerpt string             `json:"job_excerpt,omitempty"`
	Verdict    *types.Verdict     `json:"verdict"`
	Attempts   []provider.Attempt `json:"attempts,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
}

// Connect establishes a connection pool to the database.
func Connect(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Close closes the connection pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Migrate creates the screenings table if needed.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS screenings (
			id UUID PRIMARY KEY,
			file_name TEXT NOT NULL DEFAULT '',
			job_excerpt TEXT NOT NULL DEFAULT '',
			verdict JSONB NOT NULL,
			attempts JSONB NOT NULL DEFAULT '[]',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return fmt.Errorf("failed to create screenings table: %w", err)
	}
	return nil
}

// jobExcerptLen bounds how much of the job description is kept for listing.
const jobExcerptLen = 200

// SaveScreening persists a finished pipeline result.
func (s *Store) SaveScreening(ctx context.Context, result *pipeline.Result, jobText string) error {
	id, err := uuid.Parse(result.ID)
	if err != nil {
		return fmt.Errorf("invalid screening id %q: %w", result.ID, err)
	}

	verdictJSON, err := json.Marshal(result.Verdict)
	if err != nil {
		return fmt.Errorf("failed to marshal verdict: %w", err)
	}
	attemptsJSON, err := json.Marshal(result.Attempts)
	if err != nil {
		return fmt.Errorf("failed to marshal attempts: %w", err)
	}

	excerpt := jobText
	if len(excerpt) > jobExcerptLen {
		excerpt = excerpt[:jobExcerptLen]
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO screenings (id, file_name, job_excerpt, verdict, attempts, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		id, result.FileName, excerpt, verdictJSON, attemptsJSON, result.Finished,
	)
	if err != nil {
		return fmt.Errorf("failed to save screening: %w", err)
	}
	return nil
}

// GetScreening fetches one screening by ID.
func (s *Store) GetScreening(ctx context.Context, id uuid.UUID) (*Screening, error) {
	var (
		rec          Screening
		verdictJSON  []byte
		attemptsJSON []byte
	)
	err := s.pool.QueryRow(ctx,
		`SELECT id, file_name, job_excerpt, verdict, attempts, created_at
		 FROM screenings WHERE id = $1`, id,
	).Scan(&rec.ID, &rec.FileName, &rec.JobExcerpt, &verdictJSON, &attemptsJSON, &rec.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get screening: %w", err)
	}

	if err := json.Unmarshal(verdictJSON, &rec.Verdict); err != nil {
		return nil, fmt.Errorf("failed to parse stored verdict: %w", err)
	}
	if err := json.Unmarshal(attemptsJSON, &rec.Attempts); err != nil {
		return nil, fmt.Errorf("failed to parse stored attempts: %w", err)
	}
	return &rec, nil
}

// ListScreenings returns recent screenings, newest first. The attempt log
// is omitted from listings.
func (s *Store) ListScreenings(ctx context.Context, limit int) ([]Screening, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, file_name, job_excerpt, verdict, created_at
		 FROM screenings ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list screenings: %w", err)
	}
	defer rows.Close()

	var out []Screening
	for rows.Next() {
		var (
			rec         Screening
			verdictJSON []byte
		)
		if err := rows.Scan(&rec.ID, &rec.FileName, &rec.JobExcerpt, &verdictJSON, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan screening row: %w", err)
		}
		if err := json.Unmarshal(verdictJSON, &rec.Verdict); err != nil {
			return nil, fmt.Errorf("failed to parse stored verdict: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
