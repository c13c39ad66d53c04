package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Homeless-Gonnabe-5-0/Nestfinder/internal/model"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS extraction_logs (
	id            BIGSERIAL PRIMARY KEY,
	extraction_id UUID NOT NULL UNIQUE,
	message       TEXT NOT NULL,
	pinned        BOOLEAN NOT NULL DEFAULT FALSE,
	outcome       TEXT NOT NULL,
	spec          JSONB,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// PostgresRepository handles database operations
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(dsn string, maxConn, maxIdleConn int) (*PostgresRepository, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	return &PostgresRepository{db: db}, nil
}

// NewPostgresRepositoryFromDB wraps an existing connection
func NewPostgresRepositoryFromDB(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Close closes the database connection
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

// EnsureSchema creates the extraction_logs table if it does not exist
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// LogExtraction stores one extraction result
func (r *PostgresRepository) LogExtraction(ctx context.Context, entry *model.ExtractionLog) error {
	query := `
		INSERT INTO extraction_logs (extraction_id, message, pinned, outcome, spec)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query, entry.ExtractionID, entry.Message, entry.Pinned, entry.Outcome, entry.Spec)
	if err != nil {
		return fmt.Errorf("failed to log extraction: %w", err)
	}
	return nil
}

// GetExtraction retrieves a logged extraction by its ID, or nil if absent
func (r *PostgresRepository) GetExtraction(ctx context.Context, extractionID string) (*model.ExtractionLog, error) {
	var entry model.ExtractionLog
	query := `
		SELECT id, extraction_id, message, pinned, outcome, spec, created_at
		FROM extraction_logs
		WHERE extraction_id = $1
	`
	err := r.db.GetContext(ctx, &entry, query, extractionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get extraction: %w", err)
	}
	return &entry, nil
}
