package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/rhbsesame/conversation-analyzer/internal/analysis"
)

// Schema is the SQL DDL for the analysis_runs table. Execute it via
// [PostgresStore.Migrate] or apply it manually during deployment.
const Schema = `
CREATE TABLE IF NOT EXISTS analysis_runs (
    id           BIGSERIAL PRIMARY KEY,
    source       TEXT NOT NULL,
    duration_sec DOUBLE PRECISION NOT NULL,
    label_a      TEXT NOT NULL,
    label_b      TEXT NOT NULL,
    stats        JSONB NOT NULL,
    created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_analysis_runs_source ON analysis_runs(source);
CREATE INDEX IF NOT EXISTS idx_analysis_runs_created ON analysis_runs(created_at DESC);
`

// DB is the database interface used by [PostgresStore]. Both *pgxpool.Pool
// and *pgx.Conn satisfy this interface.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresStore is a [Store] backed by a PostgreSQL database. The full
// statistics record is serialised as JSONB so new metrics never require a
// schema migration.
type PostgresStore struct {
	db DB
}

// Compile-time interface check.
var _ Store = (*PostgresStore)(nil)

// NewPostgresStore creates a new [PostgresStore] that uses the given
// database connection or pool. The caller is responsible for calling
// [PostgresStore.Migrate] to ensure the schema exists before issuing
// queries.
func NewPostgresStore(db DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate executes the [Schema] DDL against the database, creating the
// analysis_runs table and indexes if they do not already exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.db.Exec(ctx, Schema)
	if err != nil {
		return fmt.Errorf("store: migrate: %w", err)
	}
	return nil
}

// SaveRun inserts a run and fills in its ID and CreatedAt.
func (s *PostgresStore) SaveRun(ctx context.Context, run *Run) error {
	if run.Stats == nil {
		return errors.New("store: run has no stats")
	}
	statsJSON, err := json.Marshal(run.Stats)
	if err != nil {
		return fmt.Errorf("store: marshal stats: %w", err)
	}

	const query = `
		INSERT INTO analysis_runs (source, duration_sec, label_a, label_b, stats)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id, created_at`

	err = s.db.QueryRow(ctx, query,
		run.Source, run.DurationSec, run.LabelA, run.LabelB, statsJSON,
	).Scan(&run.ID, &run.CreatedAt)
	if err != nil {
		return fmt.Errorf("store: save run: %w", err)
	}
	return nil
}

// GetRun retrieves a run by ID. It returns (nil, nil) if no run with the
// given ID exists.
func (s *PostgresStore) GetRun(ctx context.Context, id int64) (*Run, error) {
	const query = `
		SELECT id, source, duration_sec, label_a, label_b, stats, created_at
		FROM analysis_runs
		WHERE id = $1`

	var run Run
	var statsJSON []byte

	err := s.db.QueryRow(ctx, query, id).Scan(
		&run.ID, &run.Source, &run.DurationSec, &run.LabelA, &run.LabelB,
		&statsJSON, &run.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("store: get run %d: %w", id, err)
	}

	run.Stats = &analysis.ConversationStats{}
	if err := json.Unmarshal(statsJSON, run.Stats); err != nil {
		return nil, fmt.Errorf("store: unmarshal stats for run %d: %w", id, err)
	}
	return &run, nil
}

// ListRuns returns the most recent runs, newest first. A non-positive limit
// returns all runs.
func (s *PostgresStore) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if limit <= 0 {
		const query = `
			SELECT id, source, duration_sec, label_a, label_b, stats, created_at
			FROM analysis_runs
			ORDER BY created_at DESC`
		rows, err = s.db.Query(ctx, query)
	} else {
		const query = `
			SELECT id, source, duration_sec, label_a, label_b, stats, created_at
			FROM analysis_runs
			ORDER BY created_at DESC
			LIMIT $1`
		rows, err = s.db.Query(ctx, query, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("store: list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var statsJSON []byte
		if err := rows.Scan(
			&run.ID, &run.Source, &run.DurationSec, &run.LabelA, &run.LabelB,
			&statsJSON, &run.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("store: list scan: %w", err)
		}
		run.Stats = &analysis.ConversationStats{}
		if err := json.Unmarshal(statsJSON, run.Stats); err != nil {
			return nil, fmt.Errorf("store: unmarshal stats for run %d: %w", run.ID, err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: list runs: %w", err)
	}
	return runs, nil
}
