package audit

import (
	"context"
	"fmt"

	"github.com/jackc/pgconn"
)

// Execer is the part of *pgxpool.Pool the recorder needs.
type Execer interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
}

const createTableSQL = `CREATE TABLE IF NOT EXISTS tool_events (
	id           UUID PRIMARY KEY,
	request_id   TEXT NOT NULL,
	tool         TEXT NOT NULL,
	outcome      TEXT NOT NULL,
	input_bytes  BIGINT NOT NULL,
	output_bytes BIGINT NOT NULL,
	duration_ms  BIGINT NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL
)`

const insertEventSQL = `INSERT INTO tool_events (id, request_id, tool, outcome, input_bytes, output_bytes, duration_ms, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

// PostgresRecorder writes events to the tool_events table.
type PostgresRecorder struct {
	DB Execer
}

// NewPostgresRecorder creates the events table when missing.
func NewPostgresRecorder(ctx context.Context, db Execer) (*PostgresRecorder, error) {
	if _, err := db.Exec(ctx, createTableSQL); err != nil {
		return nil, fmt.Errorf("db error creating tool_events: %w", err)
	}
	return &PostgresRecorder{DB: db}, nil
}

func (r *PostgresRecorder) Record(ctx context.Context, e Event) error {
	_, err := r.DB.Exec(
		ctx,
		insertEventSQL,
		e.ID,
		e.RequestID,
		e.Tool,
		string(e.Outcome),
		e.InputBytes,
		e.OutputBytes,
		e.Duration.Milliseconds(),
		e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("db error inserting tool event: %w", err)
	}
	return nil
}
