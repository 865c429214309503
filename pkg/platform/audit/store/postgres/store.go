package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	audit "bankapi/pkg/platform/audit"

	"github.com/google/uuid"
)

// Schema creates the audit_events table when missing.
var Schema = []string{
	`CREATE TABLE IF NOT EXISTS audit_events (
		id         UUID PRIMARY KEY,
		category   TEXT NOT NULL,
		timestamp  TIMESTAMPTZ NOT NULL,
		request_id TEXT NOT NULL DEFAULT '',
		operation  TEXT NOT NULL,
		kind       TEXT NOT NULL,
		status     INTEGER NOT NULL,
		message    TEXT NOT NULL DEFAULT '',
		trail      JSONB NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS audit_events_operation_idx ON audit_events (operation, timestamp)`,
}

// Store keeps outcome audit events in PostgreSQL so they can be queried back.
type Store struct {
	db *sql.DB
}

// New creates a new PostgreSQL audit store.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Append inserts an event. Re-delivery of the same ID is ignored.
func (s *Store) Append(ctx context.Context, event audit.Event) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	trail := event.Trail
	if trail == nil {
		trail = []string{}
	}
	trailJSON, err := json.Marshal(trail)
	if err != nil {
		return fmt.Errorf("marshal audit trail: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO audit_events (id, category, timestamp, request_id, operation, kind, status, message, trail)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO NOTHING
	`, event.ID, string(event.Category()), event.Timestamp, event.RequestID,
		string(event.Operation), event.Kind, event.Status, event.Message, trailJSON)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

// ListByOperation returns the events for op, oldest first.
func (s *Store) ListByOperation(ctx context.Context, op audit.Operation) ([]audit.Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, timestamp, request_id, operation, kind, status, message, trail
		FROM audit_events
		WHERE operation = $1
		ORDER BY timestamp ASC
	`, string(op))
	if err != nil {
		return nil, fmt.Errorf("list audit events by operation: %w", err)
	}
	return scanEvents(rows)
}

// ListRecent returns the last limit events, oldest first.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]audit.Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, timestamp, request_id, operation, kind, status, message, trail
		FROM (
			SELECT * FROM audit_events ORDER BY timestamp DESC LIMIT $1
		) recent
		ORDER BY timestamp ASC
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent audit events: %w", err)
	}
	return scanEvents(rows)
}

func scanEvents(rows *sql.Rows) ([]audit.Event, error) {
	defer rows.Close()

	var out []audit.Event
	for rows.Next() {
		var (
			event     audit.Event
			operation string
			trailJSON []byte
		)
		if err := rows.Scan(&event.ID, &event.Timestamp, &event.RequestID, &operation,
			&event.Kind, &event.Status, &event.Message, &trailJSON); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		event.Operation = audit.Operation(operation)
		if err := json.Unmarshal(trailJSON, &event.Trail); err != nil {
			return nil, fmt.Errorf("decode audit trail: %w", err)
		}
		out = append(out, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}
	return out, nil
}
