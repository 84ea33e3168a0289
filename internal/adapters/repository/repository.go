// Package repository implements the persistence ports on PostgreSQL via
// database/sql and lib/pq.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/funaab-ict/clearance-service/internal/core/domain"
)

const uniqueViolation = "23505"

// mapError normalizes driver errors into the domain taxonomy.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("%s: %w", pqErr.Detail, domain.ErrConflict)
	}
	return err
}

// insertOutboxEvent writes an outbox row inside the caller's transaction and
// notifies the relay with the event id.
func insertOutboxEvent(ctx context.Context, tx *sql.Tx, eventType string, payload []byte) error {
	id := uuid.NewString()
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO outbox_events (id, event_type, payload, created_at) VALUES ($1, $2, $3, $4)",
		id, eventType, payload, time.Now(),
	); err != nil {
		return err
	}
	_, err := tx.ExecContext(ctx, "SELECT pg_notify('outbox_channel', $1)", id)
	return err
}

// nullable returns a NULL-friendly value for optional text columns.
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
