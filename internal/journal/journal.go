// Package journal persists reported phase outcomes to PostgreSQL for later audit.
//
// The journal sits outside the phase: a write failure is logged by the caller and
// never alters the outcome that was reported to the host.
package journal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rickgao/kalshi-oracle/internal/phase"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS phase_outcomes (
    invocation_id UUID PRIMARY KEY,
    instance_id   TEXT NOT NULL,
    node          INTEGER NOT NULL,
    ticker        TEXT NOT NULL,
    kind          TEXT NOT NULL,
    payload       TEXT NOT NULL,
    failure       TEXT NOT NULL,
    detail        TEXT NOT NULL,
    recorded_at   TIMESTAMPTZ NOT NULL
)`

const insertSQL = `
INSERT INTO phase_outcomes (
    invocation_id, instance_id, node, ticker, kind, payload, failure, detail, recorded_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

// Entry is one journaled outcome.
type Entry struct {
	InvocationID uuid.UUID
	InstanceID   string
	Node         int
	Ticker       string
	Kind         string
	Payload      string
	Failure      string
	Detail       string
	RecordedAt   time.Time
}

// NewEntry builds an Entry for outcome o.
func NewEntry(id uuid.UUID, instanceID string, node int, o phase.Outcome, now time.Time) Entry {
	e := Entry{
		InvocationID: id,
		InstanceID:   instanceID,
		Node:         node,
		Ticker:       o.Ticker,
		Kind:         o.Kind.String(),
		Payload:      string(o.Payload),
		RecordedAt:   now.UTC(),
	}
	if kind, ok := o.Failure(); ok {
		e.Failure = kind.String()
	}
	if o.Err != nil {
		e.Detail = o.Err.Error()
	}
	return e
}

// Args returns the positional arguments for the insert statement.
func (e Entry) Args() []any {
	return []any{
		e.InvocationID,
		e.InstanceID,
		e.Node,
		e.Ticker,
		e.Kind,
		e.Payload,
		e.Failure,
		e.Detail,
		e.RecordedAt,
	}
}

// DB is the subset of pgxpool.Pool the Store needs.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// Store writes entries to the phase_outcomes table.
type Store struct {
	db DB
}

// NewStore creates a Store on db.
func NewStore(db DB) *Store {
	return &Store{db: db}
}

// EnsureSchema creates the journal table if it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create phase_outcomes: %w", err)
	}
	return nil
}

// Record inserts a single entry.
func (s *Store) Record(ctx context.Context, e Entry) error {
	if _, err := s.db.Exec(ctx, insertSQL, e.Args()...); err != nil {
		return fmt.Errorf("insert outcome %s: %w", e.InvocationID, err)
	}
	return nil
}

// RecordAll inserts entries in one batch.
func (s *Store) RecordAll(ctx context.Context, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, e := range entries {
		batch.Queue(insertSQL, e.Args()...)
	}

	br := s.db.SendBatch(ctx, batch)
	var errs []error
	for _, e := range entries {
		if _, err := br.Exec(); err != nil {
			errs = append(errs, fmt.Errorf("insert outcome %s: %w", e.InvocationID, err))
		}
	}
	if err := br.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close batch: %w", err))
	}
	return errors.Join(errs...)
}
