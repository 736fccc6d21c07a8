package journal

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rickgao/kalshi-oracle/internal/phase"
)

type execCall struct {
	sql  string
	args []any
}

type fakeDB struct {
	calls   []execCall
	queued  int
	execErr error
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.calls = append(f.calls, execCall{sql: sql, args: args})
	return pgconn.NewCommandTag("INSERT 0 1"), f.execErr
}

func (f *fakeDB) SendBatch(_ context.Context, b *pgx.Batch) pgx.BatchResults {
	f.queued = b.Len()
	return &fakeBatchResults{err: f.execErr}
}

type fakeBatchResults struct {
	err error
}

func (r *fakeBatchResults) Exec() (pgconn.CommandTag, error) { return pgconn.CommandTag{}, r.err }
func (r *fakeBatchResults) Query() (pgx.Rows, error)         { return nil, r.err }
func (r *fakeBatchResults) QueryRow() pgx.Row                { return nil }
func (r *fakeBatchResults) Close() error                     { return nil }

func runOutcome(t *testing.T, status int, body string) phase.Outcome {
	t.Helper()
	return phase.Run(context.Background(), phase.Host{
		Input:   []byte("KXGDP"),
		Fetcher: stubFetcher{status: status, body: body},
	}, phase.Options{})
}

func TestNewEntry(t *testing.T) {
	id := uuid.New()
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.FixedZone("EST", -5*3600))

	t.Run("success", func(t *testing.T) {
		e := NewEntry(id, "node-a", 0, runOutcome(t, 200, `{"market":{"yes_bid":37}}`), now)
		if e.Kind != "success" {
			t.Errorf("Kind = %q, want %q", e.Kind, "success")
		}
		if e.Payload != "37" {
			t.Errorf("Payload = %q, want %q", e.Payload, "37")
		}
		if e.Ticker != "KXGDP" {
			t.Errorf("Ticker = %q, want %q", e.Ticker, "KXGDP")
		}
		if e.Failure != "" || e.Detail != "" {
			t.Errorf("Failure/Detail = %q/%q, want empty", e.Failure, e.Detail)
		}
		if e.RecordedAt.Location() != time.UTC {
			t.Errorf("RecordedAt location = %v, want UTC", e.RecordedAt.Location())
		}
	})

	t.Run("logical error", func(t *testing.T) {
		e := NewEntry(id, "node-a", 1, runOutcome(t, 404, "not found"), now)
		if e.Kind != "logical_error" {
			t.Errorf("Kind = %q, want %q", e.Kind, "logical_error")
		}
		if e.Payload != phase.FetchErrorMessage {
			t.Errorf("Payload = %q, want %q", e.Payload, phase.FetchErrorMessage)
		}
		if e.Node != 1 {
			t.Errorf("Node = %d, want 1", e.Node)
		}
	})

	t.Run("hard failure", func(t *testing.T) {
		e := NewEntry(id, "node-a", 0, runOutcome(t, 200, `{}`), now)
		if e.Kind != "hard_failure" {
			t.Errorf("Kind = %q, want %q", e.Kind, "hard_failure")
		}
		if e.Failure != "decode" {
			t.Errorf("Failure = %q, want %q", e.Failure, "decode")
		}
		if !strings.HasPrefix(e.Detail, "decode market response:") {
			t.Errorf("Detail = %q, want decode prefix", e.Detail)
		}
		if e.Payload != "" {
			t.Errorf("Payload = %q, want empty", e.Payload)
		}
	})
}

func TestStoreRecord(t *testing.T) {
	db := &fakeDB{}
	s := NewStore(db)
	e := Entry{InvocationID: uuid.New(), InstanceID: "node-a", Ticker: "KXGDP", Kind: "success", Payload: "37"}

	if err := s.Record(context.Background(), e); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if len(db.calls) != 1 {
		t.Fatalf("Exec calls = %d, want 1", len(db.calls))
	}
	if !strings.Contains(db.calls[0].sql, "INSERT INTO phase_outcomes") {
		t.Errorf("sql = %q, want insert", db.calls[0].sql)
	}
	if len(db.calls[0].args) != 9 {
		t.Errorf("args = %d, want 9", len(db.calls[0].args))
	}
	if db.calls[0].args[0] != e.InvocationID {
		t.Errorf("args[0] = %v, want %v", db.calls[0].args[0], e.InvocationID)
	}
}

func TestStoreErrors(t *testing.T) {
	cause := errors.New("relation does not exist")
	s := NewStore(&fakeDB{execErr: cause})

	if err := s.EnsureSchema(context.Background()); !errors.Is(err, cause) {
		t.Errorf("EnsureSchema() error = %v, want %v", err, cause)
	}
	if err := s.Record(context.Background(), Entry{}); !errors.Is(err, cause) {
		t.Errorf("Record() error = %v, want %v", err, cause)
	}
	if err := s.RecordAll(context.Background(), []Entry{{}, {}}); !errors.Is(err, cause) {
		t.Errorf("RecordAll() error = %v, want %v", err, cause)
	}
}

func TestStoreRecordAll(t *testing.T) {
	t.Run("batches entries", func(t *testing.T) {
		db := &fakeDB{}
		entries := []Entry{{InvocationID: uuid.New()}, {InvocationID: uuid.New()}, {InvocationID: uuid.New()}}
		if err := NewStore(db).RecordAll(context.Background(), entries); err != nil {
			t.Fatalf("RecordAll failed: %v", err)
		}
		if db.queued != 3 {
			t.Errorf("queued = %d, want 3", db.queued)
		}
	})

	t.Run("empty is a no-op", func(t *testing.T) {
		db := &fakeDB{}
		if err := NewStore(db).RecordAll(context.Background(), nil); err != nil {
			t.Fatalf("RecordAll failed: %v", err)
		}
		if db.queued != 0 {
			t.Errorf("queued = %d, want 0", db.queued)
		}
	})
}
