package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/recbook/recbook/internal/bus"
)

//go:embed schema.sql
var schemaSQL string

// Snapshotter writes a point-in-time backup of the full record set.
// The store invokes it after add and delete; failures are logged by the
// store and never propagated to the mutating caller.
type Snapshotter interface {
	Snapshot(ctx context.Context) error
}

// Store is the SQLite-backed record store.
//
// The connection is established lazily by the first operation (or an
// explicit Open) and reused until Close. There is no pooling and no
// retry: the shell issues one operation at a time.
type Store struct {
	path string

	mu      sync.Mutex
	db      *sql.DB
	counter *Counter

	events   *bus.Bus
	snapshot Snapshotter
	now      func() time.Time
}

// Option configures a Store at construction time.
type Option func(*Store)

// WithEventBus sets the bus that receives add/update/delete events.
// Without a bus, mutations simply publish nothing.
func WithEventBus(b *bus.Bus) Option {
	return func(s *Store) { s.events = b }
}

// WithClock overrides the wall clock. Used by tests to pin timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates an unconnected store for the database at path.
// The connection is established on first use; see Open.
func New(path string, opts ...Option) *Store {
	s := &Store{
		path: path,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetSnapshotter installs the backup writer invoked after add/delete.
// Set after construction because the writer itself reads from the store.
func (s *Store) SetSnapshotter(sn Snapshotter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = sn
}

// Open establishes the connection if it is not already established.
// Safe to call repeatedly; subsequent calls are no-ops.
//
// On first success it applies pragmas and the schema, then seeds the
// UserID counter from MAX(user_id). A failed seed scan is logged and the
// counter starts at zero (the next Add allocates 1).
//
// Returns a *ConnectionError when the database cannot be opened or
// prepared. The error propagates immediately; there is no retry.
func (s *Store) Open(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.openLocked(ctx)
}

func (s *Store) openLocked(ctx context.Context) error {
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite3", s.path)
	if err != nil {
		return &ConnectionError{Path: s.path, Err: err}
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return &ConnectionError{Path: s.path, Err: err}
	}

	// SQLite supports a single writer; keep one connection to avoid
	// SQLITE_BUSY churn.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return &ConnectionError{Path: s.path, Err: err}
	}

	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		db.Close()
		return &ConnectionError{Path: s.path, Err: fmt.Errorf("apply schema: %w", err)}
	}

	s.db = db
	s.counter = seedCounter(ctx, db)
	return nil
}

// conn returns the live connection, establishing it if needed.
func (s *Store) conn(ctx context.Context) (*sql.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.openLocked(ctx); err != nil {
		return nil, err
	}
	return s.db, nil
}

// Close releases the connection. Idempotent; close errors are logged
// and swallowed so shutdown paths cannot fail here.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return
	}
	if err := s.db.Close(); err != nil {
		slog.Debug("store close failed", "path", s.path, "error", err)
	}
	s.db = nil
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// seedCounter initializes the UserID counter from the maximum existing
// UserID. A failed scan degrades to an empty-store seed rather than
// blocking the connection.
func seedCounter(ctx context.Context, db *sql.DB) *Counter {
	var max int64
	err := db.QueryRowContext(ctx, `SELECT COALESCE(MAX(user_id), 0) FROM records`).Scan(&max)
	if err != nil {
		slog.Warn("counter seed scan failed, starting from 1", "error", err)
		return NewCounterAt(0)
	}
	return NewCounterAt(max)
}

// publish emits an event if a bus is configured.
func (s *Store) publish(e bus.Event) {
	if s.events == nil {
		return
	}
	s.events.Publish(e)
}

// triggerSnapshot runs the configured backup writer, if any.
// Backup failure is a side-effect failure: logged, never returned.
func (s *Store) triggerSnapshot(ctx context.Context) {
	s.mu.Lock()
	sn := s.snapshot
	s.mu.Unlock()

	if sn == nil {
		return
	}
	if err := sn.Snapshot(ctx); err != nil {
		slog.Warn("backup snapshot failed", "error", err)
	}
}
