// Package backup writes timestamped full-set snapshots of the record
// collection.
//
// A snapshot is triggered by the store after every add and delete. The
// writer reads the entire current record set, projects each record to
// its backup shape, and writes a JSON array to a new file named with a
// second-precision UTC timestamp. Two snapshots within the same second
// overwrite the same file; that is acceptable, the later one wins.
//
// Snapshot failures are reported to the caller, but the store treats
// them as side-effect failures: logged, never propagated to the
// mutating operation.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/recbook/recbook/internal/record"
)

// Source is the read side of the record store.
type Source interface {
	List(ctx context.Context) ([]record.Public, error)
}

// Entry is the backup projection of a single record.
type Entry struct {
	InternalID string    `json:"internalId"`
	UserID     int64     `json:"userID"`
	Name       string    `json:"name"`
	Value      string    `json:"value"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Writer snapshots a Source into a backup directory.
type Writer struct {
	source Source
	dir    string
	now    func() time.Time
}

// NewWriter creates a snapshot writer for the given source and
// directory. The directory is created on first use, not here.
func NewWriter(source Source, dir string) *Writer {
	return &Writer{
		source: source,
		dir:    dir,
		now:    time.Now,
	}
}

// SetClock overrides the wall clock. Used by tests to pin file names.
func (w *Writer) SetClock(now func() time.Time) {
	w.now = now
}

// Snapshot reads the full record set and writes it to a new timestamped
// file, creating the backup directory if absent.
//
// Implements store.Snapshotter.
func (w *Writer) Snapshot(ctx context.Context) error {
	recs, err := w.source.List(ctx)
	if err != nil {
		return fmt.Errorf("snapshot: read records: %w", err)
	}

	entries := make([]Entry, 0, len(recs))
	for _, r := range recs {
		entries = append(entries, Entry{
			InternalID: r.InternalID,
			UserID:     r.UserID,
			Name:       r.Name,
			Value:      r.Value,
			CreatedAt:  r.CreatedAt,
		})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("snapshot: marshal: %w", err)
	}

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("snapshot: create backup dir: %w", err)
	}

	path := filepath.Join(w.dir, FileName(w.now()))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("snapshot: write %s: %w", path, err)
	}

	return nil
}

// FileName returns the backup file name for a point in time:
// backup_<UTC timestamp, second precision, colons replaced>.json.
func FileName(t time.Time) string {
	return "backup_" + t.UTC().Format("2006-01-02T15-04-05") + ".json"
}
