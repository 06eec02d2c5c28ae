// Package export renders the record set to the on-demand export file.
//
// Unlike backups, the export is a single file overwritten on every run:
// a short header (export timestamp and record count) followed by one
// line per record. The format is pinned by a golden-file test.
package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/recbook/recbook/internal/record"
)

// Source is the read side of the record store.
type Source interface {
	List(ctx context.Context) ([]record.Public, error)
}

// Writer renders exports for a Source.
type Writer struct {
	source Source
	path   string
	now    func() time.Time
}

// NewWriter creates an export writer targeting the file at path.
func NewWriter(source Source, path string) *Writer {
	return &Writer{
		source: source,
		path:   path,
		now:    time.Now,
	}
}

// SetClock overrides the wall clock. Used by tests to pin the header.
func (w *Writer) SetClock(now func() time.Time) {
	w.now = now
}

// Export renders the current record set to out.
// Returns the number of records written.
func (w *Writer) Export(ctx context.Context, out io.Writer) (int, error) {
	recs, err := w.source.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("export: read records: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "recbook export\n")
	fmt.Fprintf(&b, "exported: %s\n", w.now().UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "records: %d\n\n", len(recs))

	for i, r := range recs {
		created := r.Created
		if created == "" {
			created = "-"
		}
		fmt.Fprintf(&b, "%d. [%d] %s = %s (%s)\n", i+1, r.UserID, r.Name, r.Value, created)
	}

	if _, err := io.WriteString(out, b.String()); err != nil {
		return 0, fmt.Errorf("export: write: %w", err)
	}
	return len(recs), nil
}

// ExportFile renders the current record set to the configured path,
// overwriting any previous export. Returns the path written and the
// number of records.
func (w *Writer) ExportFile(ctx context.Context) (string, int, error) {
	if dir := filepath.Dir(w.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", 0, fmt.Errorf("export: create dir: %w", err)
		}
	}

	f, err := os.Create(w.path)
	if err != nil {
		return "", 0, fmt.Errorf("export: create %s: %w", w.path, err)
	}
	defer f.Close()

	n, err := w.Export(ctx, f)
	if err != nil {
		return "", 0, err
	}
	return w.path, n, nil
}
