// Package activity appends a human-readable line to the activity log
// for every record lifecycle event and mirrors it to the console.
//
// The logger subscribes to all three event kinds on the bus. Failures
// here are strictly side effects: an unwritable log file degrades to a
// warning and the mutation that produced the event is unaffected.
package activity

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/recbook/recbook/internal/bus"
)

// Logger appends activity lines to a single append-only file.
//
// Thread-safety: writes are mutex-guarded; events from the synchronous
// bus arrive one at a time, but the guard keeps the file well-formed if
// that ever changes.
type Logger struct {
	path string
	mu   sync.Mutex
	now  func() time.Time
}

// NewLogger creates a logger that appends to the file at path.
// The parent directory is created on first write, not here.
func NewLogger(path string) *Logger {
	return &Logger{
		path: path,
		now:  time.Now,
	}
}

// SetClock overrides the wall clock. Used by tests to pin line prefixes.
func (l *Logger) SetClock(now func() time.Time) {
	l.now = now
}

// Subscribe registers the logger for all three event kinds.
func (l *Logger) Subscribe(b *bus.Bus) {
	for _, k := range []bus.Kind{bus.KindAdd, bus.KindUpdate, bus.KindDelete} {
		b.Subscribe(k, l.handle)
	}
}

// handle formats and records one event.
// Never returns or propagates an error: a failed append is logged as a
// warning and the event is dropped from the file, not from the system.
func (l *Logger) handle(e bus.Event) {
	line := FormatLine(e)
	slog.Info(line)
	if err := l.append(line); err != nil {
		slog.Warn("activity log write failed", "path", l.path, "error", err)
	}
}

// append writes one timestamped line to the log file, creating the log
// directory if absent. The file is opened O_APPEND and never truncated.
func (l *Logger) append(line string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if dir := filepath.Dir(l.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create log dir: %w", err)
		}
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	stamp := l.now().UTC().Format(time.RFC3339)
	if _, err := fmt.Fprintf(f, "[%s] %s\n", stamp, line); err != nil {
		return fmt.Errorf("append log line: %w", err)
	}
	return nil
}

// FormatLine renders the unprefixed activity line for an event:
// "<ACTION> id=<userID> name=<name>".
func FormatLine(e bus.Event) string {
	return fmt.Sprintf("%s id=%d name=%s", strings.ToUpper(string(e.Kind)), e.Record.UserID, e.Record.Name)
}
