package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/recbook/recbook/internal/activity"
	"github.com/recbook/recbook/internal/backup"
	"github.com/recbook/recbook/internal/bus"
	"github.com/recbook/recbook/internal/config"
	"github.com/recbook/recbook/internal/export"
	"github.com/recbook/recbook/internal/record"
	"github.com/recbook/recbook/internal/store"
)

// App bundles the wired components for a single command invocation:
// config, store, event bus with the activity logger subscribed, the
// backup snapshotter installed on the store, and the export writer.
type App struct {
	Config config.Config
	Store  *store.Store
	Bus    *bus.Bus
	Export *export.Writer
}

// newApp loads configuration and wires the component graph.
// The store connection itself stays lazy; nothing touches the database
// until the first operation runs.
func newApp(opts *RootOptions) (*App, error) {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load configuration", err)
	}
	if opts.Database != "" {
		cfg.DB = opts.Database
	}

	b := bus.New()
	activity.NewLogger(cfg.LogFile).Subscribe(b)

	st := store.New(cfg.DB, store.WithEventBus(b))
	st.SetSnapshotter(backup.NewWriter(st, cfg.BackupDir))

	return &App{
		Config: cfg,
		Store:  st,
		Bus:    b,
		Export: export.NewWriter(st, cfg.ExportFile),
	}, nil
}

// Close releases the store connection. Safe to call unconditionally.
func (a *App) Close() {
	a.Store.Close()
}

// formatter builds the output formatter for a command.
func formatter(cmd *cobra.Command, opts *RootOptions) *OutputFormatter {
	return &OutputFormatter{
		Format:  opts.Format,
		Writer:  cmd.OutOrStdout(),
		Verbose: opts.Verbose,
	}
}

// storeError maps a store failure onto a CLI exit error.
func storeError(err error) error {
	if store.IsConnectionError(err) {
		return WrapExitError(ExitCommandError, "record store unreachable", err)
	}
	return WrapExitError(ExitFailure, "store operation failed", err)
}

// validateFields rejects blank name input before it reaches the store.
// Values may be empty; names may not.
func validateFields(name string) error {
	if strings.TrimSpace(name) == "" {
		return NewExitError(ExitCommandError, "record name must not be empty")
	}
	return nil
}

// renderRecord renders one record for text output.
func renderRecord(r record.Public) string {
	line := fmt.Sprintf("[%d] %s = %s", r.UserID, r.Name, r.Value)
	if r.Created != "" {
		line += fmt.Sprintf(" (created %s", r.Created)
		if r.Updated != "" {
			line += fmt.Sprintf(", updated %s", r.Updated)
		}
		line += ")"
	}
	return line
}

// renderRecords renders a record list for text output.
func renderRecords(recs []record.Public) string {
	if len(recs) == 0 {
		return "no records"
	}
	lines := make([]string, 0, len(recs))
	for _, r := range recs {
		lines = append(lines, renderRecord(r))
	}
	return strings.Join(lines, "\n")
}
