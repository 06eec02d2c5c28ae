package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/recbook/recbook/internal/query"
	"github.com/recbook/recbook/internal/record"
)

// Shell styling. Kept subdued: the shell is a thin front over the store.
var (
	shellTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	shellMenuStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	shellPromptStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	shellErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// NewShellCommand creates the interactive shell command.
func NewShellCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive menu shell",
		Long: `Start the menu-driven interactive shell.

The shell issues one operation at a time against the record store.
Quitting (or Ctrl-C) closes the store connection before the process
exits. If the store is unreachable at startup the shell reports the
error and exits non-zero.

Example:
  recbook shell
  recbook shell --db /tmp/demo.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(opts, cmd)
		},
	}
}

func runShell(opts *RootOptions, cmd *cobra.Command) error {
	app, err := newApp(opts)
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect eagerly: an unreachable store is fatal at startup.
	if err := app.Store.Open(ctx); err != nil {
		return WrapExitError(ExitCommandError, "cannot connect to record store", err)
	}

	sh := &shell{
		app: app,
		in:  bufio.NewReader(cmd.InOrStdin()),
		out: cmd.OutOrStdout(),
	}
	return sh.run(ctx)
}

// shell drives the menu loop. One operation runs at a time; the loop
// blocks on its completion before accepting the next command.
type shell struct {
	app *App
	in  *bufio.Reader
	out io.Writer
}

func (s *shell) run(ctx context.Context) error {
	fmt.Fprintln(s.out, shellTitleStyle.Render("recbook"))

	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(s.out, "\nshutting down")
			return nil
		default:
		}

		s.printMenu()
		choice, err := s.prompt("select")
		if err != nil {
			// EOF on stdin ends the session like an explicit quit.
			return nil
		}

		switch strings.TrimSpace(choice) {
		case "1":
			err = s.addRecord(ctx)
		case "2":
			err = s.listRecords(ctx)
		case "3":
			err = s.searchRecords(ctx)
		case "4":
			err = s.sortRecords(ctx)
		case "5":
			err = s.updateRecord(ctx)
		case "6":
			err = s.deleteRecord(ctx)
		case "7":
			err = s.exportRecords(ctx)
		case "8":
			err = s.showStats(ctx)
		case "0", "q", "quit", "exit":
			fmt.Fprintln(s.out, "bye")
			return nil
		default:
			fmt.Fprintln(s.out, shellErrorStyle.Render("unknown selection"))
			continue
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			// Operation failures are reported and the menu continues;
			// only startup connection failures abort the shell.
			fmt.Fprintln(s.out, shellErrorStyle.Render(err.Error()))
		}
	}
}

func (s *shell) printMenu() {
	menu := strings.Join([]string{
		"",
		"1) add record",
		"2) list records",
		"3) search records",
		"4) sort records",
		"5) update record",
		"6) delete record",
		"7) export records",
		"8) statistics",
		"0) quit",
	}, "\n")
	fmt.Fprintln(s.out, shellMenuStyle.Render(menu))
}

// prompt prints a label and reads one trimmed line.
func (s *shell) prompt(label string) (string, error) {
	fmt.Fprint(s.out, shellPromptStyle.Render(label+"> "))
	line, err := s.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (s *shell) addRecord(ctx context.Context) error {
	name, err := s.prompt("name")
	if err != nil {
		return err
	}
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("record name must not be empty")
	}
	value, err := s.prompt("value")
	if err != nil {
		return err
	}

	rec, err := s.app.Store.Add(ctx, name, value)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "added %s\n", renderRecord(rec))
	return nil
}

func (s *shell) listRecords(ctx context.Context) error {
	recs, err := s.app.Store.List(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, renderRecords(recs))
	return nil
}

func (s *shell) searchRecords(ctx context.Context) error {
	substr, err := s.prompt("name contains")
	if err != nil {
		return err
	}

	recs, err := s.app.Store.List(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, renderRecords(query.SearchByName(recs, substr)))
	return nil
}

func (s *shell) sortRecords(ctx context.Context) error {
	field, err := s.prompt("sort by (name/created)")
	if err != nil {
		return err
	}
	dir, err := s.prompt("direction (asc/desc)")
	if err != nil {
		return err
	}
	desc := strings.EqualFold(dir, "desc")

	recs, err := s.app.Store.List(ctx)
	if err != nil {
		return err
	}

	var sorted []record.Public
	switch strings.ToLower(field) {
	case "name", "":
		sorted = query.SortByName(recs, desc)
	case "created":
		sorted = query.SortByCreated(recs, desc)
	default:
		return fmt.Errorf("unknown sort field %q: must be name or created", field)
	}

	fmt.Fprintln(s.out, renderRecords(sorted))
	return nil
}

func (s *shell) updateRecord(ctx context.Context) error {
	token, err := s.prompt("id")
	if err != nil {
		return err
	}
	name, err := s.prompt("new name")
	if err != nil {
		return err
	}
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("record name must not be empty")
	}
	value, err := s.prompt("new value")
	if err != nil {
		return err
	}

	rec, found, err := s.app.Store.Update(ctx, record.ParseID(token), name, value)
	if err != nil {
		return err
	}
	if !found {
		fmt.Fprintf(s.out, "record not found: %s\n", token)
		return nil
	}
	fmt.Fprintf(s.out, "updated %s\n", renderRecord(rec))
	return nil
}

func (s *shell) deleteRecord(ctx context.Context) error {
	token, err := s.prompt("id")
	if err != nil {
		return err
	}

	rec, found, err := s.app.Store.Delete(ctx, record.ParseID(token))
	if err != nil {
		return err
	}
	if !found {
		fmt.Fprintf(s.out, "record not found: %s\n", token)
		return nil
	}
	fmt.Fprintf(s.out, "deleted %s\n", renderRecord(rec))
	return nil
}

func (s *shell) exportRecords(ctx context.Context) error {
	path, n, err := s.app.Export.ExportFile(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "exported %d record(s) to %s\n", n, path)
	return nil
}

func (s *shell) showStats(ctx context.Context) error {
	recs, err := s.app.Store.List(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, renderStats(query.Summarize(recs)))
	return nil
}
