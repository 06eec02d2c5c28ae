package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/recbook/recbook/internal/query"
	"github.com/recbook/recbook/internal/record"
)

// SortOptions holds flags for the sort command.
type SortOptions struct {
	*RootOptions
	Desc bool
}

// NewSortCommand creates the sort command.
func NewSortCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SortOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "sort <name|created>",
		Short: "List records in sorted order",
		Long: `List all records sorted by name or by creation time.

Sorting is a view: the underlying store order is never changed.

Example:
  recbook sort name
  recbook sort created --desc`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSort(opts, cmd, args[0])
		},
	}

	cmd.Flags().BoolVar(&opts.Desc, "desc", false, "sort in descending order")

	return cmd
}

func runSort(opts *SortOptions, cmd *cobra.Command, field string) error {
	app, err := newApp(opts.RootOptions)
	if err != nil {
		return err
	}
	defer app.Close()

	recs, err := app.Store.List(cmd.Context())
	if err != nil {
		return storeError(err)
	}

	var sorted []record.Public
	switch field {
	case "name":
		sorted = query.SortByName(recs, opts.Desc)
	case "created":
		sorted = query.SortByCreated(recs, opts.Desc)
	default:
		return NewExitError(ExitCommandError, fmt.Sprintf("unknown sort field %q: must be name or created", field))
	}

	return formatter(cmd, opts.RootOptions).Successf(sorted, "%s", renderRecords(sorted))
}
