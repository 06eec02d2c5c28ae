package cli

import (
	"github.com/spf13/cobra"

	"github.com/recbook/recbook/internal/query"
)

// NewSearchCommand creates the search command.
func NewSearchCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "search <substring>",
		Short: "Search records by name",
		Long: `Search for records whose name contains the given substring.

Matching is case-insensitive.

Example:
  recbook search token`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(opts, cmd, args[0])
		},
	}
}

func runSearch(opts *RootOptions, cmd *cobra.Command, substr string) error {
	app, err := newApp(opts)
	if err != nil {
		return err
	}
	defer app.Close()

	recs, err := app.Store.List(cmd.Context())
	if err != nil {
		return storeError(err)
	}

	matches := query.SearchByName(recs, substr)
	return formatter(cmd, opts).Successf(matches, "%s", renderRecords(matches))
}
