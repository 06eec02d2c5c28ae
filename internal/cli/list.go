package cli

import (
	"github.com/spf13/cobra"
)

// NewListCommand creates the list command.
func NewListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all records",
		Long: `List every record in store order.

Example:
  recbook list
  recbook list --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, cmd)
		},
	}
}

func runList(opts *RootOptions, cmd *cobra.Command) error {
	app, err := newApp(opts)
	if err != nil {
		return err
	}
	defer app.Close()

	recs, err := app.Store.List(cmd.Context())
	if err != nil {
		return storeError(err)
	}

	return formatter(cmd, opts).Successf(recs, "%s", renderRecords(recs))
}
