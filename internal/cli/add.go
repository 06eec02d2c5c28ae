package cli

import (
	"github.com/spf13/cobra"
)

// NewAddCommand creates the add command.
func NewAddCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> <value>",
		Short: "Add a new record",
		Long: `Add a new record with the given name and value.

The record receives the next sequential id and a creation timestamp,
and a backup of the full record set is written.

Example:
  recbook add "api-token" "abc123"`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(opts, cmd, args[0], args[1])
		},
	}
}

func runAdd(opts *RootOptions, cmd *cobra.Command, name, value string) error {
	if err := validateFields(name); err != nil {
		return err
	}

	app, err := newApp(opts)
	if err != nil {
		return err
	}
	defer app.Close()

	rec, err := app.Store.Add(cmd.Context(), name, value)
	if err != nil {
		return storeError(err)
	}

	return formatter(cmd, opts).Successf(rec, "added %s", renderRecord(rec))
}
