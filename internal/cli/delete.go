package cli

import (
	"github.com/spf13/cobra"

	"github.com/recbook/recbook/internal/record"
)

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a record",
		Long: `Delete the record matching the given id.

Deletion is permanent; the removed state survives only in backups. The
freed public id is never reused. A token that matches nothing reports
"not found" - it is not an error.

Example:
  recbook delete 3`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(opts, cmd, args[0])
		},
	}
}

func runDelete(opts *RootOptions, cmd *cobra.Command, token string) error {
	app, err := newApp(opts)
	if err != nil {
		return err
	}
	defer app.Close()

	rec, found, err := app.Store.Delete(cmd.Context(), record.ParseID(token))
	if err != nil {
		return storeError(err)
	}
	if !found {
		return notFound(cmd, opts, token)
	}

	return formatter(cmd, opts).Successf(rec, "deleted %s", renderRecord(rec))
}
