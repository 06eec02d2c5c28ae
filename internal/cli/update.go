package cli

import (
	"github.com/spf13/cobra"

	"github.com/recbook/recbook/internal/record"
)

// NewUpdateCommand creates the update command.
func NewUpdateCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "update <id> <name> <value>",
		Short: "Update a record's name and value",
		Long: `Update the record matching the given id.

A numeric id matches the record's public id; anything else must be the
store-native internal id. A token that matches nothing reports
"not found" - it is not an error.

Example:
  recbook update 3 "api-token" "def456"`,
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(opts, cmd, args[0], args[1], args[2])
		},
	}
}

func runUpdate(opts *RootOptions, cmd *cobra.Command, token, name, value string) error {
	if err := validateFields(name); err != nil {
		return err
	}

	app, err := newApp(opts)
	if err != nil {
		return err
	}
	defer app.Close()

	rec, found, err := app.Store.Update(cmd.Context(), record.ParseID(token), name, value)
	if err != nil {
		return storeError(err)
	}
	if !found {
		return notFound(cmd, opts, token)
	}

	return formatter(cmd, opts).Successf(rec, "updated %s", renderRecord(rec))
}

// notFound reports a miss for a lookup token. Not-found is an outcome,
// not a failure: the command still exits zero.
func notFound(cmd *cobra.Command, opts *RootOptions, token string) error {
	return formatter(cmd, opts).Successf(
		map[string]any{"found": false, "id": token},
		"record not found: %s", token,
	)
}
