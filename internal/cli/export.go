package cli

import (
	"github.com/spf13/cobra"
)

// NewExportCommand creates the export command.
func NewExportCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Export all records to the export file",
		Long: `Write all records to the configured export file.

The export file is overwritten on every run: a header with the export
timestamp and record count, then one line per record.

Example:
  recbook export`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(opts, cmd)
		},
	}
}

func runExport(opts *RootOptions, cmd *cobra.Command) error {
	app, err := newApp(opts)
	if err != nil {
		return err
	}
	defer app.Close()

	path, n, err := app.Export.ExportFile(cmd.Context())
	if err != nil {
		return storeError(err)
	}

	return formatter(cmd, opts).Successf(
		map[string]any{"path": path, "records": n},
		"exported %d record(s) to %s", n, path,
	)
}
