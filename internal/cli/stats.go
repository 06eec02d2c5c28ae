package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/recbook/recbook/internal/query"
)

// NewStatsCommand creates the stats command.
func NewStatsCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarize the record set",
		Long: `Print summary statistics for the record set: totals, id range,
creation time range and the longest name.

Example:
  recbook stats`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(opts, cmd)
		},
	}
}

func runStats(opts *RootOptions, cmd *cobra.Command) error {
	app, err := newApp(opts)
	if err != nil {
		return err
	}
	defer app.Close()

	recs, err := app.Store.List(cmd.Context())
	if err != nil {
		return storeError(err)
	}

	stats := query.Summarize(recs)
	return formatter(cmd, opts).Successf(stats, "%s", renderStats(stats))
}

// renderStats renders summary statistics for text output.
func renderStats(s query.Stats) string {
	if s.Total == 0 {
		return "no records"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "records:  %d (%d updated)\n", s.Total, s.Updated)
	fmt.Fprintf(&b, "ids:      %d - %d\n", s.LowestUserID, s.HighestUserID)
	fmt.Fprintf(&b, "created:  %s - %s\n",
		s.EarliestCreated.UTC().Format(time.RFC3339),
		s.LatestCreated.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "longest name: %s", s.LongestName)
	return b.String()
}
