package cmd

import (
	"github.com/spf13/cobra"
	"github.com/tracelens/tracelens/core"
	"github.com/tracelens/tracelens/internal/contract"
)

// compareCmd compares two performance snapshots.
var compareCmd = &cobra.Command{
	Use:   "compare <baseline> <current>",
	Short: "Compare two performance snapshots and rank the deltas.",
	Long: `Compare per-method average durations between two snapshots.

Every method present in either snapshot gets a row: methods in both are
classified as regressed, improved, or unchanged against the threshold;
methods in only one side are marked new or removed. Rows are sorted by
the magnitude of the absolute change, largest first.

Arguments are snapshot file paths by default. With --stored they are
names of snapshots saved via 'tracelens snapshot save'.

Examples:
  # Compare two snapshot files with the default 5% threshold
  tracelens compare baseline.json current.json

  # Only flag changes above 10%
  tracelens compare baseline.json current.json --threshold 10

  # Compare stored snapshots by name
  tracelens compare release-1.4 release-1.5 --stored

  # Export the deltas for analytics
  tracelens compare baseline.json current.json --output parquet --output-file diff.parquet`,
	Args:    cobra.ExactArgs(2),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteCompare(cfg, snapshotStore, args[0], args[1]); err != nil {
			contract.LogFatal("Cannot compare snapshots", err)
		}
	},
}
