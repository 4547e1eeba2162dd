package cmd

import (
	"github.com/spf13/cobra"
	"github.com/tracelens/tracelens/core"
	"github.com/tracelens/tracelens/internal/contract"
)

// flamegraphCmd builds a flame graph from a trace file.
var flamegraphCmd = &cobra.Command{
	Use:   "flamegraph <trace-file>",
	Short: "Build a flame graph from a JSON trace of call records.",
	Long: `Reshape a flat JSON array of call records into a hierarchical flame graph.

Each record names a call, its parent, and its duration. The output tree
carries per-node total time, self time (total minus children), depth, and
percentage of the overall trace duration.

Records whose parent is missing from the trace are dropped. Traces with
cyclic parent references are rejected.

Examples:
  # Render the flame graph as an indented tree
  tracelens flamegraph trace.json

  # Emit the full tree as JSON for a UI
  tracelens flamegraph trace.json --output json

  # Flatten the tree to CSV for spreadsheets
  tracelens flamegraph trace.json --output csv --output-file flame.csv`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteFlameGraph(cfg, args[0]); err != nil {
			contract.LogFatal("Cannot build flame graph", err)
		}
	},
}
