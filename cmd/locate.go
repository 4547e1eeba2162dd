package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tracelens/tracelens/core"
	"github.com/tracelens/tracelens/internal/contract"
)

// locateCmd resolves a traced class method to a source location.
var locateCmd = &cobra.Command{
	Use:   "locate <class>",
	Short: "Find the source file and line for a traced class method.",
	Long: `Scan the workspace for the file declaring a class and, when --method is
given, the line where that method is declared.

Directories commonly holding generated or third-party code (node_modules,
vendor, dist, build and the like) are skipped.

Examples:
  # Find the file declaring OrderService
  tracelens locate OrderService

  # Find the exact line of OrderService.Process
  tracelens locate OrderService --method Process --workspace ./services`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		methodName := viper.GetString("method")
		if err := core.ExecuteLocate(cfg, args[0], methodName); err != nil {
			contract.LogFatal("Cannot locate source", err)
		}
	},
}
