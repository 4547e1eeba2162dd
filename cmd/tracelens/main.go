// main is the entry point for the tracelens CLI.
package main

import (
	"github.com/tracelens/tracelens/cmd"
	"github.com/tracelens/tracelens/internal/contract"
)

func main() {
	defer cmd.CloseStore()

	if err := cmd.Execute(); err != nil {
		contract.LogFatal("Cannot run command", err)
	}

	if err := cmd.StopProfiling(); err != nil {
		contract.LogWarn("Cannot stop profiling", err)
	}
}
