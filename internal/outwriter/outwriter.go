// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/tracelens/tracelens/internal/contract"
	"github.com/tracelens/tracelens/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the
// core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteFlameGraph prints a flame graph using the configured output format.
func (ow *OutWriter) WriteFlameGraph(w io.Writer, graph *schema.FlameGraph, cfg *contract.Config, duration time.Duration) error {
	return WriteFlameGraphResults(w, graph, cfg, duration)
}

// WriteComparison prints comparison results using the configured output format.
func (ow *OutWriter) WriteComparison(w io.Writer, results []schema.ComparisonResult, cfg *contract.Config, duration time.Duration) error {
	return WriteComparisonResults(w, results, cfg, duration)
}

// WriteSnapshotList prints stored snapshot metadata using the configured output format.
func (ow *OutWriter) WriteSnapshotList(w io.Writer, infos []schema.SnapshotInfo, cfg *contract.Config) error {
	return WriteSnapshotListResults(w, infos, cfg)
}

// WriteStoreStatus prints snapshot store status using the configured output format.
func (ow *OutWriter) WriteStoreStatus(w io.Writer, status schema.StoreStatus, cfg *contract.Config) error {
	return WriteStoreStatusResults(w, status, cfg)
}

// getMaxTableNameWidth calculates the maximum width for method names in table
// output based on terminal width and table configuration.
func getMaxTableNameWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default for narrow terminals and CI
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the fixed numeric columns with borders and padding
	baseWidth := 55

	available := termWidth - baseWidth
	if available < 15 {
		return 15
	}
	if available > 70 {
		return 70
	}
	return available
}

// createFormatters creates the common formatter closures used across multiple
// output types.
func createFormatters(precision int) (fmtFloat func(float64) string, intFmt string) {
	fmtFloat = func(v float64) string {
		return fmt.Sprintf("%.*f", precision, v)
	}
	return fmtFloat, "%d"
}
