// Package parquet provides data structures and functions for exporting
// comparison results to Parquet using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"

	"github.com/parquet-go/parquet-go"
	"github.com/tracelens/tracelens/schema"
)

// ComparisonRow represents one method delta in a snapshot comparison.
// Optional columns are nil for the side a new/removed method is absent from.
type ComparisonRow struct {
	// MethodKey is the canonical "ClassName.methodName" identifier
	MethodKey string `parquet:"method_key,snappy"`

	// BaselineAvg is the average duration in the baseline snapshot (nullable)
	BaselineAvg *float64 `parquet:"baseline_avg,optional,snappy"`

	// CurrentAvg is the average duration in the current snapshot (nullable)
	CurrentAvg *float64 `parquet:"current_avg,optional,snappy"`

	// PercentageChange is the relative change in percent (nullable)
	PercentageChange *float64 `parquet:"percentage_change,optional,snappy"`

	// AbsoluteChange is current minus baseline average (nullable)
	AbsoluteChange *float64 `parquet:"absolute_change,optional,snappy"`

	// DiffType classifies the change (improved, regressed, new, removed, unchanged)
	DiffType string `parquet:"diff_type,snappy"`
}

// WriteComparisonParquet writes comparison rows to a Parquet stream.
func WriteComparisonParquet(w io.Writer, rows []ComparisonRow) error {
	// The schema is automatically derived from the ComparisonRow struct tags
	writer := parquet.NewGenericWriter[ComparisonRow](w)

	if _, err := writer.Write(rows); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet stream: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet stream: %w", err)
	}
	return nil
}

// ConvertComparisonResults converts schema.ComparisonResult values to
// ComparisonRow for Parquet export.
func ConvertComparisonResults(results []schema.ComparisonResult) []ComparisonRow {
	rows := make([]ComparisonRow, len(results))
	for i, r := range results {
		rows[i] = ComparisonRow{
			MethodKey:        r.MethodKey,
			BaselineAvg:      r.BaselineAvg,
			CurrentAvg:       r.CurrentAvg,
			PercentageChange: r.PercentageChange,
			AbsoluteChange:   r.AbsoluteChange,
			DiffType:         string(r.DiffType),
		}
	}
	return rows
}
