package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/tracelens/tracelens/internal/contract"
	"github.com/tracelens/tracelens/internal/parquet"
	"github.com/tracelens/tracelens/schema"
)

// WriteComparisonResults outputs snapshot comparison results, dispatching
// based on the output format configured.
func WriteComparisonResults(w io.Writer, results []schema.ComparisonResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeJSON(w, results); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		if err := writeCSVResultsForComparison(csvWriter, results, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		rows := parquet.ConvertComparisonResults(results)
		if err := parquet.WriteComparisonParquet(w, rows); err != nil {
			return fmt.Errorf("error writing parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeComparisonTable(w, results, cfg, fmtFloat, duration)
	}
	return nil
}

// writeComparisonTable writes the comparison in a ranked table format.
func writeComparisonTable(w io.Writer, results []schema.ComparisonResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	defer func() { _ = table.Close() }()

	table.Header([]string{
		"Rank",
		"Method",
		"Baseline",
		"Current",
		"Change",
		"Diff",
	})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var red, green, yellow func(...any) string
	if cfg.UseColors {
		red = color.New(color.FgRed).SprintFunc()
		green = color.New(color.FgGreen).SprintFunc()
		yellow = color.New(color.FgYellow).SprintFunc()
	} else {
		red = fmt.Sprint
		green = fmt.Sprint
		yellow = fmt.Sprint
	}

	var data [][]string
	for i, r := range results {
		var changeStr string
		switch {
		case r.AbsoluteChange == nil:
			changeStr = yellow("-")
		case *r.AbsoluteChange > 0:
			// Explicitly add + sign
			changeStr = red(fmt.Sprintf("+%s ▲", fmtFloat(*r.AbsoluteChange)))
		case *r.AbsoluteChange < 0:
			// Keeps the - sign from the float
			changeStr = green(fmt.Sprintf("%s ▼", fmtFloat(*r.AbsoluteChange)))
		default:
			changeStr = yellow(fmtFloat(0.0))
		}

		diffLabel := contract.GetPlainDiffLabel(r.DiffType)
		if cfg.UseColors {
			diffLabel = contract.GetColorDiffLabel(r.DiffType)
		}

		data = append(data, []string{
			strconv.Itoa(i + 1),
			contract.TruncateName(r.MethodKey, getMaxTableNameWidth(cfg)),
			schema.FormatOptionalAvg(r.BaselineAvg, cfg.Precision),
			schema.FormatOptionalAvg(r.CurrentAvg, cfg.Precision),
			changeStr,
			diffLabel,
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	counts := schema.CountByDiffType(results)
	if _, err := fmt.Fprintf(w, "Showing %d method deltas\n", len(results)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Regressed: %d, Improved: %d, Unchanged: %d, New: %d, Removed: %d\n",
		counts[schema.RegressedDiff], counts[schema.ImprovedDiff], counts[schema.UnchangedDiff],
		counts[schema.NewDiff], counts[schema.RemovedDiff]); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Comparison completed in %v with threshold %.1f%%\n", duration, cfg.Threshold); err != nil {
		return err
	}
	return nil
}

// writeCSVResultsForComparison writes the comparison data to a CSV writer.
func writeCSVResultsForComparison(w *csv.Writer, results []schema.ComparisonResult, fmtFloat func(float64) string) error {
	header := []string{
		"rank",
		"method_key",
		"baseline_avg",
		"current_avg",
		"percentage_change",
		"absolute_change",
		"diff_type",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	optional := func(v *float64) string {
		if v == nil {
			return ""
		}
		return fmtFloat(*v)
	}
	for i, r := range results {
		row := []string{
			strconv.Itoa(i + 1),
			r.MethodKey,
			optional(r.BaselineAvg),
			optional(r.CurrentAvg),
			optional(r.PercentageChange),
			optional(r.AbsoluteChange),
			string(r.DiffType),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
