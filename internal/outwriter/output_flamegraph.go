package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/tracelens/tracelens/internal/contract"
	"github.com/tracelens/tracelens/schema"
)

// WriteFlameGraphResults outputs a flame graph, dispatching based on the
// output format configured. JSON output is the wire shape consumed by
// visualization hosts; text output is an indented call tree.
func WriteFlameGraphResults(w io.Writer, graph *schema.FlameGraph, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeJSON(w, graph); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		if err := writeCSVResultsForFlameGraph(csvWriter, graph, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is not supported for flame graphs: use json or csv")
	default:
		return writeFlameGraphTable(w, graph, cfg, fmtFloat, duration)
	}
	return nil
}

// writeFlameGraphTable renders the call tree with depth-based indentation.
func writeFlameGraphTable(w io.Writer, graph *schema.FlameGraph, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	defer func() { _ = table.Close() }()

	table.Header([]string{
		"Call",
		"Value",
		"Self",
		"Pct",
	})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	maxWidth := getMaxTableNameWidth(cfg)
	var data [][]string
	for i := range graph.Nodes {
		appendFlameRows(&data, &graph.Nodes[i], maxWidth, fmtFloat)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "Total duration: %s across %d root calls\n", fmtFloat(graph.TotalDuration), len(graph.Nodes)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Flame graph built in %v\n", duration); err != nil {
		return err
	}
	return nil
}

// appendFlameRows flattens a subtree into table rows, children after their
// parent in first-seen order.
func appendFlameRows(data *[][]string, node *schema.FlameNode, maxWidth int, fmtFloat func(float64) string) {
	indent := strings.Repeat("  ", int(node.Depth))
	*data = append(*data, []string{
		indent + contract.TruncateName(node.Name, maxWidth),
		fmtFloat(node.Value),
		fmtFloat(node.SelfValue),
		fmtFloat(node.Percentage) + "%",
	})
	for i := range node.Children {
		appendFlameRows(data, &node.Children[i], maxWidth, fmtFloat)
	}
}

// writeCSVResultsForFlameGraph writes the flattened flame graph to a CSV writer.
func writeCSVResultsForFlameGraph(w *csv.Writer, graph *schema.FlameGraph, fmtFloat func(float64) string) error {
	header := []string{
		"id",
		"name",
		"depth",
		"value",
		"self_value",
		"percentage",
		"file_path",
		"line",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	var writeNode func(node *schema.FlameNode) error
	writeNode = func(node *schema.FlameNode) error {
		line := ""
		if node.Line > 0 {
			line = strconv.FormatUint(uint64(node.Line), 10)
		}
		row := []string{
			node.ID,
			node.Name,
			strconv.FormatUint(uint64(node.Depth), 10),
			fmtFloat(node.Value),
			fmtFloat(node.SelfValue),
			fmtFloat(node.Percentage),
			node.FilePath,
			line,
		}
		if err := w.Write(row); err != nil {
			return err
		}
		for i := range node.Children {
			if err := writeNode(&node.Children[i]); err != nil {
				return err
			}
		}
		return nil
	}
	for i := range graph.Nodes {
		if err := writeNode(&graph.Nodes[i]); err != nil {
			return err
		}
	}
	return nil
}
