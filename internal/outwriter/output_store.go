package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/tracelens/tracelens/internal/contract"
	"github.com/tracelens/tracelens/schema"
)

// WriteSnapshotListResults outputs stored snapshot metadata, dispatching based
// on the output format configured.
func WriteSnapshotListResults(w io.Writer, infos []schema.SnapshotInfo, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeJSON(w, infos)
	case schema.CSVOut:
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		if err := csvWriter.Write([]string{"name", "created_at", "method_count", "size_bytes"}); err != nil {
			return err
		}
		for _, info := range infos {
			row := []string{
				info.Name,
				info.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
				strconv.Itoa(info.MethodCount),
				strconv.FormatInt(info.SizeBytes, 10),
			}
			if err := csvWriter.Write(row); err != nil {
				return err
			}
		}
		return nil
	default:
		table := tablewriter.NewWriter(w)
		defer func() { _ = table.Close() }()
		table.Header([]string{"Name", "Created", "Methods", "Size"})
		var data [][]string
		for _, info := range infos {
			data = append(data, []string{
				info.Name,
				info.CreatedAt.Format("2006-01-02 15:04:05"),
				strconv.Itoa(info.MethodCount),
				fmt.Sprintf("%d B", info.SizeBytes),
			})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, "%d stored snapshots\n", len(infos))
		return err
	}
}

// WriteStoreStatusResults outputs snapshot store status.
func WriteStoreStatusResults(w io.Writer, status schema.StoreStatus, cfg *contract.Config) error {
	if cfg.Output == schema.JSONOut {
		return writeJSON(w, status)
	}
	if _, err := fmt.Fprintf(w, "Backend: %s\n", status.Backend); err != nil {
		return err
	}
	if status.Location != "" {
		if _, err := fmt.Fprintf(w, "Location: %s\n", status.Location); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Snapshots: %d (%d B compressed)\n", status.SnapshotCount, status.TotalBytes)
	return err
}
