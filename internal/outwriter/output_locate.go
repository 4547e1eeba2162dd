package outwriter

import (
	"fmt"
	"io"

	"github.com/tracelens/tracelens/internal/contract"
	"github.com/tracelens/tracelens/schema"
)

// WriteSourceLocation outputs a resolved source location.
func WriteSourceLocation(w io.Writer, location schema.SourceLocation, cfg *contract.Config) error {
	if cfg.Output == schema.JSONOut {
		return writeJSON(w, location)
	}
	if !location.Found {
		_, err := fmt.Fprintf(w, "%s: not found\n", locationLabel(location))
		return err
	}
	if location.Line > 0 {
		_, err := fmt.Fprintf(w, "%s: %s:%d\n", locationLabel(location), location.FilePath, location.Line)
		return err
	}
	_, err := fmt.Fprintf(w, "%s: %s\n", locationLabel(location), location.FilePath)
	return err
}

// WriteSnapshotJSON writes a snapshot as indented JSON, matching the on-disk
// snapshot file format.
func WriteSnapshotJSON(w io.Writer, snapshot schema.Snapshot) error {
	return writeJSON(w, snapshot)
}

func locationLabel(location schema.SourceLocation) string {
	if location.MethodName != "" {
		return schema.MethodKey(location.ClassName, location.MethodName)
	}
	return location.ClassName
}
