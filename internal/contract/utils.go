package contract

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/tracelens/tracelens/schema"
)

// Color variables for console output.
var (
	RegressedColor = color.New(color.FgRed, color.Bold) // regressions are the headline signal
	ImprovedColor  = color.New(color.FgGreen)
	NewColor       = color.New(color.FgCyan)
	RemovedColor   = color.New(color.FgYellow)
)

// GetPlainDiffLabel returns the plain text label for a diff type. This is the
// core logic used for CSV, JSON, and table printing.
func GetPlainDiffLabel(diff schema.DiffType) string {
	return string(diff)
}

// GetColorDiffLabel returns a colored text label for console output (table).
func GetColorDiffLabel(diff schema.DiffType) string {
	text := GetPlainDiffLabel(diff)
	switch diff {
	case schema.RegressedDiff:
		return RegressedColor.Sprint(text)
	case schema.ImprovedDiff:
		return ImprovedColor.Sprint(text)
	case schema.NewDiff:
		return NewColor.Sprint(text)
	case schema.RemovedDiff:
		return RemovedColor.Sprint(text)
	default: // unchanged
		return text
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// TruncateName shortens a method or file name to fit a table column,
// keeping the rightmost (most specific) part.
func TruncateName(name string, maxWidth int) string {
	runes := []rune(name)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return name
}

// GetStoreDBFilePath returns the path to the SQLite DB file for snapshot storage.
func GetStoreDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".tracelens_snapshots.db"
	}
	return filepath.Join(homeDir, ".tracelens_snapshots.db")
}
