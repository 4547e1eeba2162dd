package core

import (
	"fmt"
	"os"
	"time"

	"github.com/tracelens/tracelens/internal/contract"
	"github.com/tracelens/tracelens/internal/locator"
	"github.com/tracelens/tracelens/internal/outwriter"
	"github.com/tracelens/tracelens/internal/srcparse"
	"github.com/tracelens/tracelens/internal/tracein"
	"github.com/tracelens/tracelens/schema"
)

// ExecuteFlameGraph builds a flame graph from a trace file and prints it.
// It serves as the main entry point for the 'flamegraph' command.
func ExecuteFlameGraph(cfg *contract.Config, tracePath string) error {
	start := time.Now()
	records, err := tracein.ReadCallRecordsFile(tracePath)
	if err != nil {
		return err
	}
	graph, err := BuildFlameGraph(records)
	if err != nil {
		return err
	}
	duration := time.Since(start)

	out, err := contract.SelectOutputFile(cfg.OutputFile)
	if err != nil {
		return fmt.Errorf("cannot open output file: %w", err)
	}
	defer closeUnlessStdout(out)
	return outwriter.NewOutWriter().WriteFlameGraph(out, graph, cfg, duration)
}

// ExecuteCompare compares two snapshots and prints the ranked deltas.
// Arguments are snapshot file paths, or stored snapshot names when
// cfg.Stored is set.
func ExecuteCompare(cfg *contract.Config, store contract.SnapshotStore, baselineArg, currentArg string) error {
	start := time.Now()
	baseline, err := ResolveSnapshot(cfg, store, baselineArg)
	if err != nil {
		return fmt.Errorf("baseline: %w", err)
	}
	current, err := ResolveSnapshot(cfg, store, currentArg)
	if err != nil {
		return fmt.Errorf("current: %w", err)
	}

	results := CompareSnapshots(baseline, current, cfg.Threshold)
	duration := time.Since(start)

	out, err := contract.SelectOutputFile(cfg.OutputFile)
	if err != nil {
		return fmt.Errorf("cannot open output file: %w", err)
	}
	defer closeUnlessStdout(out)
	return outwriter.NewOutWriter().WriteComparison(out, results, cfg, duration)
}

// ExecuteSnapshotSave reads a snapshot file and persists it under a name.
func ExecuteSnapshotSave(cfg *contract.Config, store contract.SnapshotStore, name, path string) error {
	snapshot, err := tracein.ReadSnapshotFile(path)
	if err != nil {
		return err
	}
	if err := store.Save(name, snapshot); err != nil {
		return err
	}
	fmt.Printf("Saved snapshot %q with %d methods\n", name, len(snapshot))
	return nil
}

// ExecuteSnapshotList prints metadata for all stored snapshots.
func ExecuteSnapshotList(cfg *contract.Config, store contract.SnapshotStore) error {
	infos, err := store.List()
	if err != nil {
		return err
	}
	out, err := contract.SelectOutputFile(cfg.OutputFile)
	if err != nil {
		return fmt.Errorf("cannot open output file: %w", err)
	}
	defer closeUnlessStdout(out)
	return outwriter.NewOutWriter().WriteSnapshotList(out, infos, cfg)
}

// ExecuteSnapshotDelete removes a stored snapshot.
func ExecuteSnapshotDelete(cfg *contract.Config, store contract.SnapshotStore, name string) error {
	if err := store.Delete(name); err != nil {
		return err
	}
	fmt.Printf("Deleted snapshot %q\n", name)
	return nil
}

// ExecuteSnapshotStatus prints snapshot store status.
func ExecuteSnapshotStatus(cfg *contract.Config, store contract.SnapshotStore) error {
	status, err := store.GetStatus()
	if err != nil {
		return err
	}
	out, err := contract.SelectOutputFile(cfg.OutputFile)
	if err != nil {
		return fmt.Errorf("cannot open output file: %w", err)
	}
	defer closeUnlessStdout(out)
	return outwriter.NewOutWriter().WriteStoreStatus(out, status, cfg)
}

// ExecuteSnapshotExport loads a stored snapshot and writes it back out as
// plain JSON, undoing the storage compression.
func ExecuteSnapshotExport(cfg *contract.Config, store contract.SnapshotStore, name string) error {
	snapshot, err := store.Load(name)
	if err != nil {
		return err
	}
	out, err := contract.SelectOutputFile(cfg.OutputFile)
	if err != nil {
		return fmt.Errorf("cannot open output file: %w", err)
	}
	defer closeUnlessStdout(out)
	return outwriter.WriteSnapshotJSON(out, snapshot)
}

// ExecuteLocate resolves a class (and optionally a method) to a source
// location within the configured workspace.
func ExecuteLocate(cfg *contract.Config, className, methodName string) error {
	location, err := LocateSource(cfg, className, methodName)
	if err != nil {
		return err
	}

	out, err := contract.SelectOutputFile(cfg.OutputFile)
	if err != nil {
		return fmt.Errorf("cannot open output file: %w", err)
	}
	defer closeUnlessStdout(out)
	return outwriter.WriteSourceLocation(out, location, cfg)
}

// LocateSource performs the locator/parser composition without printing.
// Exposed separately so the MCP surface can reuse it.
func LocateSource(cfg *contract.Config, className, methodName string) (schema.SourceLocation, error) {
	location := schema.SourceLocation{ClassName: className, MethodName: methodName}

	var loc contract.SourceLocator = locator.New(cfg.WorkspacePath)
	path, found, err := loc.FindClass(className)
	if err != nil {
		return location, fmt.Errorf("cannot scan workspace: %w", err)
	}
	if !found {
		return location, nil
	}
	location.FilePath = path
	location.Found = true

	if methodName == "" {
		return location, nil
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return location, fmt.Errorf("cannot read %s: %w", path, err)
	}
	line, ok, err := srcparse.FindMethodLineForType(src, className, methodName)
	if err != nil {
		return location, err
	}
	if !ok {
		// A method declared outside the class file falls back to a plain
		// function match.
		line, ok, err = srcparse.FindMethodLine(src, methodName)
		if err != nil || !ok {
			location.Found = false
			return location, err
		}
	}
	location.Line = line
	return location, nil
}

// ResolveSnapshot reads a snapshot from the store or from a file on disk.
// Exposed for reuse by the MCP tool handlers.
func ResolveSnapshot(cfg *contract.Config, store contract.SnapshotStore, arg string) (schema.Snapshot, error) {
	if cfg.Stored {
		if store == nil {
			return nil, fmt.Errorf("snapshot store is not configured")
		}
		return store.Load(arg)
	}
	return tracein.ReadSnapshotFile(arg)
}

// closeUnlessStdout closes an output file opened by SelectOutputFile.
func closeUnlessStdout(f *os.File) {
	if f != os.Stdout {
		_ = f.Close()
	}
}
