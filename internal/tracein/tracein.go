// Package tracein decodes and validates instrumentation payloads.
package tracein

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/tracelens/tracelens/schema"
)

// DecodeCallRecords reads a JSON array of call records and validates each one.
// Any malformed record fails the whole decode; no partial results are
// returned.
func DecodeCallRecords(r io.Reader) ([]schema.CallRecord, error) {
	var records []schema.CallRecord
	dec := json.NewDecoder(r)
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("cannot parse call records: %w", err)
	}
	for i, rec := range records {
		if err := validateCallRecord(rec); err != nil {
			return nil, fmt.Errorf("call record %d: %w", i, err)
		}
	}
	return records, nil
}

// DecodeSnapshot reads a JSON object mapping method keys to aggregated stats.
func DecodeSnapshot(r io.Reader) (schema.Snapshot, error) {
	var snapshot schema.Snapshot
	dec := json.NewDecoder(r)
	if err := dec.Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("cannot parse snapshot: %w", err)
	}
	for key, stats := range snapshot {
		if key == "" {
			return nil, fmt.Errorf("snapshot contains an empty method key")
		}
		if !isFinite(stats.AverageDuration) {
			return nil, fmt.Errorf("method %q: averageDuration is not a finite number", key)
		}
		for i, exec := range stats.Executions {
			if !isFinite(exec) {
				return nil, fmt.Errorf("method %q: execution %d is not a finite number", key, i)
			}
		}
	}
	return snapshot, nil
}

// ReadCallRecordsFile decodes call records from a file on disk.
func ReadCallRecordsFile(path string) ([]schema.CallRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open trace file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return DecodeCallRecords(f)
}

// ReadSnapshotFile decodes a snapshot from a file on disk.
func ReadSnapshotFile(path string) (schema.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open snapshot file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return DecodeSnapshot(f)
}

func validateCallRecord(rec schema.CallRecord) error {
	if rec.CallID == "" {
		return fmt.Errorf("missing callId")
	}
	if rec.ClassName == "" {
		return fmt.Errorf("missing className")
	}
	if rec.MethodName == "" {
		return fmt.Errorf("missing methodName")
	}
	if !isFinite(rec.Duration) || rec.Duration < 0 {
		return fmt.Errorf("duration must be a finite number >= 0, got %v", rec.Duration)
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
