package core

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tracelens/tracelens/internal/contract"
	"github.com/tracelens/tracelens/internal/snapstore"
	"github.com/tracelens/tracelens/schema"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func outputConfig(t *testing.T, mode schema.OutputMode) (*contract.Config, string) {
	t.Helper()
	outPath := filepath.Join(t.TempDir(), "out")
	cfg := &contract.Config{
		Output:     mode,
		OutputFile: outPath,
		Precision:  1,
		Width:      120,
		Threshold:  contract.DefaultThreshold,
	}
	return cfg, outPath
}

func TestExecuteFlameGraph_JSONOutput(t *testing.T) {
	tracePath := writeTempFile(t, "trace.json", `[
		{"callId": "c1", "className": "A", "methodName": "Root", "duration": 100},
		{"callId": "c2", "parentCallId": "c1", "className": "B", "methodName": "Child", "duration": 60}
	]`)
	cfg, outPath := outputConfig(t, schema.JSONOut)

	require.NoError(t, ExecuteFlameGraph(cfg, tracePath))

	raw, err := os.ReadFile(outPath)
	require.NoError(t, err)
	var graph schema.FlameGraph
	require.NoError(t, json.Unmarshal(raw, &graph))
	require.Len(t, graph.Nodes, 1)
	assert.Equal(t, 100.0, graph.TotalDuration)
	assert.Equal(t, 40.0, graph.Nodes[0].SelfValue)
}

func TestExecuteFlameGraph_MissingFile(t *testing.T) {
	cfg, _ := outputConfig(t, schema.JSONOut)

	err := ExecuteFlameGraph(cfg, filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}

func TestExecuteFlameGraph_CyclicTrace(t *testing.T) {
	tracePath := writeTempFile(t, "trace.json", `[
		{"callId": "c1", "parentCallId": "c2", "className": "A", "methodName": "Loop", "duration": 1},
		{"callId": "c2", "parentCallId": "c1", "className": "B", "methodName": "Loop", "duration": 1}
	]`)
	cfg, outPath := outputConfig(t, schema.JSONOut)

	err := ExecuteFlameGraph(cfg, tracePath)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCyclicTrace)
	_, statErr := os.Stat(outPath)
	assert.True(t, os.IsNotExist(statErr), "no output file on failure")
}

func TestExecuteCompare_Files(t *testing.T) {
	baselinePath := writeTempFile(t, "baseline.json", `{"A.Run": {"averageDuration": 100}}`)
	currentPath := writeTempFile(t, "current.json", `{"A.Run": {"averageDuration": 120}}`)
	cfg, outPath := outputConfig(t, schema.JSONOut)

	require.NoError(t, ExecuteCompare(cfg, nil, baselinePath, currentPath))

	raw, err := os.ReadFile(outPath)
	require.NoError(t, err)
	var results []schema.ComparisonResult
	require.NoError(t, json.Unmarshal(raw, &results))
	require.Len(t, results, 1)
	assert.Equal(t, schema.RegressedDiff, results[0].DiffType)
}

func TestExecuteCompare_StoredSnapshots(t *testing.T) {
	store := &snapstore.MockSnapshotStore{}
	store.On("Load", "base").Return(schema.Snapshot{"A.Run": {AverageDuration: 100}}, nil)
	store.On("Load", "head").Return(schema.Snapshot{"A.Run": {AverageDuration: 90}}, nil)

	cfg, outPath := outputConfig(t, schema.JSONOut)
	cfg.Stored = true

	require.NoError(t, ExecuteCompare(cfg, store, "base", "head"))

	raw, err := os.ReadFile(outPath)
	require.NoError(t, err)
	var results []schema.ComparisonResult
	require.NoError(t, json.Unmarshal(raw, &results))
	require.Len(t, results, 1)
	assert.Equal(t, schema.ImprovedDiff, results[0].DiffType)
	store.AssertExpectations(t)
}

func TestExecuteCompare_StoredWithoutStore(t *testing.T) {
	cfg, _ := outputConfig(t, schema.JSONOut)
	cfg.Stored = true

	err := ExecuteCompare(cfg, nil, "base", "head")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "snapshot store is not configured")
}

func TestExecuteSnapshotSave(t *testing.T) {
	snapPath := writeTempFile(t, "snap.json", `{"A.Run": {"averageDuration": 5}}`)
	store := &snapstore.MockSnapshotStore{}
	store.On("Save", "rel", schema.Snapshot{"A.Run": {AverageDuration: 5}}).Return(nil)
	cfg, _ := outputConfig(t, schema.TextOut)

	require.NoError(t, ExecuteSnapshotSave(cfg, store, "rel", snapPath))
	store.AssertExpectations(t)
}

func TestExecuteSnapshotSave_BadFile(t *testing.T) {
	store := &snapstore.MockSnapshotStore{}
	cfg, _ := outputConfig(t, schema.TextOut)

	err := ExecuteSnapshotSave(cfg, store, "rel", filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	store.AssertNotCalled(t, "Save")
}

func TestExecuteSnapshotExport(t *testing.T) {
	store := &snapstore.MockSnapshotStore{}
	store.On("Load", "rel").Return(schema.Snapshot{"A.Run": {AverageDuration: 5}}, nil)
	cfg, outPath := outputConfig(t, schema.JSONOut)

	require.NoError(t, ExecuteSnapshotExport(cfg, store, "rel"))

	raw, err := os.ReadFile(outPath)
	require.NoError(t, err)
	var snapshot schema.Snapshot
	require.NoError(t, json.Unmarshal(raw, &snapshot))
	assert.Equal(t, 5.0, snapshot["A.Run"].AverageDuration)
	store.AssertExpectations(t)
}

func TestLocateSource_ClassAndMethod(t *testing.T) {
	workspace := t.TempDir()
	src := `package services

type OrderService struct{}

func (s *OrderService) Process() {}
`
	require.NoError(t, os.WriteFile(filepath.Join(workspace, "order.go"), []byte(src), 0o644))
	cfg := &contract.Config{WorkspacePath: workspace}

	location, err := LocateSource(cfg, "OrderService", "Process")

	require.NoError(t, err)
	assert.True(t, location.Found)
	assert.Equal(t, filepath.Join(workspace, "order.go"), location.FilePath)
	assert.Equal(t, uint(5), location.Line)
}

func TestLocateSource_ClassOnly(t *testing.T) {
	workspace := t.TempDir()
	src := "package services\n\ntype OrderService struct{}\n"
	require.NoError(t, os.WriteFile(filepath.Join(workspace, "order.go"), []byte(src), 0o644))
	cfg := &contract.Config{WorkspacePath: workspace}

	location, err := LocateSource(cfg, "OrderService", "")

	require.NoError(t, err)
	assert.True(t, location.Found)
	assert.Zero(t, location.Line)
}

func TestLocateSource_NotFound(t *testing.T) {
	cfg := &contract.Config{WorkspacePath: t.TempDir()}

	location, err := LocateSource(cfg, "Ghost", "")

	require.NoError(t, err)
	assert.False(t, location.Found)
	assert.Empty(t, location.FilePath)
}
