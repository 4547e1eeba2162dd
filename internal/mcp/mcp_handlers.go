package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/tracelens/tracelens/core"
	"github.com/tracelens/tracelens/internal/contract"
	"github.com/tracelens/tracelens/internal/tracein"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	store   contract.SnapshotStore
}

func (h *toolHandler) handleBuildFlameGraph(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tracePath := request.GetString("trace_path", "")
	if tracePath == "" {
		return mcp.NewToolResultError("trace_path is required"), nil
	}

	records, err := tracein.ReadCallRecordsFile(tracePath)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("cannot read trace: %v", err)), nil
	}
	graph, err := core.BuildFlameGraph(records)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("flame graph build failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(graph, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleCompareSnapshots(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	baselineArg := request.GetString("baseline", "")
	currentArg := request.GetString("current", "")
	if baselineArg == "" || currentArg == "" {
		return mcp.NewToolResultError("baseline and current are required"), nil
	}
	if t := request.GetFloat("threshold", 0); t > 0 {
		cfg.Threshold = t
	}
	cfg.Stored = request.GetBool("stored", cfg.Stored)

	baseline, err := core.ResolveSnapshot(cfg, h.store, baselineArg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("cannot load baseline: %v", err)), nil
	}
	current, err := core.ResolveSnapshot(cfg, h.store, currentArg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("cannot load current: %v", err)), nil
	}

	results := core.CompareSnapshots(baseline, current, cfg.Threshold)
	jsonData, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleLocateMethod(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	className := request.GetString("class", "")
	if className == "" {
		return mcp.NewToolResultError("class is required"), nil
	}
	methodName := request.GetString("method", "")
	if w := request.GetString("workspace", ""); w != "" {
		cfg.WorkspacePath = w
	}

	location, err := core.LocateSource(cfg, className, methodName)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("locate failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(location, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
