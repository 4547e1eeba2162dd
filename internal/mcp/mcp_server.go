// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/tracelens/tracelens/internal/contract"
)

// NewMCPServer initializes and configures the TraceLens MCP server without
// starting it. This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, store contract.SnapshotStore) *server.MCPServer {
	s := server.NewMCPServer(
		"TraceLens Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		store:   store,
	}

	// --- 1. Tool: build_flame_graph ---
	s.AddTool(mcp.NewTool("build_flame_graph",
		mcp.WithDescription("Build a hierarchical flame graph from a JSON trace file of call records."),
		mcp.WithString("trace_path", mcp.Description("Path to the JSON trace file."), mcp.Required()),
	), h.handleBuildFlameGraph)

	// --- 2. Tool: compare_snapshots ---
	s.AddTool(mcp.NewTool("compare_snapshots",
		mcp.WithDescription("Compare two performance snapshots and return ranked per-method deltas."),
		mcp.WithString("baseline", mcp.Description("Baseline snapshot file path, or stored snapshot name when 'stored' is true."), mcp.Required()),
		mcp.WithString("current", mcp.Description("Current snapshot file path, or stored snapshot name when 'stored' is true."), mcp.Required()),
		mcp.WithNumber("threshold", mcp.Description("Significance threshold as a percentage. Defaults to 5.")),
		mcp.WithBoolean("stored", mcp.Description("Resolve snapshot names against the snapshot store instead of the filesystem.")),
	), h.handleCompareSnapshots)

	// --- 3. Tool: locate_method ---
	s.AddTool(mcp.NewTool("locate_method",
		mcp.WithDescription("Locate the source file and line of a traced class method within a workspace."),
		mcp.WithString("class", mcp.Description("Class (type) name to locate."), mcp.Required()),
		mcp.WithString("method", mcp.Description("Method name to locate within the class.")),
		mcp.WithString("workspace", mcp.Description("Workspace root to scan (defaults to the configured workspace).")),
	), h.handleLocateMethod)

	return s
}

// StartMCPServer starts the TraceLens MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, store contract.SnapshotStore) error {
	s := NewMCPServer(baseCfg, store)
	return server.ServeStdio(s)
}
