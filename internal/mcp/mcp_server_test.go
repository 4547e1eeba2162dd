package mcp_test

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tracelens/tracelens/internal/contract"
	mcp_internal "github.com/tracelens/tracelens/internal/mcp"
)

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	baseCfg := &contract.Config{
		Threshold:     contract.DefaultThreshold,
		WorkspacePath: ".",
	}

	// A nil store is fine here because these cases fail before storage access
	var store contract.SnapshotStore
	s := mcp_internal.NewMCPServer(baseCfg, store)

	ctx := context.Background()

	t.Run("build_flame_graph missing trace_path", func(t *testing.T) {
		tool := s.GetTool("build_flame_graph")
		require.NotNil(t, tool, "Tool build_flame_graph should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name:      "build_flame_graph",
				Arguments: map[string]any{},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "trace_path is required")
	})

	t.Run("build_flame_graph unreadable trace", func(t *testing.T) {
		tool := s.GetTool("build_flame_graph")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "build_flame_graph",
				Arguments: map[string]any{
					"trace_path": "/does/not/exist.json",
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "cannot read trace")
	})

	t.Run("compare_snapshots missing arguments", func(t *testing.T) {
		tool := s.GetTool("compare_snapshots")
		require.NotNil(t, tool, "Tool compare_snapshots should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "compare_snapshots",
				Arguments: map[string]any{
					"baseline": "base.json", // current missing
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "baseline and current are required")
	})

	t.Run("compare_snapshots stored without store", func(t *testing.T) {
		tool := s.GetTool("compare_snapshots")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "compare_snapshots",
				Arguments: map[string]any{
					"baseline": "base",
					"current":  "head",
					"stored":   true,
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "snapshot store is not configured")
	})

	t.Run("locate_method missing class", func(t *testing.T) {
		tool := s.GetTool("locate_method")
		require.NotNil(t, tool, "Tool locate_method should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "locate_method",
				Arguments: map[string]any{
					"method": "Process",
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "class is required")
	})
}
