// Package core has core logic for flame graph assembly and snapshot comparison.
package core

import (
	"errors"
	"fmt"

	"github.com/tracelens/tracelens/schema"
)

// ErrCyclicTrace indicates that the parent references of a trace form a cycle.
// The trace is malformed and no partial flame graph is returned.
var ErrCyclicTrace = errors.New("malformed trace: cyclic parent reference")

// BuildFlameGraph converts a flat collection of call records into a forest of
// hierarchical flame nodes with self-time and percentage annotations.
//
// Policy decisions, matching the instrumentation contract:
//   - Duplicate call IDs: the later record replaces the earlier one.
//   - Dangling parent references: the orphaned subtree is dropped from the
//     output and contributes nothing to the total duration.
//   - Total duration is the sum of root durations only; roots are assumed
//     non-overlapping in wall-clock time and no overlap validation is done.
func BuildFlameGraph(records []schema.CallRecord) (*schema.FlameGraph, error) {
	if len(records) == 0 {
		return &schema.FlameGraph{Nodes: []schema.FlameNode{}, TotalDuration: 0}, nil
	}

	// Index records by call ID, remembering first-seen order of unique IDs so
	// that sibling and root ordering stays deterministic.
	calls := make(map[string]schema.CallRecord, len(records))
	order := make([]string, 0, len(records))
	for _, rec := range records {
		if _, seen := calls[rec.CallID]; !seen {
			order = append(order, rec.CallID)
		}
		calls[rec.CallID] = rec
	}

	// Partition into roots and a parent-to-children index in a single pass.
	children := make(map[string][]string, len(calls))
	var roots []string
	var totalDuration float64
	for _, id := range order {
		rec := calls[id]
		if rec.ParentCallID == "" {
			roots = append(roots, id)
			totalDuration += rec.Duration
			continue
		}
		if _, ok := calls[rec.ParentCallID]; ok {
			children[rec.ParentCallID] = append(children[rec.ParentCallID], id)
		}
	}

	visited := make(map[string]bool, len(calls))
	nodes := make([]schema.FlameNode, 0, len(roots))
	for _, id := range roots {
		node, err := buildNode(id, calls, children, visited, 0, totalDuration)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}

	// Anything not reached from a root is either an orphan subtree (dangling
	// parent, dropped by policy) or part of a parent cycle (hard error).
	for _, id := range order {
		if visited[id] {
			continue
		}
		if err := checkUnreached(id, calls, visited); err != nil {
			return nil, err
		}
	}

	return &schema.FlameGraph{Nodes: nodes, TotalDuration: totalDuration}, nil
}

// buildNode recursively assembles the subtree rooted at id. The visited set
// guards the recursion so a malformed trace fails instead of recursing
// unboundedly.
func buildNode(
	id string,
	calls map[string]schema.CallRecord,
	children map[string][]string,
	visited map[string]bool,
	depth uint,
	totalDuration float64,
) (schema.FlameNode, error) {
	if visited[id] {
		return schema.FlameNode{}, fmt.Errorf("%w: call %q revisited", ErrCyclicTrace, id)
	}
	visited[id] = true

	rec := calls[id]
	var childNodes []schema.FlameNode
	var childTime float64
	for _, childID := range children[id] {
		child, err := buildNode(childID, calls, children, visited, depth+1, totalDuration)
		if err != nil {
			return schema.FlameNode{}, err
		}
		childTime += child.Value
		childNodes = append(childNodes, child)
	}

	selfTime := rec.Duration - childTime
	if selfTime < 0 {
		selfTime = 0
	}
	var percentage float64
	if totalDuration > 0 {
		percentage = rec.Duration / totalDuration * 100
	}

	return schema.FlameNode{
		ID:         id,
		Name:       schema.MethodKey(rec.ClassName, rec.MethodName),
		Value:      rec.Duration,
		SelfValue:  selfTime,
		Children:   childNodes,
		Depth:      depth,
		FilePath:   rec.FilePath,
		Line:       rec.Line,
		Percentage: percentage,
	}, nil
}

// checkUnreached walks the parent chain of a record that no root subtree
// reached. A chain that ends at a missing parent is an orphan and stays
// dropped; a chain that revisits itself is a cycle and fails the build.
func checkUnreached(id string, calls map[string]schema.CallRecord, visited map[string]bool) error {
	walked := make(map[string]bool)
	for cur := id; ; {
		if walked[cur] {
			return fmt.Errorf("%w: call %q is part of a parent cycle", ErrCyclicTrace, cur)
		}
		walked[cur] = true

		parent := calls[cur].ParentCallID
		if parent == "" || visited[parent] {
			return nil
		}
		if _, ok := calls[parent]; !ok {
			return nil // dangling parent: orphan subtree
		}
		cur = parent
	}
}
