// Package schema has models, constants and helpers for all parts of tracelens.
package schema

// CallRecord represents a single captured method invocation with timing and
// optional parent linkage. Records arrive flat from the instrumentation layer;
// ParentCallID establishes the caller/callee edge.
type CallRecord struct {
	CallID       string  `json:"callId"`                 // Unique identity key for this invocation
	ClassName    string  `json:"className"`              // Declaring class or type name
	MethodName   string  `json:"methodName"`             // Invoked method name
	Duration     float64 `json:"duration"`               // Wall-clock duration in milliseconds
	StartTime    float64 `json:"startTime"`              // Capture start timestamp
	EndTime      float64 `json:"endTime"`                // Capture end timestamp
	ParentCallID string  `json:"parentCallId,omitempty"` // CallID of the caller; empty for roots
	FilePath     string  `json:"filePath,omitempty"`     // Resolved source file, when known
	Line         uint    `json:"line,omitempty"`         // 1-based declaration line, when known
}

// FlameNode is one node of the hierarchical flame graph built from call records.
// Value is the full duration of the call; SelfValue excludes direct children.
type FlameNode struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"` // "ClassName.methodName"
	Value      float64     `json:"value"`
	SelfValue  float64     `json:"selfValue"`
	Children   []FlameNode `json:"children,omitempty"`
	Depth      uint        `json:"depth"`
	FilePath   string      `json:"filePath,omitempty"`
	Line       uint        `json:"line,omitempty"`
	Percentage float64     `json:"percentage"`
}

// FlameGraph is the full result of building a flame graph from one trace.
// Nodes holds the root subtrees in first-seen input order.
type FlameGraph struct {
	Nodes         []FlameNode `json:"nodes"`
	TotalDuration float64     `json:"totalDuration"`
}

// MethodStats holds the aggregated timing statistics for one method inside a
// performance snapshot.
type MethodStats struct {
	AverageDuration float64   `json:"averageDuration"`
	Executions      []float64 `json:"executions"`
}

// Snapshot is a point-in-time aggregation of per-method statistics, keyed by
// the method identifier ("ClassName.methodName").
type Snapshot map[string]MethodStats

// ComparisonResult captures the delta for a single method key between two
// snapshots. Pointer fields are nil for the side the method is absent from.
type ComparisonResult struct {
	MethodKey        string   `json:"methodKey"`
	BaselineAvg      *float64 `json:"baselineAvg,omitempty"`
	CurrentAvg       *float64 `json:"currentAvg,omitempty"`
	PercentageChange *float64 `json:"percentageChange,omitempty"`
	AbsoluteChange   *float64 `json:"absoluteChange,omitempty"`
	DiffType         DiffType `json:"diffType"`
}
