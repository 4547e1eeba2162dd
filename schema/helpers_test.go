package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMethodKey(t *testing.T) {
	assert.Equal(t, "OrderService.Process", MethodKey("OrderService", "Process"))
}

func TestFormatOptionalAvg(t *testing.T) {
	assert.Equal(t, "-", FormatOptionalAvg(nil, 1))
	assert.Equal(t, "100.5", FormatOptionalAvg(Float64Ptr(100.5), 1))
	assert.Equal(t, "100.50", FormatOptionalAvg(Float64Ptr(100.5), 2))
}

func TestFormatOptionalPct(t *testing.T) {
	assert.Equal(t, "-", FormatOptionalPct(nil, 1))
	assert.Equal(t, "+10.0%", FormatOptionalPct(Float64Ptr(10), 1))
	assert.Equal(t, "-2.5%", FormatOptionalPct(Float64Ptr(-2.5), 1))
}

func TestCountByDiffType(t *testing.T) {
	results := []ComparisonResult{
		{DiffType: RegressedDiff},
		{DiffType: RegressedDiff},
		{DiffType: NewDiff},
	}

	counts := CountByDiffType(results)

	assert.Equal(t, 2, counts[RegressedDiff])
	assert.Equal(t, 1, counts[NewDiff])
	assert.Equal(t, 0, counts[ImprovedDiff])
}

func TestCallRecordJSONShape(t *testing.T) {
	payload := `{"callId":"c1","parentCallId":"c0","className":"A","methodName":"Run","duration":5,"filePath":"a.go","line":3}`

	var rec CallRecord
	require.NoError(t, json.Unmarshal([]byte(payload), &rec))
	assert.Equal(t, "c1", rec.CallID)
	assert.Equal(t, "c0", rec.ParentCallID)
	assert.Equal(t, uint(3), rec.Line)

	out, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"callId":"c1"`)
}

func TestFlameNodeJSON_OmitsEmptyChildren(t *testing.T) {
	node := FlameNode{ID: "c1", Name: "A.Run", Value: 5, SelfValue: 5}

	out, err := json.Marshal(node)
	require.NoError(t, err)
	assert.NotContains(t, string(out), `"children"`, "leaf nodes stay compact on the wire")
}

func TestComparisonResultJSON_OmitsNilSides(t *testing.T) {
	result := ComparisonResult{MethodKey: "New.Born", CurrentAvg: Float64Ptr(20), DiffType: NewDiff}

	out, err := json.Marshal(result)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "baselineAvg")
	assert.Contains(t, string(out), `"currentAvg":20`)
	assert.Contains(t, string(out), `"diffType":"new"`)
}
