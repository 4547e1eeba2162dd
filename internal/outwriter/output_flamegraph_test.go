package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tracelens/tracelens/internal/contract"
	"github.com/tracelens/tracelens/schema"
)

func flameGraphFixture() *schema.FlameGraph {
	return &schema.FlameGraph{
		TotalDuration: 100,
		Nodes: []schema.FlameNode{
			{
				ID:         "c1",
				Name:       "OrderService.Process",
				Value:      100,
				SelfValue:  40,
				Depth:      0,
				Percentage: 100,
				FilePath:   "services/order.go",
				Line:       42,
				Children: []schema.FlameNode{
					{
						ID:         "c2",
						Name:       "PaymentService.Charge",
						Value:      60,
						SelfValue:  60,
						Depth:      1,
						Percentage: 60,
					},
				},
			},
		},
	}
}

func flameConfig(output schema.OutputMode) *contract.Config {
	return &contract.Config{
		Output:    output,
		Precision: 1,
		Width:     120,
	}
}

func TestWriteFlameGraphResults_JSON(t *testing.T) {
	var buf bytes.Buffer

	err := WriteFlameGraphResults(&buf, flameGraphFixture(), flameConfig(schema.JSONOut), time.Millisecond)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 100.0, decoded["totalDuration"])
	nodes := decoded["nodes"].([]any)
	require.Len(t, nodes, 1)
	root := nodes[0].(map[string]any)
	assert.Equal(t, "OrderService.Process", root["name"])
	assert.Equal(t, 40.0, root["selfValue"])
	children := root["children"].([]any)
	require.Len(t, children, 1)
}

func TestWriteFlameGraphResults_JSONEmptyGraph(t *testing.T) {
	var buf bytes.Buffer
	graph := &schema.FlameGraph{Nodes: []schema.FlameNode{}, TotalDuration: 0}

	err := WriteFlameGraphResults(&buf, graph, flameConfig(schema.JSONOut), time.Millisecond)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"nodes": []`, "empty graph serializes as an array, not null")
}

func TestWriteFlameGraphResults_CSV(t *testing.T) {
	var buf bytes.Buffer

	err := WriteFlameGraphResults(&buf, flameGraphFixture(), flameConfig(schema.CSVOut), time.Millisecond)
	require.NoError(t, err)

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"id", "name", "depth", "value", "self_value", "percentage", "file_path", "line"}, rows[0])
	assert.Equal(t, []string{"c1", "OrderService.Process", "0", "100.0", "40.0", "100.0", "services/order.go", "42"}, rows[1])
	assert.Equal(t, "c2", rows[2][0], "children flatten after their parent")
	assert.Equal(t, "1", rows[2][2])
	assert.Equal(t, "", rows[2][7], "unknown line stays empty")
}

func TestWriteFlameGraphResults_Table(t *testing.T) {
	var buf bytes.Buffer

	err := WriteFlameGraphResults(&buf, flameGraphFixture(), flameConfig(schema.TextOut), time.Millisecond)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "OrderService.Process")
	assert.Contains(t, out, "PaymentService.Charge")
	assert.Contains(t, out, "Total duration: 100.0 across 1 root calls")
}

func TestWriteFlameGraphResults_ParquetUnsupported(t *testing.T) {
	var buf bytes.Buffer

	err := WriteFlameGraphResults(&buf, flameGraphFixture(), flameConfig(schema.ParquetOut), time.Millisecond)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "use json or csv")
}
