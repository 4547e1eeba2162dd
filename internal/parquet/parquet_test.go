package parquet

import (
	"bytes"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tracelens/tracelens/schema"
)

func TestComparisonRowStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	rowSchema := parquet.SchemaOf(new(ComparisonRow))
	require.NotNil(t, rowSchema)

	expectedColumns := []string{
		"method_key",
		"baseline_avg",
		"current_avg",
		"percentage_change",
		"absolute_change",
		"diff_type",
	}

	for _, colName := range expectedColumns {
		col, ok := rowSchema.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestConvertComparisonResults(t *testing.T) {
	results := []schema.ComparisonResult{
		{
			MethodKey:        "OrderService.Process",
			BaselineAvg:      schema.Float64Ptr(100),
			CurrentAvg:       schema.Float64Ptr(110),
			PercentageChange: schema.Float64Ptr(10),
			AbsoluteChange:   schema.Float64Ptr(10),
			DiffType:         schema.RegressedDiff,
		},
		{
			MethodKey:  "New.Born",
			CurrentAvg: schema.Float64Ptr(20),
			DiffType:   schema.NewDiff,
		},
	}

	rows := ConvertComparisonResults(results)

	require.Len(t, rows, 2)
	assert.Equal(t, "OrderService.Process", rows[0].MethodKey)
	assert.Equal(t, "regressed", rows[0].DiffType)
	assert.Nil(t, rows[1].BaselineAvg)
	assert.Nil(t, rows[1].PercentageChange)
	require.NotNil(t, rows[1].CurrentAvg)
	assert.Equal(t, 20.0, *rows[1].CurrentAvg)
}

func TestWriteComparisonParquet_RoundTrip(t *testing.T) {
	rows := []ComparisonRow{
		{MethodKey: "A.Run", BaselineAvg: schema.Float64Ptr(1), CurrentAvg: schema.Float64Ptr(2), AbsoluteChange: schema.Float64Ptr(1), DiffType: "regressed"},
		{MethodKey: "B.Gone", BaselineAvg: schema.Float64Ptr(5), DiffType: "removed"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteComparisonParquet(&buf, rows))

	readBack, err := parquet.Read[ComparisonRow](bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	require.Len(t, readBack, 2)
	assert.Equal(t, "A.Run", readBack[0].MethodKey)
	assert.Nil(t, readBack[1].CurrentAvg, "optional columns survive as nulls")
}

func TestWriteComparisonParquet_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteComparisonParquet(&buf, nil))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("PAR1")))
}
