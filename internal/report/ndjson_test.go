package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/logsheet/logsheet/internal/domain"
)

func TestNDJSONWriter_Diagnostic(t *testing.T) {
	var buf bytes.Buffer
	w := NewNDJSONWriter(&buf)

	require.NoError(t, w.WriteDiagnostic(domain.Diagnostic{
		Code:    domain.DiagMalformedLine,
		Message: "skipping malformed line: expected 5 fields, got 4",
		Line:    3,
		Snippet: "2024-01-01 00:00:02 /b 500",
	}))

	line := buf.String()
	assert.Equal(t, "diagnostic", gjson.Get(line, "type").String())
	assert.Equal(t, int64(SchemaVersion), gjson.Get(line, "schemaVersion").Int())
	assert.Equal(t, "malformed_line", gjson.Get(line, "code").String())
	assert.Equal(t, int64(3), gjson.Get(line, "line").Int())
	assert.True(t, gjson.Get(line, "snippet").Exists())
}

func TestNDJSONWriter_Result(t *testing.T) {
	var buf bytes.Buffer
	w := NewNDJSONWriter(&buf)

	require.NoError(t, w.WriteResult(ResultOutput{
		File:         "access.log",
		Rows:         100,
		SkippedLines: 2,
		Output:       "access.xlsx",
		Sheets:       []string{SheetSummary, SheetRaw},
		Clean:        false,
	}))

	line := buf.String()
	assert.Equal(t, "result", gjson.Get(line, "type").String())
	assert.Equal(t, int64(100), gjson.Get(line, "rows").Int())
	assert.Equal(t, int64(2), gjson.Get(line, "skipped_lines").Int())
	assert.Equal(t, "access.xlsx", gjson.Get(line, "output").String())
	assert.False(t, gjson.Get(line, "clean").Bool())
	assert.Len(t, gjson.Get(line, "sheets").Array(), 2)
}

func TestNDJSONWriter_Breakdown(t *testing.T) {
	var buf bytes.Buffer
	w := NewNDJSONWriter(&buf)

	b := &domain.StatusBreakdown{Groups: []domain.StatusGroup{
		{Status: domain.Num(200), Count: 2, AvgTime: domain.Num(0.2), MaxTime: domain.Num(0.3), MinTime: domain.Num(0.1)},
		{Status: domain.Float64{}, Count: 1},
	}}
	require.NoError(t, w.WriteBreakdown("access.log", b))

	line := buf.String()
	assert.Equal(t, "status_summary", gjson.Get(line, "type").String())
	assert.Equal(t, "200", gjson.Get(line, "groups.0.status").String())
	assert.Equal(t, int64(2), gjson.Get(line, "groups.0.count").Int())
	assert.Equal(t, 0.2, gjson.Get(line, "groups.0.avg_time_sec").Float())

	// the null group serializes explicit nulls, never zeros
	assert.Equal(t, "NA", gjson.Get(line, "groups.1.status").String())
	assert.Equal(t, gjson.Null, gjson.Get(line, "groups.1.avg_time_sec").Type)
}

func TestNDJSONWriter_Pivot(t *testing.T) {
	var buf bytes.Buffer
	w := NewNDJSONWriter(&buf)

	p := &domain.Pivot{
		Columns: []domain.PivotColumn{
			{Agg: domain.PivotCount, Status: 200},
			{Agg: domain.PivotAvg, Status: 200},
		},
		Rows: []domain.PivotRow{{Endpoint: "/a", Cells: []float64{2, 0.2}}},
	}
	require.NoError(t, w.WritePivot("access.log", p))

	line := buf.String()
	assert.Equal(t, "pivot", gjson.Get(line, "type").String())
	assert.Equal(t, "count_Status_200", gjson.Get(line, "columns.0").String())
	assert.Equal(t, "/a", gjson.Get(line, "rows.0.endpoint").String())
	assert.Equal(t, 0.2, gjson.Get(line, "rows.0.cells.1").Float())
}

func TestNDJSONWriter_URIsNotEscaped(t *testing.T) {
	var buf bytes.Buffer
	w := NewNDJSONWriter(&buf)

	r := &domain.ErrorRollup{Rows: []domain.RollupRow{
		{Endpoint: "/search?q=<x>&p=1", Count: 1, AvgTime: domain.Num(1), MaxTime: domain.Num(1)},
	}}
	require.NoError(t, w.WriteRollup("access.log", r))

	line := buf.String()
	assert.Contains(t, line, "/search?q=<x>&p=1")
	assert.NotContains(t, line, `\u003c`)
}

func TestNDJSONWriter_OneObjectPerLine(t *testing.T) {
	var buf bytes.Buffer
	w := NewNDJSONWriter(&buf)

	require.NoError(t, w.WriteError("FORMAT_ERROR", "invalid log format or no data found"))
	require.NoError(t, w.WriteProgress("access.log", 50, 100))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		assert.True(t, gjson.Valid(line))
	}
	assert.Equal(t, "error", gjson.Get(lines[0], "type").String())
	assert.Equal(t, "progress", gjson.Get(lines[1], "type").String())
	assert.Equal(t, int64(50), gjson.Get(lines[1], "line").Int())
}
