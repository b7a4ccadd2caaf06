package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logsheet/logsheet/internal/domain"
)

func TestRenderBreakdown(t *testing.T) {
	b := &domain.StatusBreakdown{Groups: []domain.StatusGroup{
		{Status: domain.Num(200), Count: 3, AvgTime: domain.Num(0.2), MaxTime: domain.Num(0.3), MinTime: domain.Num(0.1)},
		{Status: domain.Float64{}, Count: 1},
	}}

	var buf bytes.Buffer
	require.NoError(t, RenderBreakdown(&buf, b))

	out := buf.String()
	assert.Contains(t, out, "200")
	assert.Contains(t, out, "3")
	assert.Contains(t, out, "0.200")
	// null aggregates and the null-status group render as NA
	assert.Contains(t, out, "NA")
}

func TestRenderPivot(t *testing.T) {
	p := &domain.Pivot{
		Columns: []domain.PivotColumn{
			{Agg: domain.PivotCount, Status: 200},
			{Agg: domain.PivotMax, Status: 200},
		},
		Rows: []domain.PivotRow{{Endpoint: "/a", Cells: []float64{2, 0.35}}},
	}

	var buf bytes.Buffer
	require.NoError(t, RenderPivot(&buf, p))

	out := buf.String()
	assert.Contains(t, out, "count_Status_200")
	assert.Contains(t, out, "max_Status_200")
	assert.Contains(t, out, "/a")
	assert.Contains(t, out, "0.350")
}

func TestRenderRollup(t *testing.T) {
	r := &domain.ErrorRollup{Rows: []domain.RollupRow{
		{Endpoint: "/api/checkout", Count: 4, AvgTime: domain.Num(1.25), MaxTime: domain.Num(3)},
	}}

	var buf bytes.Buffer
	require.NoError(t, RenderRollup(&buf, r))

	out := buf.String()
	assert.Contains(t, out, "/api/checkout")
	assert.Contains(t, out, "4")
	assert.Contains(t, out, "1.250")
}

func TestRenderPreview(t *testing.T) {
	schema := domain.FieldSchema{"date", "time", "cs-uri-stem"}
	records := []domain.Record{{"2024-01-01", "00:00:01", "/a"}}

	var buf bytes.Buffer
	require.NoError(t, RenderPreview(&buf, schema, records))

	out := buf.String()
	assert.Contains(t, out, "cs-uri-stem")
	assert.Contains(t, out, "/a")
}
