package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/logsheet/logsheet/internal/analyzer"
	"github.com/logsheet/logsheet/internal/domain"
	"github.com/logsheet/logsheet/internal/iislog"
)

func buildReport(t *testing.T, input string) *domain.Report {
	t.Helper()
	res, err := iislog.Parse([]byte(input), iislog.Options{})
	require.NoError(t, err)
	table, _ := iislog.Coerce(res.Schema, res.Records, iislog.Options{})
	breakdown, err := analyzer.StatusBreakdown(table)
	require.NoError(t, err)
	return &domain.Report{
		Breakdown: breakdown,
		Table:     table,
		Pivot:     analyzer.EndpointPivot(table),
		Errors:    analyzer.ErrorRollup(table),
	}
}

const exportLog = "#Fields: date time cs-uri-stem sc-status time-taken\n" +
	"2024-01-01 00:00:01 /a 200 150\n" +
	"2024-01-01 00:00:02 /b 500 2000\n"

func TestWriteWorkbook_AllSheets(t *testing.T) {
	rep := buildReport(t, exportLog)

	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, rep))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetSummary, SheetRaw, SheetPivot, SheetErrors}, f.GetSheetList())

	// summary sheet: header then one row per status
	v, err := f.GetCellValue(SheetSummary, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Status Code", v)

	v, _ = f.GetCellValue(SheetSummary, "A2")
	assert.Equal(t, "200", v)
	v, _ = f.GetCellValue(SheetSummary, "B2")
	assert.Equal(t, "1", v)
	v, _ = f.GetCellValue(SheetSummary, "C2")
	assert.Equal(t, "0.15", v)

	v, _ = f.GetCellValue(SheetSummary, "A3")
	assert.Equal(t, "500", v)

	// raw data keeps every original column plus datetime
	v, _ = f.GetCellValue(SheetRaw, "A1")
	assert.Equal(t, "date", v)
	v, _ = f.GetCellValue(SheetRaw, "F1")
	assert.Equal(t, "datetime", v)
	v, _ = f.GetCellValue(SheetRaw, "C2")
	assert.Equal(t, "/a", v)
	v, _ = f.GetCellValue(SheetRaw, "D2")
	assert.Equal(t, "200", v)

	// pivot header encodes aggregation and status
	v, _ = f.GetCellValue(SheetPivot, "A1")
	assert.Equal(t, "cs-uri-stem", v)
	v, _ = f.GetCellValue(SheetPivot, "B1")
	assert.Equal(t, "count_Status_200", v)

	// error summary
	v, _ = f.GetCellValue(SheetErrors, "A1")
	assert.Equal(t, "Endpoint", v)
	v, _ = f.GetCellValue(SheetErrors, "A2")
	assert.Equal(t, "/b", v)
	v, _ = f.GetCellValue(SheetErrors, "B2")
	assert.Equal(t, "1", v)
	v, _ = f.GetCellValue(SheetErrors, "C2")
	assert.Equal(t, "2", v)
}

func TestWriteWorkbook_OptionalSheetsOmitted(t *testing.T) {
	// no endpoint column: pivot and error rollup are absent
	rep := buildReport(t, "#Fields: date time sc-status time-taken\n"+
		"2024-01-01 00:00:01 200 150\n")
	require.Nil(t, rep.Pivot)
	require.Nil(t, rep.Errors)

	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, rep))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetSummary, SheetRaw}, f.GetSheetList())
}

func TestWriteWorkbook_NullCellsBlank(t *testing.T) {
	rep := buildReport(t, "#Fields: date time cs-uri-stem sc-status time-taken\n"+
		"2024-01-01 00:00:01 /a 200 abc\n")

	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, rep))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	// unparsable time-taken exports as an empty cell, not zero
	v, err := f.GetCellValue(SheetRaw, "E2")
	require.NoError(t, err)
	assert.Equal(t, "", v)
}

func TestSheets(t *testing.T) {
	full := buildReport(t, exportLog)
	assert.Equal(t, []string{SheetSummary, SheetRaw, SheetPivot, SheetErrors}, Sheets(full))

	partial := buildReport(t, "#Fields: date time sc-status time-taken\n"+
		"2024-01-01 00:00:01 200 150\n")
	assert.Equal(t, []string{SheetSummary, SheetRaw}, Sheets(partial))
}
