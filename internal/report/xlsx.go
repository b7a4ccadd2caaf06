package report

import (
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/logsheet/logsheet/internal/domain"
)

// Sheet names, in the workbook's fixed order.
const (
	SheetSummary = "Status Summary"
	SheetRaw     = "Raw Data"
	SheetPivot   = "Pivot Table"
	SheetErrors  = "Error Summary"
)

// ExportError reports a workbook that could not be assembled or serialized.
type ExportError struct {
	Err error
}

func (e *ExportError) Error() string {
	return "export failed: " + e.Err.Error()
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// Sheets lists the sheet names a report will produce, honoring the optional
// pivot and error sections.
func Sheets(rep *domain.Report) []string {
	names := []string{SheetSummary, SheetRaw}
	if rep.Pivot != nil {
		names = append(names, SheetPivot)
	}
	if rep.Errors != nil {
		names = append(names, SheetErrors)
	}
	return names
}

// WriteWorkbook serializes the report as a multi-sheet XLSX workbook.
// Failures surface as *ExportError.
func WriteWorkbook(w io.Writer, rep *domain.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return &ExportError{Err: err}
	}
	if err := writeSummarySheet(f, rep.Breakdown); err != nil {
		return &ExportError{Err: err}
	}
	if err := writeRawSheet(f, rep.Table); err != nil {
		return &ExportError{Err: err}
	}
	if rep.Pivot != nil {
		if err := writePivotSheet(f, rep.Pivot); err != nil {
			return &ExportError{Err: err}
		}
	}
	if rep.Errors != nil {
		if err := writeRollupSheet(f, rep.Errors); err != nil {
			return &ExportError{Err: err}
		}
	}

	if err := f.Write(w); err != nil {
		return &ExportError{Err: err}
	}
	return nil
}

func writeSummarySheet(f *excelize.File, b *domain.StatusBreakdown) error {
	header := []interface{}{
		"Status Code",
		"Request Count",
		"Avg Response Time (sec)",
		"Max Response Time (sec)",
		"Min Response Time (sec)",
	}
	rows := make([][]interface{}, 0, len(b.Groups))
	for _, g := range b.Groups {
		rows = append(rows, []interface{}{
			statusCell(g.Status),
			g.Count,
			numCell(g.AvgTime),
			numCell(g.MaxTime),
			numCell(g.MinTime),
		})
	}
	return writeSheet(f, SheetSummary, header, rows)
}

func writeRawSheet(f *excelize.File, t *domain.Table) error {
	if _, err := f.NewSheet(SheetRaw); err != nil {
		return err
	}

	header := make([]interface{}, 0, len(t.Schema)+1)
	for _, name := range t.Schema {
		header = append(header, name)
	}
	if t.HasDatetime() {
		header = append(header, "datetime")
	}

	rows := make([][]interface{}, 0, t.Len())
	for r := 0; r < t.Len(); r++ {
		row := make([]interface{}, 0, len(header))
		for _, name := range t.Schema {
			if nums, ok := t.Numeric(name); ok {
				row = append(row, numCell(nums[r]))
				continue
			}
			row = append(row, t.Strings[name][r])
		}
		if t.HasDatetime() {
			if ts := t.Times[r]; ts.Valid {
				row = append(row, ts.Value)
			} else {
				row = append(row, nil)
			}
		}
		rows = append(rows, row)
	}
	return writeSheet(f, SheetRaw, header, rows)
}

func writePivotSheet(f *excelize.File, p *domain.Pivot) error {
	if _, err := f.NewSheet(SheetPivot); err != nil {
		return err
	}

	header := make([]interface{}, 0, len(p.Columns)+1)
	header = append(header, domain.FieldURIStem)
	for _, col := range p.Columns {
		header = append(header, col.Name())
	}

	rows := make([][]interface{}, 0, len(p.Rows))
	for _, row := range p.Rows {
		cells := make([]interface{}, 0, len(header))
		cells = append(cells, row.Endpoint)
		for i, v := range row.Cells {
			if p.Columns[i].Agg == domain.PivotCount {
				cells = append(cells, int(v))
				continue
			}
			cells = append(cells, v)
		}
		rows = append(rows, cells)
	}
	return writeSheet(f, SheetPivot, header, rows)
}

func writeRollupSheet(f *excelize.File, r *domain.ErrorRollup) error {
	if _, err := f.NewSheet(SheetErrors); err != nil {
		return err
	}

	header := []interface{}{
		"Endpoint",
		"Error Count",
		"Avg Response Time (sec)",
		"Max Response Time (sec)",
	}
	rows := make([][]interface{}, 0, len(r.Rows))
	for _, row := range r.Rows {
		rows = append(rows, []interface{}{
			row.Endpoint,
			row.Count,
			numCell(row.AvgTime),
			numCell(row.MaxTime),
		})
	}
	return writeSheet(f, SheetErrors, header, rows)
}

func writeSheet(f *excelize.File, sheet string, header []interface{}, rows [][]interface{}) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := row
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

// statusCell renders a status code as a number, or "NA" for the null group.
func statusCell(v domain.Float64) interface{} {
	if !v.Valid {
		return "NA"
	}
	return v.Value
}

// numCell renders a nullable number; null cells stay blank.
func numCell(v domain.Float64) interface{} {
	if !v.Valid {
		return nil
	}
	return v.Value
}
