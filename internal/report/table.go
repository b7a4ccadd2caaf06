package report

import (
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/logsheet/logsheet/internal/domain"
)

// nullCell is how missing values render in terminal tables.
const nullCell = "NA"

// newTable builds a terminal table that keeps header text verbatim. Pivot
// column names and IIS field names are case-significant.
func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithHeaderAutoFormat(tw.Off))
}

// RenderBreakdown writes the status breakdown as a terminal table.
func RenderBreakdown(w io.Writer, b *domain.StatusBreakdown) error {
	table := newTable(w)
	table.Header([]string{"Status Code", "Request Count", "Avg (sec)", "Max (sec)", "Min (sec)"})
	for _, g := range b.Groups {
		if err := table.Append([]string{
			g.Status.FormatStatus(),
			strconv.Itoa(g.Count),
			formatSeconds(g.AvgTime),
			formatSeconds(g.MaxTime),
			formatSeconds(g.MinTime),
		}); err != nil {
			return err
		}
	}
	return table.Render()
}

// RenderPivot writes the endpoint×status pivot as a terminal table.
func RenderPivot(w io.Writer, p *domain.Pivot) error {
	header := make([]string, 0, len(p.Columns)+1)
	header = append(header, domain.FieldURIStem)
	for _, col := range p.Columns {
		header = append(header, col.Name())
	}

	table := newTable(w)
	table.Header(header)
	for _, row := range p.Rows {
		cells := make([]string, 0, len(header))
		cells = append(cells, row.Endpoint)
		for i, v := range row.Cells {
			if p.Columns[i].Agg == domain.PivotCount {
				cells = append(cells, strconv.Itoa(int(v)))
				continue
			}
			cells = append(cells, formatSeconds(domain.Num(v)))
		}
		if err := table.Append(cells); err != nil {
			return err
		}
	}
	return table.Render()
}

// RenderRollup writes the error rollup as a terminal table.
func RenderRollup(w io.Writer, r *domain.ErrorRollup) error {
	table := newTable(w)
	table.Header([]string{"Endpoint", "Error Count", "Avg (sec)", "Max (sec)"})
	for _, row := range r.Rows {
		if err := table.Append([]string{
			row.Endpoint,
			strconv.Itoa(row.Count),
			formatSeconds(row.AvgTime),
			formatSeconds(row.MaxTime),
		}); err != nil {
			return err
		}
	}
	return table.Render()
}

// RenderDistribution writes the status distribution as a terminal table.
func RenderDistribution(w io.Writer, counts []domain.StatusCount) error {
	table := newTable(w)
	table.Header([]string{"Status", "Count"})
	for _, c := range counts {
		if err := table.Append([]string{c.Status, strconv.Itoa(c.Count)}); err != nil {
			return err
		}
	}
	return table.Render()
}

// RenderTimeline writes the hourly request timeline as a terminal table.
func RenderTimeline(w io.Writer, buckets []domain.TimeBucket) error {
	table := newTable(w)
	table.Header([]string{"Hour", "Requests"})
	for _, b := range buckets {
		if err := table.Append([]string{
			b.Hour.Format(time.RFC3339),
			strconv.Itoa(b.Count),
		}); err != nil {
			return err
		}
	}
	return table.Render()
}

// RenderPreview writes raw records under their schema as a terminal table.
func RenderPreview(w io.Writer, schema domain.FieldSchema, records []domain.Record) error {
	table := newTable(w)
	table.Header([]string(schema))
	for _, rec := range records {
		if err := table.Append([]string(rec)); err != nil {
			return err
		}
	}
	return table.Render()
}

// formatSeconds renders a nullable response time with millisecond precision.
func formatSeconds(v domain.Float64) string {
	if !v.Valid {
		return nullCell
	}
	return strconv.FormatFloat(v.Value, 'f', 3, 64)
}
