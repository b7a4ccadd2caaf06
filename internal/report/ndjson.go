package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/logsheet/logsheet/internal/domain"
)

// SchemaVersion identifies the NDJSON output contract.
const SchemaVersion = 1

// NDJSONWriter writes pipeline output as NDJSON for machine consumers.
type NDJSONWriter struct {
	w       io.Writer
	encoder *json.Encoder
}

// NewNDJSONWriter creates a new NDJSON writer.
func NewNDJSONWriter(w io.Writer) *NDJSONWriter {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false) // keep URI stems unescaped
	return &NDJSONWriter{
		w:       w,
		encoder: enc,
	}
}

// DiagnosticOutput is one non-fatal pipeline condition.
type DiagnosticOutput struct {
	Type          string `json:"type"` // Always "diagnostic"
	SchemaVersion int    `json:"schemaVersion"`
	Code          string `json:"code"`
	Message       string `json:"message"`
	Line          int    `json:"line,omitempty"`
	Snippet       string `json:"snippet,omitempty"`
}

// ErrorOutput is a fatal failure.
type ErrorOutput struct {
	Type          string `json:"type"` // Always "error"
	SchemaVersion int    `json:"schemaVersion"`
	Code          string `json:"code"`
	Message       string `json:"message"`
}

// ProgressOutput reports incremental parse progress for one file.
type ProgressOutput struct {
	Type          string `json:"type"` // Always "progress"
	SchemaVersion int    `json:"schemaVersion"`
	File          string `json:"file"`
	Line          int    `json:"line"`
	Total         int    `json:"total"`
}

// ResultOutput is the final per-file outcome of an analyze run.
type ResultOutput struct {
	Type          string   `json:"type"` // Always "result"
	SchemaVersion int      `json:"schemaVersion"`
	File          string   `json:"file"`
	Rows          int      `json:"rows"`
	SkippedLines  int      `json:"skipped_lines"`
	Output        string   `json:"output"`
	Sheets        []string `json:"sheets"`
	Clean         bool     `json:"clean"` // no lines skipped, no warnings
}

// StatusGroupOutput is one row of the status breakdown.
type StatusGroupOutput struct {
	Status string   `json:"status"`
	Count  int      `json:"count"`
	Avg    *float64 `json:"avg_time_sec"`
	Max    *float64 `json:"max_time_sec"`
	Min    *float64 `json:"min_time_sec"`
}

// BreakdownOutput is the status breakdown view.
type BreakdownOutput struct {
	Type          string              `json:"type"` // Always "status_summary"
	SchemaVersion int                 `json:"schemaVersion"`
	File          string              `json:"file"`
	Groups        []StatusGroupOutput `json:"groups"`
}

// PivotOutput is the endpoint×status view.
type PivotOutput struct {
	Type          string           `json:"type"` // Always "pivot"
	SchemaVersion int              `json:"schemaVersion"`
	File          string           `json:"file"`
	Columns       []string         `json:"columns"`
	Rows          []PivotRowOutput `json:"rows"`
}

// PivotRowOutput is one endpoint's pivot cells.
type PivotRowOutput struct {
	Endpoint string    `json:"endpoint"`
	Cells    []float64 `json:"cells"`
}

// RollupRowOutput is one endpoint's error summary.
type RollupRowOutput struct {
	Endpoint string   `json:"endpoint"`
	Count    int      `json:"error_count"`
	Avg      *float64 `json:"avg_time_sec"`
	Max      *float64 `json:"max_time_sec"`
}

// RollupOutput is the error rollup view.
type RollupOutput struct {
	Type          string            `json:"type"` // Always "error_rollup"
	SchemaVersion int               `json:"schemaVersion"`
	File          string            `json:"file"`
	Rows          []RollupRowOutput `json:"rows"`
}

// FieldsOutput describes a file's declared schema.
type FieldsOutput struct {
	Type          string   `json:"type"` // Always "fields"
	SchemaVersion int      `json:"schemaVersion"`
	File          string   `json:"file"`
	Fields        []string `json:"fields"`
	Missing       []string `json:"missing_baseline,omitempty"`
}

// ErrorPointOutput is one point of the error response-time scatter.
type ErrorPointOutput struct {
	At       string  `json:"at"`
	Seconds  float64 `json:"seconds"`
	Endpoint string  `json:"endpoint,omitempty"`
	Status   float64 `json:"status"`
}

// ErrorPointsOutput is the error response-time scatter projection.
type ErrorPointsOutput struct {
	Type          string             `json:"type"` // Always "error_points"
	SchemaVersion int                `json:"schemaVersion"`
	File          string             `json:"file"`
	Points        []ErrorPointOutput `json:"points"`
}

// StatusCountOutput is one bar of the status distribution chart.
type StatusCountOutput struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// DistributionOutput is the status distribution projection.
type DistributionOutput struct {
	Type          string              `json:"type"` // Always "status_distribution"
	SchemaVersion int                 `json:"schemaVersion"`
	File          string              `json:"file"`
	Counts        []StatusCountOutput `json:"counts"`
}

// TimeBucketOutput is one point of the hourly request timeline.
type TimeBucketOutput struct {
	Hour  string `json:"hour"`
	Count int    `json:"count"`
}

// TimelineOutput is the hourly request timeline projection.
type TimelineOutput struct {
	Type          string             `json:"type"` // Always "timeline"
	SchemaVersion int                `json:"schemaVersion"`
	File          string             `json:"file"`
	Buckets       []TimeBucketOutput `json:"buckets"`
}

// ConfigOutput describes the effective configuration.
type ConfigOutput struct {
	Type          string `json:"type"` // Always "config"
	SchemaVersion int    `json:"schemaVersion"`
	File          string `json:"file,omitempty"`
	Format        string `json:"format"`
	Strict        bool   `json:"strict"`
	OutputDir     string `json:"output_dir,omitempty"`
	PreviewRows   int    `json:"preview_rows"`
	Concurrency   int    `json:"concurrency"`
}

// WriteDiagnostic outputs one non-fatal condition.
func (w *NDJSONWriter) WriteDiagnostic(d domain.Diagnostic) error {
	return w.encoder.Encode(DiagnosticOutput{
		Type:          "diagnostic",
		SchemaVersion: SchemaVersion,
		Code:          d.Code,
		Message:       d.Message,
		Line:          d.Line,
		Snippet:       d.Snippet,
	})
}

// WriteError outputs a fatal failure.
func (w *NDJSONWriter) WriteError(code, message string) error {
	return w.encoder.Encode(ErrorOutput{
		Type:          "error",
		SchemaVersion: SchemaVersion,
		Code:          code,
		Message:       message,
	})
}

// WriteProgress outputs a parse progress notification.
func (w *NDJSONWriter) WriteProgress(file string, line, total int) error {
	return w.encoder.Encode(ProgressOutput{
		Type:          "progress",
		SchemaVersion: SchemaVersion,
		File:          file,
		Line:          line,
		Total:         total,
	})
}

// WriteResult outputs the final per-file outcome.
func (w *NDJSONWriter) WriteResult(r ResultOutput) error {
	r.Type = "result"
	r.SchemaVersion = SchemaVersion
	return w.encoder.Encode(r)
}

// WriteBreakdown outputs the status breakdown view.
func (w *NDJSONWriter) WriteBreakdown(file string, b *domain.StatusBreakdown) error {
	out := BreakdownOutput{
		Type:          "status_summary",
		SchemaVersion: SchemaVersion,
		File:          file,
		Groups:        make([]StatusGroupOutput, 0, len(b.Groups)),
	}
	for _, g := range b.Groups {
		out.Groups = append(out.Groups, StatusGroupOutput{
			Status: g.Status.FormatStatus(),
			Count:  g.Count,
			Avg:    numPtr(g.AvgTime),
			Max:    numPtr(g.MaxTime),
			Min:    numPtr(g.MinTime),
		})
	}
	return w.encoder.Encode(out)
}

// WritePivot outputs the endpoint×status view.
func (w *NDJSONWriter) WritePivot(file string, p *domain.Pivot) error {
	out := PivotOutput{
		Type:          "pivot",
		SchemaVersion: SchemaVersion,
		File:          file,
		Columns:       make([]string, 0, len(p.Columns)),
		Rows:          make([]PivotRowOutput, 0, len(p.Rows)),
	}
	for _, col := range p.Columns {
		out.Columns = append(out.Columns, col.Name())
	}
	for _, row := range p.Rows {
		out.Rows = append(out.Rows, PivotRowOutput{Endpoint: row.Endpoint, Cells: row.Cells})
	}
	return w.encoder.Encode(out)
}

// WriteRollup outputs the error rollup view.
func (w *NDJSONWriter) WriteRollup(file string, r *domain.ErrorRollup) error {
	out := RollupOutput{
		Type:          "error_rollup",
		SchemaVersion: SchemaVersion,
		File:          file,
		Rows:          make([]RollupRowOutput, 0, len(r.Rows)),
	}
	for _, row := range r.Rows {
		out.Rows = append(out.Rows, RollupRowOutput{
			Endpoint: row.Endpoint,
			Count:    row.Count,
			Avg:      numPtr(row.AvgTime),
			Max:      numPtr(row.MaxTime),
		})
	}
	return w.encoder.Encode(out)
}

// WriteFields outputs a file's declared schema.
func (w *NDJSONWriter) WriteFields(file string, fields domain.FieldSchema, missing []string) error {
	return w.encoder.Encode(FieldsOutput{
		Type:          "fields",
		SchemaVersion: SchemaVersion,
		File:          file,
		Fields:        fields,
		Missing:       missing,
	})
}

// WriteErrorPoints outputs the error response-time scatter projection.
func (w *NDJSONWriter) WriteErrorPoints(file string, points []domain.ErrorPoint) error {
	out := ErrorPointsOutput{
		Type:          "error_points",
		SchemaVersion: SchemaVersion,
		File:          file,
		Points:        make([]ErrorPointOutput, 0, len(points)),
	}
	for _, p := range points {
		out.Points = append(out.Points, ErrorPointOutput{
			At:       p.At.Format(time.RFC3339),
			Seconds:  p.Seconds,
			Endpoint: p.Endpoint,
			Status:   p.Status,
		})
	}
	return w.encoder.Encode(out)
}

// WriteDistribution outputs the status distribution projection.
func (w *NDJSONWriter) WriteDistribution(file string, counts []domain.StatusCount) error {
	out := DistributionOutput{
		Type:          "status_distribution",
		SchemaVersion: SchemaVersion,
		File:          file,
		Counts:        make([]StatusCountOutput, 0, len(counts)),
	}
	for _, c := range counts {
		out.Counts = append(out.Counts, StatusCountOutput{Status: c.Status, Count: c.Count})
	}
	return w.encoder.Encode(out)
}

// WriteTimeline outputs the hourly request timeline projection.
func (w *NDJSONWriter) WriteTimeline(file string, buckets []domain.TimeBucket) error {
	out := TimelineOutput{
		Type:          "timeline",
		SchemaVersion: SchemaVersion,
		File:          file,
		Buckets:       make([]TimeBucketOutput, 0, len(buckets)),
	}
	for _, b := range buckets {
		out.Buckets = append(out.Buckets, TimeBucketOutput{
			Hour:  b.Hour.Format(time.RFC3339),
			Count: b.Count,
		})
	}
	return w.encoder.Encode(out)
}

// WriteConfig outputs the effective configuration.
func (w *NDJSONWriter) WriteConfig(c ConfigOutput) error {
	c.Type = "config"
	c.SchemaVersion = SchemaVersion
	return w.encoder.Encode(c)
}

func numPtr(v domain.Float64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Value
	return &f
}
