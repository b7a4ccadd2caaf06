package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/logsheet/logsheet/internal/analyzer"
	"github.com/logsheet/logsheet/internal/domain"
	"github.com/logsheet/logsheet/internal/iislog"
	"github.com/logsheet/logsheet/internal/report"
)

// pipelineResult bundles everything one file's pipeline run yields.
type pipelineResult struct {
	schema      domain.FieldSchema
	table       *domain.Table
	report      *domain.Report
	diagnostics []domain.Diagnostic
	skipped     int
}

// runPipeline executes parse -> coerce -> aggregate over one file's bytes.
// The run is synchronous and request-scoped: nothing outlives the returned
// result.
func runPipeline(data []byte, opts iislog.Options) (*pipelineResult, error) {
	parsed, err := iislog.Parse(data, opts)
	if err != nil {
		return nil, err
	}

	table, coerceDiags := iislog.Coerce(parsed.Schema, parsed.Records, opts)

	breakdown, err := analyzer.StatusBreakdown(table)
	if err != nil {
		return nil, err
	}

	rep := &domain.Report{
		Breakdown: breakdown,
		Table:     table,
		Pivot:     analyzer.EndpointPivot(table),
		Errors:    analyzer.ErrorRollup(table),
	}

	return &pipelineResult{
		schema:      parsed.Schema,
		table:       table,
		report:      rep,
		diagnostics: append(parsed.Diagnostics, coerceDiags...),
		skipped:     parsed.Skipped(),
	}, nil
}

// coerceFile reads and runs parse + coerce for the single-view commands.
func coerceFile(globals *Globals, path string) (*domain.Table, []domain.Diagnostic, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	opts := iislog.Options{Strict: globals.Strict, Logger: globals.Logger()}
	parsed, err := iislog.Parse(data, opts)
	if err != nil {
		return nil, nil, err
	}
	table, coerceDiags := iislog.Coerce(parsed.Schema, parsed.Records, opts)
	return table, append(parsed.Diagnostics, coerceDiags...), nil
}

// errorCode maps pipeline failures to stable machine-readable codes.
func errorCode(err error) string {
	var formatErr *iislog.FormatError
	var schemaErr *iislog.SchemaError
	var missingErr *analyzer.MissingColumnError
	var exportErr *report.ExportError

	switch {
	case errors.As(err, &formatErr):
		return "FORMAT_ERROR"
	case errors.As(err, &schemaErr):
		return "SCHEMA_ERROR"
	case errors.As(err, &missingErr):
		return "MISSING_COLUMN"
	case errors.As(err, &exportErr):
		return "EXPORT_ERROR"
	case errors.Is(err, os.ErrNotExist):
		return "FILE_NOT_FOUND"
	}
	return "PIPELINE_ERROR"
}

// emitDiagnostics reports non-fatal conditions without failing the run.
func emitDiagnostics(globals *Globals, writer *report.NDJSONWriter, diags []domain.Diagnostic) {
	if globals.Quiet {
		return
	}
	for _, d := range diags {
		if globals.Format == "ndjson" {
			writer.WriteDiagnostic(d)
			continue
		}
		msg := d.Message
		if d.Snippet != "" {
			msg += ": " + d.Snippet
		}
		fmt.Fprintf(globals.Stderr, "Warning: %s\n", msg)
	}
}

// styledOutput reports whether stdout is a terminal that can take lipgloss
// styling.
func styledOutput(globals *Globals) bool {
	f, ok := globals.Stdout.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

// heading renders a section heading, styled when the terminal allows it.
func heading(globals *Globals, text string) string {
	if styledOutput(globals) {
		return report.Styles.Header.Render(text)
	}
	return text
}
