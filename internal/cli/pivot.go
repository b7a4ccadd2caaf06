package cli

import (
	"fmt"

	"github.com/logsheet/logsheet/internal/analyzer"
	"github.com/logsheet/logsheet/internal/domain"
	"github.com/logsheet/logsheet/internal/report"
)

// PivotCmd shows the endpoint-by-status pivot for one log file.
type PivotCmd struct {
	File string `arg:"" required:"" type:"existingfile" help:"IIS log file"`
}

// Run executes the pivot command
func (c *PivotCmd) Run(globals *Globals) error {
	table, diags, err := coerceFile(globals, c.File)
	if err != nil {
		return outputErrorCommon(globals, errorCode(err), fmt.Sprintf("%s: %v", c.File, err))
	}

	writer := report.NewNDJSONWriter(globals.Stdout)
	emitDiagnostics(globals, writer, diags)

	pivot := analyzer.EndpointPivot(table)
	if pivot == nil {
		// soft-skip: missing columns are not an error here
		if globals.Format == "ndjson" {
			return writer.WritePivot(c.File, &domain.Pivot{})
		}
		if !globals.Quiet {
			fmt.Fprintln(globals.Stdout, "No pivot table generated (missing required columns or data).")
		}
		return nil
	}

	if globals.Format == "ndjson" {
		return writer.WritePivot(c.File, pivot)
	}

	fmt.Fprintln(globals.Stdout, heading(globals, "Requests by Endpoint and Status"))
	return report.RenderPivot(globals.Stdout, pivot)
}
