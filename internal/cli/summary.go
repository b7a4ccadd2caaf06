package cli

import (
	"fmt"

	"github.com/logsheet/logsheet/internal/analyzer"
	"github.com/logsheet/logsheet/internal/report"
)

// SummaryCmd shows the status-code breakdown for one log file.
type SummaryCmd struct {
	File string `arg:"" required:"" type:"existingfile" help:"IIS log file"`
}

// Run executes the summary command
func (c *SummaryCmd) Run(globals *Globals) error {
	table, diags, err := coerceFile(globals, c.File)
	if err != nil {
		return outputErrorCommon(globals, errorCode(err), fmt.Sprintf("%s: %v", c.File, err))
	}

	breakdown, err := analyzer.StatusBreakdown(table)
	if err != nil {
		return outputErrorCommon(globals, errorCode(err), fmt.Sprintf("%s: %v", c.File, err))
	}
	counts := analyzer.StatusCounts(table)

	writer := report.NewNDJSONWriter(globals.Stdout)
	emitDiagnostics(globals, writer, diags)

	if globals.Format == "ndjson" {
		if err := writer.WriteBreakdown(c.File, breakdown); err != nil {
			return err
		}
		return writer.WriteDistribution(c.File, counts)
	}

	fmt.Fprintln(globals.Stdout, heading(globals, "Status Summary"))
	if err := report.RenderBreakdown(globals.Stdout, breakdown); err != nil {
		return err
	}
	if len(counts) > 0 {
		fmt.Fprintln(globals.Stdout)
		fmt.Fprintln(globals.Stdout, heading(globals, "Status Distribution"))
		if err := report.RenderDistribution(globals.Stdout, counts); err != nil {
			return err
		}
	}
	return nil
}
