package cli

import (
	"fmt"

	"github.com/logsheet/logsheet/internal/analyzer"
	"github.com/logsheet/logsheet/internal/domain"
	"github.com/logsheet/logsheet/internal/report"
)

// RollupCmd shows the error (status >= 500) rollup for one log file, with
// the error preview rows and the hourly request timeline.
type RollupCmd struct {
	File    string `arg:"" required:"" type:"existingfile" help:"IIS log file"`
	Preview int    `help:"Max error rows to preview (default from config)"`
}

// Run executes the rollup command
func (c *RollupCmd) Run(globals *Globals) error {
	table, diags, err := coerceFile(globals, c.File)
	if err != nil {
		return outputErrorCommon(globals, errorCode(err), fmt.Sprintf("%s: %v", c.File, err))
	}

	writer := report.NewNDJSONWriter(globals.Stdout)
	emitDiagnostics(globals, writer, diags)

	rollup := analyzer.ErrorRollup(table)
	timeline := analyzer.HourlyTimeline(table)

	if globals.Format == "ndjson" {
		if rollup == nil {
			rollup = &domain.ErrorRollup{}
		}
		if err := writer.WriteRollup(c.File, rollup); err != nil {
			return err
		}
		if points := analyzer.ErrorPoints(table); len(points) > 0 {
			if err := writer.WriteErrorPoints(c.File, points); err != nil {
				return err
			}
		}
		if len(timeline) > 0 {
			return writer.WriteTimeline(c.File, timeline)
		}
		return nil
	}

	if rollup == nil {
		if !globals.Quiet {
			fmt.Fprintln(globals.Stdout, "No errors (status >= 500) found in the log.")
		}
	} else {
		fmt.Fprintln(globals.Stdout, heading(globals, "Endpoints with Errors (Status >= 500)"))
		if err := report.RenderRollup(globals.Stdout, rollup); err != nil {
			return err
		}

		limit := c.Preview
		if limit <= 0 {
			limit = globals.Config.Defaults.PreviewRows
		}
		if preview := analyzer.ErrorPreview(table, limit); len(preview) > 0 {
			fmt.Fprintln(globals.Stdout)
			fmt.Fprintln(globals.Stdout, heading(globals, fmt.Sprintf("Error Rows (first %d)", limit)))
			if err := report.RenderPreview(globals.Stdout, table.Schema, preview); err != nil {
				return err
			}
		}
	}

	if len(timeline) > 0 {
		fmt.Fprintln(globals.Stdout)
		fmt.Fprintln(globals.Stdout, heading(globals, "Requests Timeline (Hourly)"))
		return report.RenderTimeline(globals.Stdout, timeline)
	}
	return nil
}
