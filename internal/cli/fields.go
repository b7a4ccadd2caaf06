package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/logsheet/logsheet/internal/iislog"
	"github.com/logsheet/logsheet/internal/report"
)

// FieldsCmd shows the field schema declared by one log file.
type FieldsCmd struct {
	File string `arg:"" required:"" type:"existingfile" help:"IIS log file"`
}

// Run executes the fields command
func (c *FieldsCmd) Run(globals *Globals) error {
	data, err := os.ReadFile(c.File)
	if err != nil {
		return outputErrorCommon(globals, "FILE_NOT_FOUND", fmt.Sprintf("cannot read %s: %v", c.File, err))
	}

	// never strict here: the point is to inspect whatever the file declares
	parsed, err := iislog.Parse(data, iislog.Options{Logger: globals.Logger()})
	if err != nil {
		return outputErrorCommon(globals, errorCode(err), fmt.Sprintf("%s: %v", c.File, err))
	}

	missing := parsed.Schema.Missing(iislog.RequiredFields)

	if globals.Format == "ndjson" {
		return report.NewNDJSONWriter(globals.Stdout).WriteFields(c.File, parsed.Schema, missing)
	}

	fmt.Fprintln(globals.Stdout, heading(globals, "Declared Fields"))
	for _, name := range parsed.Schema {
		fmt.Fprintf(globals.Stdout, "  %s\n", name)
	}
	if len(missing) > 0 {
		fmt.Fprintln(globals.Stdout)
		fmt.Fprintf(globals.Stdout, "Missing baseline fields: %s\n", strings.Join(missing, ", "))
	}
	return nil
}
