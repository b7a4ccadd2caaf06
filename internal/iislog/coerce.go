package iislog

import (
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/logsheet/logsheet/internal/domain"
)

// NumericFields are the columns coerced to numbers when declared.
var NumericFields = []string{
	"s-port",
	"sc-status",
	"sc-substatus",
	"sc-win32-status",
	"sc-bytes",
	"cs-bytes",
	domain.FieldTimeTaken,
}

// datetimeLayout matches the W3C extended log date and time fields joined
// with a space, e.g. "2024-01-01 00:00:01".
const datetimeLayout = "2006-01-02 15:04:05"

// Coerce normalizes parsed records into a typed table. Numeric fields parse
// to float64 with unparsable values becoming null cells; time-taken is
// rescaled from milliseconds to seconds; a datetime column is synthesized
// from the date and time fields when both are declared. Rows are never
// dropped, only individual cells nulled.
func Coerce(schema domain.FieldSchema, records []domain.Record, opts Options) (*domain.Table, []domain.Diagnostic) {
	logger := opts.logger()

	table := &domain.Table{
		Schema:  schema,
		Strings: make(map[string][]string, len(schema)),
		Numbers: make(map[string][]domain.Float64),
	}

	for i, name := range schema {
		col := make([]string, len(records))
		for r, rec := range records {
			col[r] = rec[i]
		}
		table.Strings[name] = col
	}

	for _, name := range NumericFields {
		raw, ok := table.Strings[name]
		if !ok {
			continue
		}
		col := make([]domain.Float64, len(raw))
		for r, v := range raw {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				col[r] = domain.Num(f)
			}
		}
		table.Numbers[name] = col
	}

	// time-taken arrives in milliseconds; downstream views speak seconds.
	if col, ok := table.Numbers[domain.FieldTimeTaken]; ok {
		for r := range col {
			if col[r].Valid {
				col[r].Value /= 1000
			}
		}
	}

	var diags []domain.Diagnostic
	dates, haveDate := table.Strings[domain.FieldDate]
	times, haveTime := table.Strings[domain.FieldTime]
	if haveDate && haveTime {
		col := make([]domain.Time, len(records))
		parsed := 0
		for r := range records {
			if ts, err := time.Parse(datetimeLayout, dates[r]+" "+times[r]); err == nil {
				col[r] = domain.Time{Value: ts, Valid: true}
				parsed++
			}
		}
		table.Times = col
		if parsed == 0 && len(records) > 0 {
			diags = append(diags, domain.Diagnostic{
				Code:    domain.DiagDatetimeFailed,
				Message: "failed to parse date and time columns into a datetime; check the log file format",
			})
			logger.Warn("datetime synthesis failed for every record",
				zap.Int("rows", len(records)))
		}
	}

	return table, diags
}
