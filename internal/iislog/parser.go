package iislog

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/logsheet/logsheet/internal/domain"
)

const (
	directiveMarker = "#"
	fieldsDirective = "#Fields:"
	snippetLen      = 50
)

// RequiredFields is the baseline field set strict mode enforces. Without
// these no derived view can be computed.
var RequiredFields = []string{
	domain.FieldDate,
	domain.FieldTime,
	domain.FieldStatus,
	domain.FieldTimeTaken,
	domain.FieldURIStem,
}

// ProgressFunc receives incremental parse progress. Cosmetic only: it never
// affects parsing results or ordering.
type ProgressFunc func(line, total int)

// Options configures a pipeline run.
type Options struct {
	// Strict rejects files whose schema lacks RequiredFields.
	Strict bool
	// Progress, when set, is called once per consumed line.
	Progress ProgressFunc
	// Logger receives verbose diagnostics. Nil means no logging.
	Logger *zap.Logger
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// Result is the outcome of parsing one log file.
type Result struct {
	Schema      domain.FieldSchema
	Records     []domain.Record
	Diagnostics []domain.Diagnostic
}

// Skipped counts the data lines dropped for a token-count mismatch.
func (r *Result) Skipped() int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Code == domain.DiagMalformedLine {
			n++
		}
	}
	return n
}

// Parse turns raw log bytes into a field schema and a sequence of records.
//
// Bytes are decoded permissively: invalid UTF-8 sequences are replaced, never
// rejected. Lines are processed in file order with no lookahead. The first
// #Fields: directive establishes the schema; later ones are ignored. Data
// lines with a token count different from the schema length are skipped with
// a diagnostic. A file that yields no schema or no records fails with
// *FormatError; in strict mode a schema missing RequiredFields fails with
// *SchemaError before any row is accepted.
func Parse(data []byte, opts Options) (*Result, error) {
	logger := opts.logger()
	text := strings.ToValidUTF8(string(data), "�")
	lines := strings.Split(text, "\n")
	total := len(lines)

	res := &Result{}
	for i, line := range lines {
		if opts.Progress != nil {
			opts.Progress(i+1, total)
		}
		line = strings.TrimRight(line, "\r")

		if strings.HasPrefix(line, directiveMarker) {
			if res.Schema != nil || !strings.HasPrefix(line, fieldsDirective) {
				continue
			}
			schema := domain.FieldSchema(strings.Fields(line)[1:])
			if len(schema) == 0 {
				continue
			}
			if missing := schema.Missing(RequiredFields); len(missing) > 0 {
				if opts.Strict {
					return nil, &SchemaError{Missing: missing}
				}
				res.Diagnostics = append(res.Diagnostics, domain.Diagnostic{
					Code:    domain.DiagMissingFields,
					Message: fmt.Sprintf("schema lacks baseline fields: %s", strings.Join(missing, ", ")),
					Line:    i + 1,
				})
			}
			res.Schema = schema
			logger.Debug("schema established",
				zap.Int("line", i+1),
				zap.Int("fields", len(schema)))
			continue
		}

		if res.Schema == nil || strings.TrimSpace(line) == "" {
			continue
		}

		tokens := strings.Fields(line)
		if len(tokens) != len(res.Schema) {
			res.Diagnostics = append(res.Diagnostics, domain.Diagnostic{
				Code:    domain.DiagMalformedLine,
				Message: fmt.Sprintf("skipping malformed line: expected %d fields, got %d", len(res.Schema), len(tokens)),
				Line:    i + 1,
				Snippet: snippet(line),
			})
			logger.Debug("skipping malformed line",
				zap.Int("line", i+1),
				zap.Int("want", len(res.Schema)),
				zap.Int("got", len(tokens)))
			continue
		}
		res.Records = append(res.Records, domain.Record(tokens))
	}

	if res.Schema == nil || len(res.Records) == 0 {
		return nil, &FormatError{}
	}
	return res, nil
}

func snippet(line string) string {
	if len(line) > snippetLen {
		return line[:snippetLen] + "..."
	}
	return line
}
