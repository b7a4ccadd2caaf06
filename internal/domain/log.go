package domain

import "strconv"

// Well-known IIS W3C field names the pipeline depends on.
const (
	FieldDate      = "date"
	FieldTime      = "time"
	FieldStatus    = "sc-status"
	FieldURIStem   = "cs-uri-stem"
	FieldTimeTaken = "time-taken"
)

// FieldSchema is the ordered list of column names declared by a log file's
// #Fields: directive.
type FieldSchema []string

// Index returns the position of name in the schema, or -1 when absent.
func (s FieldSchema) Index(name string) int {
	for i, f := range s {
		if f == name {
			return i
		}
	}
	return -1
}

// Has reports whether the schema declares name.
func (s FieldSchema) Has(name string) bool {
	return s.Index(name) >= 0
}

// Missing returns the subset of required fields the schema does not declare.
func (s FieldSchema) Missing(required []string) []string {
	var missing []string
	for _, name := range required {
		if !s.Has(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// Record is one accepted data line, tokens aligned with the field schema.
type Record []string

// Float64 is a numeric cell that may be missing. Invalid cells carry a zero
// Value and are excluded from aggregation.
type Float64 struct {
	Value float64
	Valid bool
}

// Num wraps a valid numeric cell.
func Num(v float64) Float64 {
	return Float64{Value: v, Valid: true}
}

// FormatStatus renders a coerced status code for display and column naming.
// Invalid statuses render as "NA".
func (f Float64) FormatStatus() string {
	if !f.Valid {
		return "NA"
	}
	return strconv.FormatFloat(f.Value, 'f', -1, 64)
}
