package iislog

import "strings"

// FormatError reports a file with no usable schema or no data rows at all.
type FormatError struct{}

func (e *FormatError) Error() string {
	return "invalid log format or no data found"
}

// SchemaError reports a declared schema missing required fields. Only raised
// in strict mode, before any data row is accepted.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return "log schema missing required fields: " + strings.Join(e.Missing, ", ")
}
