package domain

// Diagnostic codes emitted by the pipeline.
const (
	DiagMalformedLine  = "malformed_line"
	DiagMissingFields  = "missing_fields"
	DiagDatetimeFailed = "datetime_parse_failed"
)

// Diagnostic is a non-fatal condition collected while parsing or coercing.
// The run still succeeds; diagnostics travel alongside the result.
type Diagnostic struct {
	Code    string
	Message string
	Line    int    // 1-based line number, 0 when not line-scoped
	Snippet string // leading slice of the offending line
}
