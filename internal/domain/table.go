package domain

import "time"

// Time is a timestamp cell that may be missing.
type Time struct {
	Value time.Time
	Valid bool
}

// Table is the coerced, column-oriented dataset for one log file.
// Every declared field keeps its raw string values; fields from the numeric
// set additionally carry coerced values. Times holds the synthesized datetime
// column and is nil when the schema lacks date or time.
type Table struct {
	Schema  FieldSchema
	Strings map[string][]string
	Numbers map[string][]Float64
	Times   []Time
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if len(t.Schema) == 0 {
		return 0
	}
	return len(t.Strings[t.Schema[0]])
}

// Column returns the raw string values of a declared field.
func (t *Table) Column(name string) ([]string, bool) {
	col, ok := t.Strings[name]
	return col, ok
}

// Numeric returns the coerced values of a numeric field.
func (t *Table) Numeric(name string) ([]Float64, bool) {
	col, ok := t.Numbers[name]
	return col, ok
}

// HasDatetime reports whether the synthesized datetime column exists.
func (t *Table) HasDatetime() bool {
	return t.Times != nil
}

// Row reconstructs one row's raw tokens in schema order.
func (t *Table) Row(i int) Record {
	row := make(Record, len(t.Schema))
	for j, name := range t.Schema {
		row[j] = t.Strings[name][i]
	}
	return row
}
