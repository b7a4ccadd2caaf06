package domain

// StatusGroup is one row of the status breakdown: every request with the same
// coerced sc-status value. A single trailing group with an invalid Status
// collects rows whose status token failed numeric coercion.
type StatusGroup struct {
	Status  Float64
	Count   int
	AvgTime Float64
	MaxTime Float64
	MinTime Float64
}

// StatusBreakdown summarizes time-taken per distinct status code.
type StatusBreakdown struct {
	Groups []StatusGroup
}

// PivotAgg identifies one of the pivot's aggregation kinds.
type PivotAgg string

const (
	PivotCount PivotAgg = "count"
	PivotAvg   PivotAgg = "avg"
	PivotMax   PivotAgg = "max"
)

// PivotColumn is one (aggregation, status) column of the endpoint pivot.
type PivotColumn struct {
	Agg    PivotAgg
	Status float64
}

// Name encodes both the aggregation kind and the status value, e.g.
// "count_Status_200".
func (c PivotColumn) Name() string {
	return string(c.Agg) + "_Status_" + Num(c.Status).FormatStatus()
}

// PivotRow is one endpoint's cells, aligned with Pivot.Columns and
// zero-filled for combinations that never occurred.
type PivotRow struct {
	Endpoint string
	Cells    []float64
}

// Pivot is the endpoint×status view over time-taken.
type Pivot struct {
	Columns []PivotColumn
	Rows    []PivotRow
}

// RollupRow summarizes one endpoint's server errors (status >= 500).
type RollupRow struct {
	Endpoint string
	Count    int
	AvgTime  Float64
	MaxTime  Float64
}

// ErrorRollup groups error rows by endpoint.
type ErrorRollup struct {
	Rows []RollupRow
}

// Report bundles the derived views destined for export. Pivot and Errors are
// nil when their source columns are absent or no qualifying rows exist; the
// corresponding sheets are omitted.
type Report struct {
	Breakdown *StatusBreakdown
	Table     *Table
	Pivot     *Pivot
	Errors    *ErrorRollup
}
