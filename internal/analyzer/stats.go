package analyzer

import (
	"sort"

	"github.com/logsheet/logsheet/internal/domain"
)

// MissingColumnError reports an absent aggregation input column. Fatal for
// the status breakdown; the pivot and the error rollup soft-skip instead.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return "required column not found: " + e.Column
}

// errorStatusFloor is the lowest status code treated as a server error.
const errorStatusFloor = 500

// timeStats accumulates time-taken over a group, excluding null cells.
type timeStats struct {
	n   int
	sum float64
	max float64
	min float64
}

func (s *timeStats) add(v domain.Float64) {
	if !v.Valid {
		return
	}
	if s.n == 0 || v.Value > s.max {
		s.max = v.Value
	}
	if s.n == 0 || v.Value < s.min {
		s.min = v.Value
	}
	s.n++
	s.sum += v.Value
}

func (s *timeStats) avgCell() domain.Float64 {
	if s.n == 0 {
		return domain.Float64{}
	}
	return domain.Num(s.sum / float64(s.n))
}

func (s *timeStats) maxCell() domain.Float64 {
	if s.n == 0 {
		return domain.Float64{}
	}
	return domain.Num(s.max)
}

func (s *timeStats) minCell() domain.Float64 {
	if s.n == 0 {
		return domain.Float64{}
	}
	return domain.Num(s.min)
}

// StatusBreakdown groups the table by sc-status and summarizes time-taken
// per group: request count, then avg/max/min excluding null cells. Rows
// whose status failed coercion form one trailing group. Fails with
// *MissingColumnError when sc-status or time-taken is absent.
func StatusBreakdown(t *domain.Table) (*domain.StatusBreakdown, error) {
	statuses, ok := t.Numeric(domain.FieldStatus)
	if !ok {
		return nil, &MissingColumnError{Column: domain.FieldStatus}
	}
	times, ok := t.Numeric(domain.FieldTimeTaken)
	if !ok {
		return nil, &MissingColumnError{Column: domain.FieldTimeTaken}
	}

	type acc struct {
		count int
		stats timeStats
	}
	groups := make(map[domain.Float64]*acc)
	for i, status := range statuses {
		key := status
		if !key.Valid {
			key = domain.Float64{}
		}
		g := groups[key]
		if g == nil {
			g = &acc{}
			groups[key] = g
		}
		g.count++
		g.stats.add(times[i])
	}

	keys := make([]domain.Float64, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		// the null-status group sorts last
		if keys[i].Valid != keys[j].Valid {
			return keys[i].Valid
		}
		return keys[i].Value < keys[j].Value
	})

	breakdown := &domain.StatusBreakdown{Groups: make([]domain.StatusGroup, 0, len(keys))}
	for _, k := range keys {
		g := groups[k]
		breakdown.Groups = append(breakdown.Groups, domain.StatusGroup{
			Status:  k,
			Count:   g.count,
			AvgTime: g.stats.avgCell(),
			MaxTime: g.stats.maxCell(),
			MinTime: g.stats.minCell(),
		})
	}
	return breakdown, nil
}

// EndpointPivot builds the endpoint×status view over time-taken: one row per
// endpoint, one column per (aggregation, observed status) pair, zero-filled
// where a combination never occurred. Count cells count non-null time-taken
// values. Returns nil when sc-status, cs-uri-stem or time-taken is absent;
// rows with an unparsable status are left out.
func EndpointPivot(t *domain.Table) *domain.Pivot {
	statuses, ok := t.Numeric(domain.FieldStatus)
	if !ok {
		return nil
	}
	endpoints, ok := t.Column(domain.FieldURIStem)
	if !ok {
		return nil
	}
	times, ok := t.Numeric(domain.FieldTimeTaken)
	if !ok {
		return nil
	}

	type cellKey struct {
		endpoint string
		status   float64
	}
	cells := make(map[cellKey]*timeStats)
	counts := make(map[cellKey]int)
	statusSet := make(map[float64]bool)
	endpointSet := make(map[string]bool)

	for i, status := range statuses {
		if !status.Valid {
			continue
		}
		key := cellKey{endpoint: endpoints[i], status: status.Value}
		statusSet[status.Value] = true
		endpointSet[key.endpoint] = true
		st := cells[key]
		if st == nil {
			st = &timeStats{}
			cells[key] = st
		}
		st.add(times[i])
		if times[i].Valid {
			counts[key]++
		}
	}
	if len(endpointSet) == 0 {
		return nil
	}

	statusValues := make([]float64, 0, len(statusSet))
	for s := range statusSet {
		statusValues = append(statusValues, s)
	}
	sort.Float64s(statusValues)

	endpointNames := make([]string, 0, len(endpointSet))
	for e := range endpointSet {
		endpointNames = append(endpointNames, e)
	}
	sort.Strings(endpointNames)

	pivot := &domain.Pivot{}
	for _, agg := range []domain.PivotAgg{domain.PivotCount, domain.PivotAvg, domain.PivotMax} {
		for _, s := range statusValues {
			pivot.Columns = append(pivot.Columns, domain.PivotColumn{Agg: agg, Status: s})
		}
	}

	for _, endpoint := range endpointNames {
		row := domain.PivotRow{
			Endpoint: endpoint,
			Cells:    make([]float64, len(pivot.Columns)),
		}
		for c, col := range pivot.Columns {
			key := cellKey{endpoint: endpoint, status: col.Status}
			st := cells[key]
			if st == nil {
				continue // zero-filled
			}
			switch col.Agg {
			case domain.PivotCount:
				row.Cells[c] = float64(counts[key])
			case domain.PivotAvg:
				if cell := st.avgCell(); cell.Valid {
					row.Cells[c] = cell.Value
				}
			case domain.PivotMax:
				if cell := st.maxCell(); cell.Valid {
					row.Cells[c] = cell.Value
				}
			}
		}
		pivot.Rows = append(pivot.Rows, row)
	}
	return pivot
}

// ErrorRollup groups rows with sc-status >= 500 by endpoint: error count,
// then avg/max time-taken excluding null cells. Returns nil when the needed
// columns are absent or no such rows exist.
func ErrorRollup(t *domain.Table) *domain.ErrorRollup {
	statuses, ok := t.Numeric(domain.FieldStatus)
	if !ok {
		return nil
	}
	endpoints, ok := t.Column(domain.FieldURIStem)
	if !ok {
		return nil
	}
	times, ok := t.Numeric(domain.FieldTimeTaken)
	if !ok {
		return nil
	}

	type acc struct {
		count int
		stats timeStats
	}
	groups := make(map[string]*acc)
	for i, status := range statuses {
		if !status.Valid || status.Value < errorStatusFloor {
			continue
		}
		g := groups[endpoints[i]]
		if g == nil {
			g = &acc{}
			groups[endpoints[i]] = g
		}
		g.count++
		g.stats.add(times[i])
	}
	if len(groups) == 0 {
		return nil
	}

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	rollup := &domain.ErrorRollup{Rows: make([]domain.RollupRow, 0, len(names))}
	for _, name := range names {
		g := groups[name]
		rollup.Rows = append(rollup.Rows, domain.RollupRow{
			Endpoint: name,
			Count:    g.count,
			AvgTime:  g.stats.avgCell(),
			MaxTime:  g.stats.maxCell(),
		})
	}
	return rollup
}
