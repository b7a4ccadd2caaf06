package analyzer

import (
	"sort"
	"time"

	"github.com/logsheet/logsheet/internal/domain"
)

// StatusCounts projects the status distribution chart: distinct coerced
// sc-status values with their request counts, most frequent first. Rows with
// an unparsable status are excluded. Returns nil when sc-status is absent.
func StatusCounts(t *domain.Table) []domain.StatusCount {
	statuses, ok := t.Numeric(domain.FieldStatus)
	if !ok {
		return nil
	}

	counts := make(map[float64]int)
	for _, s := range statuses {
		if s.Valid {
			counts[s.Value]++
		}
	}

	out := make([]domain.StatusCount, 0, len(counts))
	for s, n := range counts {
		out = append(out, domain.StatusCount{Status: domain.Num(s).FormatStatus(), Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Status < out[j].Status
	})
	return out
}

// HourlyTimeline projects the requests-over-time chart: request counts per
// datetime floored to the hour, in chronological order. Rows with a null
// datetime are excluded. Returns nil when the datetime column is absent.
func HourlyTimeline(t *domain.Table) []domain.TimeBucket {
	if !t.HasDatetime() {
		return nil
	}

	counts := make(map[time.Time]int)
	for _, ts := range t.Times {
		if ts.Valid {
			counts[ts.Value.Truncate(time.Hour)]++
		}
	}

	out := make([]domain.TimeBucket, 0, len(counts))
	for hour, n := range counts {
		out = append(out, domain.TimeBucket{Hour: hour, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Hour.Before(out[j].Hour) })
	return out
}

// ErrorPoints projects the error response-time scatter: one point per row
// with status >= 500, a parsed datetime and a non-null time-taken.
func ErrorPoints(t *domain.Table) []domain.ErrorPoint {
	statuses, ok := t.Numeric(domain.FieldStatus)
	if !ok || !t.HasDatetime() {
		return nil
	}
	times, ok := t.Numeric(domain.FieldTimeTaken)
	if !ok {
		return nil
	}
	endpoints, _ := t.Column(domain.FieldURIStem)

	var out []domain.ErrorPoint
	for i, status := range statuses {
		if !status.Valid || status.Value < errorStatusFloor {
			continue
		}
		if !t.Times[i].Valid || !times[i].Valid {
			continue
		}
		point := domain.ErrorPoint{
			At:      t.Times[i].Value,
			Seconds: times[i].Value,
			Status:  status.Value,
		}
		if endpoints != nil {
			point.Endpoint = endpoints[i]
		}
		out = append(out, point)
	}
	return out
}

// ErrorPreview returns the first limit raw rows with status >= 500, in file
// order.
func ErrorPreview(t *domain.Table, limit int) []domain.Record {
	statuses, ok := t.Numeric(domain.FieldStatus)
	if !ok {
		return nil
	}

	var out []domain.Record
	for i, status := range statuses {
		if !status.Valid || status.Value < errorStatusFloor {
			continue
		}
		out = append(out, t.Row(i))
		if len(out) == limit {
			break
		}
	}
	return out
}
