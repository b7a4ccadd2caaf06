package domain

import "time"

// StatusCount is one bar of the status distribution chart.
type StatusCount struct {
	Status string
	Count  int
}

// TimeBucket is one point of the hourly request timeline.
type TimeBucket struct {
	Hour  time.Time
	Count int
}

// ErrorPoint is one point of the error response-time scatter: a request with
// status >= 500, a parsed timestamp and a non-null response time.
type ErrorPoint struct {
	At       time.Time
	Seconds  float64
	Endpoint string
	Status   float64
}
