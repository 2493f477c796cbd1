// Package engine derives financial state, risk scores, behavioral anomaly
// flags and habit statistics from in-memory ledger snapshots. All
// computations are pure and synchronous: the engine never mutates its
// inputs and never errors — missing or empty data degrades to
// zero/false/neutral values.
package engine

import "time"

const dateLayout = "2006-01-02"

// Engine evaluates snapshots against a single point in time. All date
// bucketing happens in one fixed location so results are deterministic.
type Engine struct {
	now func() time.Time
}

// New creates an engine evaluating against the current UTC time
func New() *Engine {
	return &Engine{now: func() time.Time { return time.Now().UTC() }}
}

// NewWithClock creates an engine with a custom clock, used by callers that
// need a pinned evaluation instant
func NewWithClock(now func() time.Time) *Engine {
	return &Engine{now: now}
}

// Today returns the evaluation day as a YYYY-MM-DD string
func (e *Engine) Today() string {
	return e.now().Format(dateLayout)
}

// daysInMonth returns the number of calendar days in t's month
func daysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).
		AddDate(0, 1, -1).Day()
}

// parseDate parses a YYYY-MM-DD string; ok is false for malformed input
func parseDate(s string) (time.Time, bool) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
