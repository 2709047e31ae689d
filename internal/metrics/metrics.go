// Package metrics provides a small, backend-agnostic abstraction for
// recording operational metrics from csvre runs.
//
// The package is intentionally minimal:
//
//   - It exposes a narrow interface (Backend) covering counters and
//     duration-style observations.
//   - It provides a global, pluggable backend that defaults to a no-op
//     implementation, so metrics are always safe to call even when no real
//     backend is configured.
//   - Concrete metric systems (Prometheus Pushgateway, Datadog) live in
//     subpackages; the rest of the codebase depends only on this interface.
//
// A typical run records the record-level counters (rows processed, rows
// rewritten) and one run-duration observation, then flushes once before
// process exit.
package metrics

import "time"

// Labels are string key/value pairs attached to a metric.
type Labels map[string]string

// Backend is the minimal interface for metrics backends.
type Backend interface {
	// IncCounter increments a counter by delta.
	IncCounter(name string, delta float64, labels Labels)
	// ObserveDuration records a duration-style value in seconds.
	ObserveDuration(name string, seconds float64, labels Labels)
	// Flush pushes or flushes metrics if the backend needs it.
	Flush() error
}

// nopBackend is used by default so metrics are optional.
type nopBackend struct{}

func (nopBackend) IncCounter(name string, delta float64, labels Labels)        {}
func (nopBackend) ObserveDuration(name string, seconds float64, labels Labels) {}
func (nopBackend) Flush() error                                                { return nil }

var backend Backend = nopBackend{}

// SetBackend installs a concrete backend. Passing nil keeps the existing one.
func SetBackend(b Backend) {
	if b == nil {
		return
	}
	backend = b
}

// Flush delegates to the current backend.
func Flush() error {
	return backend.Flush()
}

// RecordRows increments a record-level counter for the given job and kind.
//
// Kinds mirror the run summary:
//   - "processed"  data rows written
//   - "rewritten"  data rows whose target field changed
func RecordRows(job, kind string, delta int64) {
	if delta <= 0 {
		return
	}
	backend.IncCounter("csvre_records_total", float64(delta), Labels{
		"job":  job,
		"kind": kind,
	})
}

// RecordRun records one completed (or failed) run: a counter split by status
// and the wall-clock duration.
func RecordRun(job string, err error, d time.Duration) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	lbls := Labels{
		"job":    job,
		"status": status,
	}
	backend.IncCounter("csvre_runs_total", 1, lbls)
	backend.ObserveDuration("csvre_run_duration_seconds", d.Seconds(), lbls)
}
