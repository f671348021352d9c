package ctlookup

import (
	"sync/atomic"
	"time"
)

// Metrics tracks lookup counts and fetch timing using atomic operations.
// All methods are safe for concurrent use.
type Metrics struct {
	lookupsTotal   atomic.Uint64
	notFoundTotal  atomic.Uint64
	resolvesTotal  atomic.Uint64
	fetchTimeTotal atomic.Uint64 // nanoseconds
	fetchesTotal   atomic.Uint64
}

// NewMetrics creates a new Metrics instance.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// defaultMetrics collects metrics for package-level lookups.
var defaultMetrics = NewMetrics()

// DefaultMetrics returns the metrics collected by Lookup.
func DefaultMetrics() *Metrics {
	return defaultMetrics
}

// RecordLookup records a completed lookup and whether it matched any rows.
func (m *Metrics) RecordLookup(notFound bool) {
	m.lookupsTotal.Add(1)
	if notFound {
		m.notFoundTotal.Add(1)
	}
}

// RecordResolve records one latest-version resolution.
func (m *Metrics) RecordResolve() {
	m.resolvesTotal.Add(1)
}

// RecordFetch records one package fetch and its duration.
func (m *Metrics) RecordFetch(duration time.Duration) {
	m.fetchesTotal.Add(1)
	m.fetchTimeTotal.Add(uint64(duration.Nanoseconds()))
}

// Snapshot is a point-in-time copy of the metrics.
type Snapshot struct {
	LookupsTotal  uint64
	NotFoundTotal uint64
	ResolvesTotal uint64
	FetchesTotal  uint64
	FetchTimeAvg  time.Duration
}

// Snapshot returns a consistent-enough copy of the current metrics.
func (m *Metrics) Snapshot() Snapshot {
	s := Snapshot{
		LookupsTotal:  m.lookupsTotal.Load(),
		NotFoundTotal: m.notFoundTotal.Load(),
		ResolvesTotal: m.resolvesTotal.Load(),
		FetchesTotal:  m.fetchesTotal.Load(),
	}
	if s.FetchesTotal > 0 {
		s.FetchTimeAvg = time.Duration(m.fetchTimeTotal.Load() / s.FetchesTotal)
	}
	return s
}
