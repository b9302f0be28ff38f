package intdict

import (
	"errors"
	"sync/atomic"
	"time"
)

// MetricsObserver receives dictionary events.
// Implement this interface to integrate with monitoring systems like Prometheus
// (see package metrics/prometheus).
type MetricsObserver interface {
	// OnPut is called after each Put. inserted reports whether a new key was
	// appended (false for an in-place update or a failure before insertion).
	OnPut(duration time.Duration, inserted bool, err error)

	// OnDelete is called after each Delete. Misses report ErrNotFound.
	OnDelete(duration time.Duration, err error)

	// OnResize is called for every capacity change the policy requests,
	// whether or not it could be applied.
	OnResize(from, to int, err error)

	// OnRender is called after each sorted snapshot (RenderSorted,
	// WriteSorted, Entries, Keys, All).
	OnRender(duration time.Duration, entries int, err error)
}

// NoopMetricsObserver is a no-op implementation of MetricsObserver.
// Use this when metrics collection is not needed.
type NoopMetricsObserver struct{}

func (NoopMetricsObserver) OnPut(time.Duration, bool, error)   {}
func (NoopMetricsObserver) OnDelete(time.Duration, error)      {}
func (NoopMetricsObserver) OnResize(int, int, error)           {}
func (NoopMetricsObserver) OnRender(time.Duration, int, error) {}

// BasicMetricsObserver provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsObserver struct {
	PutCount         atomic.Int64
	PutInserts       atomic.Int64
	PutErrors        atomic.Int64
	PutTotalNanos    atomic.Int64
	DeleteCount      atomic.Int64
	DeleteMisses     atomic.Int64
	DeleteErrors     atomic.Int64
	GrowCount        atomic.Int64
	ShrinkCount      atomic.Int64
	ResizeErrors     atomic.Int64
	RenderCount      atomic.Int64
	RenderErrors     atomic.Int64
	RenderEntries    atomic.Int64
	RenderTotalNanos atomic.Int64
}

// OnPut implements MetricsObserver.
func (b *BasicMetricsObserver) OnPut(duration time.Duration, inserted bool, err error) {
	b.PutCount.Add(1)
	b.PutTotalNanos.Add(duration.Nanoseconds())
	if inserted {
		b.PutInserts.Add(1)
	}
	if err != nil {
		b.PutErrors.Add(1)
	}
}

// OnDelete implements MetricsObserver.
func (b *BasicMetricsObserver) OnDelete(duration time.Duration, err error) {
	b.DeleteCount.Add(1)
	switch {
	case errors.Is(err, ErrNotFound):
		b.DeleteMisses.Add(1)
	case err != nil:
		b.DeleteErrors.Add(1)
	}
}

// OnResize implements MetricsObserver.
func (b *BasicMetricsObserver) OnResize(from, to int, err error) {
	if err != nil {
		b.ResizeErrors.Add(1)
		return
	}
	if to > from {
		b.GrowCount.Add(1)
	} else {
		b.ShrinkCount.Add(1)
	}
}

// OnRender implements MetricsObserver.
func (b *BasicMetricsObserver) OnRender(duration time.Duration, entries int, err error) {
	b.RenderCount.Add(1)
	b.RenderTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.RenderErrors.Add(1)
		return
	}
	b.RenderEntries.Add(int64(entries))
}

// GetStats returns a snapshot of the collected metrics.
func (b *BasicMetricsObserver) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		PutCount:       b.PutCount.Load(),
		PutInserts:     b.PutInserts.Load(),
		PutErrors:      b.PutErrors.Load(),
		PutAvgNanos:    avg(b.PutTotalNanos.Load(), b.PutCount.Load()),
		DeleteCount:    b.DeleteCount.Load(),
		DeleteMisses:   b.DeleteMisses.Load(),
		DeleteErrors:   b.DeleteErrors.Load(),
		GrowCount:      b.GrowCount.Load(),
		ShrinkCount:    b.ShrinkCount.Load(),
		ResizeErrors:   b.ResizeErrors.Load(),
		RenderCount:    b.RenderCount.Load(),
		RenderErrors:   b.RenderErrors.Load(),
		RenderEntries:  b.RenderEntries.Load(),
		RenderAvgNanos: avg(b.RenderTotalNanos.Load(), b.RenderCount.Load()),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsObserver state.
type BasicMetricsStats struct {
	PutCount       int64
	PutInserts     int64
	PutErrors      int64
	PutAvgNanos    int64
	DeleteCount    int64
	DeleteMisses   int64
	DeleteErrors   int64
	GrowCount      int64
	ShrinkCount    int64
	ResizeErrors   int64
	RenderCount    int64
	RenderErrors   int64
	RenderEntries  int64
	RenderAvgNanos int64
}

// Resizes returns the number of applied capacity changes.
func (s BasicMetricsStats) Resizes() int64 {
	return s.GrowCount + s.ShrinkCount
}
