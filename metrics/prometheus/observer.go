// Package prometheus exports dictionary events as Prometheus metrics.
package prometheus

import (
	"errors"
	"time"

	"github.com/hupe1980/intdict"
	prom "github.com/prometheus/client_golang/prometheus"
)

// Observer implements intdict.MetricsObserver with Prometheus collectors.
type Observer struct {
	opLatency     *prom.HistogramVec
	ops           *prom.CounterVec
	resizes       *prom.CounterVec
	capacity      prom.Gauge
	renderEntries prom.Histogram
}

var _ intdict.MetricsObserver = (*Observer)(nil)

// New creates an Observer and registers its collectors with reg.
// namespace prefixes every metric name (e.g. "intdict").
func New(reg prom.Registerer, namespace string) (*Observer, error) {
	o := &Observer{
		opLatency: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_latency_seconds",
			Help:      "Latency of dictionary operations",
			Buckets:   prom.ExponentialBuckets(1e-7, 4, 10),
		}, []string{"op", "status"}),
		ops: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Dictionary operations by outcome",
		}, []string{"op", "result"}),
		resizes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "resizes_total",
			Help:      "Capacity changes requested by the capacity policy",
		}, []string{"direction", "status"}),
		capacity: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "capacity",
			Help:      "Capacity after the most recent successful resize",
		}),
		renderEntries: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "render_entries",
			Help:      "Number of entries per sorted snapshot",
			Buckets:   prom.ExponentialBuckets(1, 4, 8),
		}),
	}

	for _, c := range []prom.Collector{o.opLatency, o.ops, o.resizes, o.capacity, o.renderEntries} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return o, nil
}

// MustNew is like New but panics if registration fails.
func MustNew(reg prom.Registerer, namespace string) *Observer {
	o, err := New(reg, namespace)
	if err != nil {
		panic(err)
	}
	return o
}

func status(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, intdict.ErrMemory):
		return "memory_error"
	case errors.Is(err, intdict.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}

// OnPut implements intdict.MetricsObserver.
func (o *Observer) OnPut(d time.Duration, inserted bool, err error) {
	o.opLatency.WithLabelValues("put", status(err)).Observe(d.Seconds())

	result := "updated"
	switch {
	case err != nil && !inserted:
		result = status(err)
	case inserted:
		result = "inserted"
	}
	o.ops.WithLabelValues("put", result).Inc()
}

// OnDelete implements intdict.MetricsObserver.
func (o *Observer) OnDelete(d time.Duration, err error) {
	o.opLatency.WithLabelValues("delete", status(err)).Observe(d.Seconds())

	result := "deleted"
	if err != nil {
		result = status(err)
	}
	o.ops.WithLabelValues("delete", result).Inc()
}

// OnResize implements intdict.MetricsObserver.
func (o *Observer) OnResize(from, to int, err error) {
	direction := "shrink"
	if to > from {
		direction = "grow"
	}
	o.resizes.WithLabelValues(direction, status(err)).Inc()
	if err == nil {
		o.capacity.Set(float64(to))
	}
}

// OnRender implements intdict.MetricsObserver.
func (o *Observer) OnRender(d time.Duration, entries int, err error) {
	o.opLatency.WithLabelValues("render", status(err)).Observe(d.Seconds())
	if err == nil {
		o.renderEntries.Observe(float64(entries))
	}
}
