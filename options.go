package intdict

import (
	"log/slog"

	"github.com/hupe1980/intdict/capacity"
	"github.com/hupe1980/intdict/resource"
)

type options struct {
	resources       *resource.Controller
	policy          capacity.Policy
	logger          *Logger
	metricsObserver MetricsObserver
}

// Option configures a Dictionary.
type Option func(*options)

// WithResourceController reserves every buffer allocation against rc.
// Pass nil (the default) for no limit.
//
// Example with a 1MB budget shared by two dictionaries:
//
//	rc := resource.NewController(resource.Config{MemoryLimitBytes: 1 << 20})
//	a, _ := intdict.New(intdict.WithResourceController(rc))
//	b, _ := intdict.New(intdict.WithResourceController(rc))
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.resources = rc
	}
}

// WithCapacityPolicy configures when the buffers grow and shrink.
// If nil is passed, capacity.Default() is used.
func WithCapacityPolicy(p capacity.Policy) Option {
	return func(o *options) {
		if p == nil {
			p = capacity.Default()
		}
		o.policy = p
	}
}

// WithMetricsObserver configures an observer for dictionary events.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsObserver:
//
//	metrics := &intdict.BasicMetricsObserver{}
//	d, _ := intdict.New(intdict.WithMetricsObserver(metrics))
//	// ... use d ...
//	stats := metrics.GetStats()
//	fmt.Printf("Puts: %d, Resizes: %d\n", stats.PutCount, stats.Resizes())
func WithMetricsObserver(mo MetricsObserver) Option {
	return func(o *options) {
		o.metricsObserver = mo
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := intdict.NewJSONLogger(slog.LevelDebug)
//	d, _ := intdict.New(intdict.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		policy:          capacity.Default(),
		metricsObserver: NoopMetricsObserver{},
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	if o.metricsObserver == nil {
		o.metricsObserver = NoopMetricsObserver{}
	}
	return o
}

// silent returns a copy of o that shares the budget and policy but
// emits neither logs nor metrics.
func (o options) silent() options {
	o.logger = NoopLogger()
	o.metricsObserver = NoopMetricsObserver{}
	return o
}
