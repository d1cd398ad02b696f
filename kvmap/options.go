package kvmap

import (
	"log/slog"

	"github.com/c360/containerkit/metric"
)

// RehashObserver is called after every rehash with the freshly rebuilt
// backing map. The observer may mutate it; the map wrapper does not inspect
// it again until the next operation.
type RehashObserver[K comparable, V any] func(items map[K]V)

// Option configures map behavior using the functional options pattern.
type Option[K comparable, V any] func(*mapOptions[K, V])

// mapOptions holds internal configuration for map instances.
// Stats are ALWAYS collected - they are not optional.
// Metrics are optional and exposed via WithMetrics().
type mapOptions[K comparable, V any] struct {
	// metricsReg is optional - if provided, map stats are also exposed as Prometheus metrics
	metricsReg *metric.MetricsRegistry

	// metricsPrefix is used as the component label for Prometheus metrics
	metricsPrefix string

	// observer fires after every rehash (Rehashing only)
	observer RehashObserver[K, V]

	// logger receives Debug-level rehash events when set
	logger *slog.Logger
}

// WithMetrics enables Prometheus metrics export for map statistics.
// If registry is nil or prefix is empty, this option is ignored.
func WithMetrics[K comparable, V any](registry *metric.MetricsRegistry, prefix string) Option[K, V] {
	return func(opts *mapOptions[K, V]) {
		if registry != nil && prefix != "" {
			opts.metricsReg = registry
			opts.metricsPrefix = prefix
		}
	}
}

// WithRehashObserver sets a callback invoked after every rehash with the
// rebuilt backing map. Only meaningful for Rehashing maps.
func WithRehashObserver[K comparable, V any](observer RehashObserver[K, V]) Option[K, V] {
	return func(opts *mapOptions[K, V]) {
		opts.observer = observer
	}
}

// WithLogger sets a structured logger for Debug-level rehash events.
// If logger is nil, this option is ignored.
func WithLogger[K comparable, V any](logger *slog.Logger) Option[K, V] {
	return func(opts *mapOptions[K, V]) {
		if logger != nil {
			opts.logger = logger
		}
	}
}

// applyOptions applies functional options to create final map configuration.
// This is an internal helper used by map constructors.
func applyOptions[K comparable, V any](options ...Option[K, V]) *mapOptions[K, V] {
	opts := &mapOptions[K, V]{}

	for _, opt := range options {
		if opt != nil {
			opt(opts)
		}
	}

	return opts
}
