package kvmap

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/c360/containerkit/metric"
)

// mapMetrics holds Prometheus metrics for map operations.
type mapMetrics struct {
	// Counter metrics - directly incremented without stats duplication
	hits     prometheus.Counter
	misses   prometheus.Counter
	sets     prometheus.Counter
	deletes  prometheus.Counter
	rehashes prometheus.Counter

	// Gauge metrics - updated on operations
	size prometheus.Gauge
}

// newMapMetrics creates and registers map metrics with the provided registry.
func newMapMetrics(registry *metric.MetricsRegistry, prefix string) (*mapMetrics, error) {
	m := &mapMetrics{
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "containerkit",
			Subsystem:   "kvmap",
			Name:        "hits_total",
			ConstLabels: prometheus.Labels{"component": prefix},
			Help:        "Total number of successful lookups",
		}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "containerkit",
			Subsystem:   "kvmap",
			Name:        "misses_total",
			ConstLabels: prometheus.Labels{"component": prefix},
			Help:        "Total number of failed lookups",
		}),
		sets: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "containerkit",
			Subsystem:   "kvmap",
			Name:        "sets_total",
			ConstLabels: prometheus.Labels{"component": prefix},
			Help:        "Total number of set operations",
		}),
		deletes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "containerkit",
			Subsystem:   "kvmap",
			Name:        "deletes_total",
			ConstLabels: prometheus.Labels{"component": prefix},
			Help:        "Total number of delete operations",
		}),
		rehashes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "containerkit",
			Subsystem:   "kvmap",
			Name:        "rehashes_total",
			ConstLabels: prometheus.Labels{"component": prefix},
			Help:        "Total number of backing-storage rebuilds",
		}),
		size: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "containerkit",
			Subsystem:   "kvmap",
			Name:        "size",
			ConstLabels: prometheus.Labels{"component": prefix},
			Help:        "Current number of entries in the map",
		}),
	}

	// Register all metrics with the registry
	if err := registry.RegisterCounter(prefix, "kvmap_hits", m.hits); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounter(prefix, "kvmap_misses", m.misses); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounter(prefix, "kvmap_sets", m.sets); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounter(prefix, "kvmap_deletes", m.deletes); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounter(prefix, "kvmap_rehashes", m.rehashes); err != nil {
		return nil, err
	}
	if err := registry.RegisterGauge(prefix, "kvmap_size", m.size); err != nil {
		return nil, err
	}

	return m, nil
}

func (m *mapMetrics) recordHit() {
	m.hits.Inc()
}

func (m *mapMetrics) recordMiss() {
	m.misses.Inc()
}

func (m *mapMetrics) recordSet() {
	m.sets.Inc()
}

func (m *mapMetrics) recordDelete() {
	m.deletes.Inc()
}

func (m *mapMetrics) recordRehash() {
	m.rehashes.Inc()
}

func (m *mapMetrics) updateSize(size int) {
	m.size.Set(float64(size))
}
