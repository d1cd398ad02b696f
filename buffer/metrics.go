package buffer

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/c360/containerkit/metric"
)

// bufferMetrics holds Prometheus metrics for buffer operations.
type bufferMetrics struct {
	// Counter metrics - directly incremented without stats duplication
	writes     prometheus.Counter
	reads      prometheus.Counter
	peeks      prometheus.Counter
	overwrites prometheus.Counter
	drops      prometheus.Counter

	// Gauge metrics - updated on operations
	length      prometheus.Gauge
	utilization prometheus.Gauge
}

// newBufferMetrics creates and registers buffer metrics with the provided registry.
func newBufferMetrics(registry *metric.MetricsRegistry, prefix string) (*bufferMetrics, error) {
	m := &bufferMetrics{
		writes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "containerkit",
			Subsystem:   "buffer",
			Name:        "writes_total",
			ConstLabels: prometheus.Labels{"component": prefix},
			Help:        "Total number of buffer write operations",
		}),
		reads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "containerkit",
			Subsystem:   "buffer",
			Name:        "reads_total",
			ConstLabels: prometheus.Labels{"component": prefix},
			Help:        "Total number of buffer read operations",
		}),
		peeks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "containerkit",
			Subsystem:   "buffer",
			Name:        "peeks_total",
			ConstLabels: prometheus.Labels{"component": prefix},
			Help:        "Total number of buffer peek operations",
		}),
		overwrites: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "containerkit",
			Subsystem:   "buffer",
			Name:        "overwrites_total",
			ConstLabels: prometheus.Labels{"component": prefix},
			Help:        "Total number of oldest-entry overwrites on a full ring",
		}),
		drops: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "containerkit",
			Subsystem:   "buffer",
			Name:        "drops_total",
			ConstLabels: prometheus.Labels{"component": prefix},
			Help:        "Total number of items discarded by overwrite or Clear",
		}),
		length: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "containerkit",
			Subsystem:   "buffer",
			Name:        "length",
			ConstLabels: prometheus.Labels{"component": prefix},
			Help:        "Current number of items in buffer",
		}),
		utilization: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "containerkit",
			Subsystem:   "buffer",
			Name:        "utilization",
			ConstLabels: prometheus.Labels{"component": prefix},
			Help:        "Buffer utilization as a fraction (0.0 to 1.0)",
		}),
	}

	// Register all metrics with the registry
	if err := registry.RegisterCounter(prefix, "buffer_writes", m.writes); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounter(prefix, "buffer_reads", m.reads); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounter(prefix, "buffer_peeks", m.peeks); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounter(prefix, "buffer_overwrites", m.overwrites); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounter(prefix, "buffer_drops", m.drops); err != nil {
		return nil, err
	}
	if err := registry.RegisterGauge(prefix, "buffer_length", m.length); err != nil {
		return nil, err
	}
	if err := registry.RegisterGauge(prefix, "buffer_utilization", m.utilization); err != nil {
		return nil, err
	}

	return m, nil
}

// recordWrite increments the write counter and updates length/utilization.
func (m *bufferMetrics) recordWrite(length, capacity int) {
	m.writes.Inc()
	m.updateLen(length, capacity)
}

// recordRead increments the read counter and updates length/utilization.
func (m *bufferMetrics) recordRead(length, capacity int) {
	m.reads.Inc()
	m.updateLen(length, capacity)
}

// recordPeek increments the peek counter.
func (m *bufferMetrics) recordPeek() {
	m.peeks.Inc()
}

// recordOverwrite increments the overwrite counter.
func (m *bufferMetrics) recordOverwrite() {
	m.overwrites.Inc()
}

// recordDrop increments the drop counter.
func (m *bufferMetrics) recordDrop() {
	m.drops.Inc()
}

// updateLen sets the current buffer length and utilization.
func (m *bufferMetrics) updateLen(length, capacity int) {
	m.length.Set(float64(length))
	if capacity > 0 {
		m.utilization.Set(float64(length) / float64(capacity))
	} else {
		m.utilization.Set(0)
	}
}
