// Package metric provides the Prometheus integration layer for ContainerKit.
//
// # Overview
//
// A MetricsRegistry wraps a dedicated prometheus.Registry and tracks which
// container registered which metric, so duplicate registrations fail with a
// classified error instead of a Prometheus panic. The buffer and kvmap
// packages register their per-container counters and gauges through this
// registry when the WithMetrics option is used.
//
// # Quick Start
//
//	registry := metric.NewMetricsRegistry()
//
//	buf, err := buffer.NewRing[int](64,
//	    buffer.WithMetrics[int](registry, "input_history"),
//	)
//
// Expose metrics on an existing mux:
//
//	mux.Handle("/metrics", registry.Handler())
//
// or run a standalone server:
//
//	srv := metric.NewServer(9090, "/metrics", registry)
//	go srv.Start()
//	defer srv.Stop()
package metric
