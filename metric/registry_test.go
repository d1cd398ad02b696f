package metric

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/containerkit/errors"
)

func TestRegisterCounter(t *testing.T) {
	registry := NewMetricsRegistry()

	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "containerkit",
		Subsystem: "test",
		Name:      "ops_total",
		Help:      "Test counter",
	})

	err := registry.RegisterCounter("test_component", "ops", counter)
	require.NoError(t, err)

	// Second registration under the same key must fail with an invalid error
	other := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "containerkit",
		Subsystem: "test",
		Name:      "other_total",
		Help:      "Other counter",
	})
	err = registry.RegisterCounter("test_component", "ops", other)
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))
}

func TestRegisterGaugeAndHistogram(t *testing.T) {
	registry := NewMetricsRegistry()

	gauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "containerkit",
		Subsystem: "test",
		Name:      "size",
		Help:      "Test gauge",
	})
	require.NoError(t, registry.RegisterGauge("test_component", "size", gauge))

	histogram := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "containerkit",
		Subsystem: "test",
		Name:      "latency_seconds",
		Help:      "Test histogram",
	})
	require.NoError(t, registry.RegisterHistogram("test_component", "latency", histogram))
}

func TestRegisterPrometheusConflict(t *testing.T) {
	registry := NewMetricsRegistry()

	opts := prometheus.CounterOpts{
		Namespace: "containerkit",
		Subsystem: "test",
		Name:      "dupe_total",
		Help:      "Duplicate counter",
	}

	require.NoError(t, registry.RegisterCounter("a", "dupe", prometheus.NewCounter(opts)))

	// Same fully-qualified prometheus name under a different registry key
	err := registry.RegisterCounter("b", "dupe", prometheus.NewCounter(opts))
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))
}

func TestUnregister(t *testing.T) {
	registry := NewMetricsRegistry()

	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "containerkit",
		Subsystem: "test",
		Name:      "gone_total",
		Help:      "Counter to remove",
	})
	require.NoError(t, registry.RegisterCounter("test_component", "gone", counter))

	assert.True(t, registry.Unregister("test_component", "gone"))
	assert.False(t, registry.Unregister("test_component", "gone"))

	// Re-registration after unregister should succeed
	require.NoError(t, registry.RegisterCounter("test_component", "gone", counter))
}

func TestHandlerServesMetrics(t *testing.T) {
	registry := NewMetricsRegistry()

	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "containerkit",
		Subsystem: "test",
		Name:      "served_total",
		Help:      "Counter visible over HTTP",
	})
	require.NoError(t, registry.RegisterCounter("test_component", "served", counter))
	counter.Inc()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	registry.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "containerkit_test_served_total")
}
