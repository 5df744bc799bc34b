package prometheus

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/EatTrue/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/EatTrue/pkg/errors"
)

func newTestCollector(t *testing.T) MetricsCollector {
	t.Helper()
	c, err := NewMetricsCollector(CollectorConfig{Namespace: "test", Subsystem: "unit"}, logging.NewNopLogger())
	require.NoError(t, err)
	return c
}

func scrapeMetrics(t *testing.T, collector MetricsCollector) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	collector.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestNewMetricsCollector_EmptyNamespace(t *testing.T) {
	_, err := NewMetricsCollector(CollectorConfig{Subsystem: "unit"}, logging.NewNopLogger())
	assert.True(t, errors.IsCode(err, errors.ErrCodeValidation))
}

func TestNewMetricsCollector_WithProcessAndGoMetrics(t *testing.T) {
	c, err := NewMetricsCollector(CollectorConfig{
		Namespace:            "test",
		EnableProcessMetrics: true,
		EnableGoMetrics:      true,
	}, logging.NewNopLogger())
	require.NoError(t, err)

	output := scrapeMetrics(t, c)
	assert.Contains(t, output, "go_goroutines")
}

func TestRegisterCounter_WithLabels(t *testing.T) {
	c := newTestCollector(t)
	c.RegisterCounter("http_requests", "HTTP requests", "method").WithLabelValues("GET").Add(5)

	assert.Contains(t, scrapeMetrics(t, c), `test_unit_http_requests{method="GET"} 5`)
}

func TestRegisterCounter_DuplicateSharesVector(t *testing.T) {
	c := newTestCollector(t)
	c.RegisterCounter("dup_counter", "help").WithLabelValues().Inc()
	c.RegisterCounter("dup_counter", "help").WithLabelValues().Inc()

	assert.Contains(t, scrapeMetrics(t, c), "test_unit_dup_counter 2")
}

func TestRegisterGauge(t *testing.T) {
	c := newTestCollector(t)
	g := c.RegisterGauge("active_users", "Active users")
	g.WithLabelValues().Set(10)
	g.WithLabelValues().Dec()

	assert.Contains(t, scrapeMetrics(t, c), "test_unit_active_users 9")
}

func TestRegisterHistogram_DefaultBuckets(t *testing.T) {
	c := newTestCollector(t)
	c.RegisterHistogram("latency_seconds", "Latency", nil).WithLabelValues().Observe(0.1)

	output := scrapeMetrics(t, c)
	assert.Contains(t, output, `test_unit_latency_seconds_bucket{le="0.1"} 1`)
	assert.Contains(t, output, "test_unit_latency_seconds_count 1")
}

func TestTimer_ObservesDuration(t *testing.T) {
	c := newTestCollector(t)
	clock := clockwork.NewFakeClock()
	timer := NewTimer(c.RegisterHistogram("timer_seconds", "Timer", nil).WithLabelValues(), clock)
	clock.Advance(250 * time.Millisecond)

	assert.Equal(t, 250*time.Millisecond, timer.ObserveDuration())
	output := scrapeMetrics(t, c)
	assert.Contains(t, output, "test_unit_timer_seconds_count 1")
	assert.Contains(t, output, "test_unit_timer_seconds_sum 0.25")
}

func TestConcurrentRegistration(t *testing.T) {
	c := newTestCollector(t)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.RegisterCounter("concurrent_metric", "help", "id").WithLabelValues("1").Inc()
		}()
	}
	wg.Wait()

	assert.Contains(t, scrapeMetrics(t, c), `test_unit_concurrent_metric{id="1"} 50`)
}

func TestTypeConflictFallsBackToNoop(t *testing.T) {
	c := newTestCollector(t)
	c.RegisterCounter("conflict", "help").WithLabelValues().Inc()

	gauge := c.RegisterGauge("conflict", "help")
	assert.NotPanics(t, func() { gauge.WithLabelValues().Set(10) })
	assert.Contains(t, scrapeMetrics(t, c), "# TYPE test_unit_conflict counter")
}

func TestMustRegisterAndUnregister(t *testing.T) {
	c := newTestCollector(t)
	pc := prometheus.NewCounter(prometheus.CounterOpts{Name: "custom_collector"})
	c.MustRegister(pc)
	pc.Inc()
	assert.Contains(t, scrapeMetrics(t, c), "custom_collector")

	assert.True(t, c.Unregister(pc))
	assert.NotContains(t, scrapeMetrics(t, c), "custom_collector")
}

//Personal.AI order the ending
