package prometheus

import (
	"strconv"
	"time"

	"github.com/turtacn/EatTrue/internal/domain/risk"
)

// AppMetrics holds every metric EatTrue exports.
type AppMetrics struct {
	// HTTP
	HTTPRequestsTotal   CounterVec
	HTTPRequestDuration HistogramVec
	HTTPActiveRequests  GaugeVec

	// Scanning
	ScansTotal             CounterVec
	ScanDuration           HistogramVec
	ScanScore              HistogramVec
	UnknownIngredients     CounterVec
	ScanWarningsTotal      CounterVec
	ScanFailuresTotal      CounterVec
	EventsPublishedTotal   CounterVec
	EventsConsumedTotal    CounterVec
	ConsumedOverallScore   HistogramVec
	StoreOperationDuration HistogramVec

	// Health
	HealthCheckStatus GaugeVec
}

// Default buckets.
var (
	DefaultHTTPDurationBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5}
	DefaultScanDurationBuckets = []float64{.0001, .0005, .001, .005, .01, .05, .1, .5}
	DefaultScoreBuckets        = []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}
	DefaultStoreBuckets        = []float64{.0005, .001, .005, .01, .025, .05, .1, .25, 1}
)

// NewAppMetrics registers all metrics on collector.
func NewAppMetrics(collector MetricsCollector) *AppMetrics {
	m := &AppMetrics{}

	m.HTTPRequestsTotal = collector.RegisterCounter("http_requests_total", "Total HTTP requests", "method", "route", "status_code")
	m.HTTPRequestDuration = collector.RegisterHistogram("http_request_duration_seconds", "HTTP request duration", DefaultHTTPDurationBuckets, "method", "route")
	m.HTTPActiveRequests = collector.RegisterGauge("http_active_requests", "In-flight HTTP requests", "method")

	m.ScansTotal = collector.RegisterCounter("scans_total", "Completed scans", "source", "badge")
	m.ScanDuration = collector.RegisterHistogram("scan_duration_seconds", "Time to normalize, score and persist one scan", DefaultScanDurationBuckets, "source")
	m.ScanScore = collector.RegisterHistogram("scan_score", "Scan scores by component", DefaultScoreBuckets, "component")
	m.UnknownIngredients = collector.RegisterCounter("unknown_ingredients_total", "Ingredient tokens that matched no catalog record", "source")
	m.ScanWarningsTotal = collector.RegisterCounter("scan_warnings_total", "Personalized warnings issued", "source")
	m.ScanFailuresTotal = collector.RegisterCounter("scan_failures_total", "Scans that returned an error", "source", "code")
	m.EventsPublishedTotal = collector.RegisterCounter("events_published_total", "Scan events handed to the broker", "result")
	m.EventsConsumedTotal = collector.RegisterCounter("events_consumed_total", "Scan events consumed by the worker", "trend", "badge")
	m.ConsumedOverallScore = collector.RegisterHistogram("consumed_overall_score", "Overall score of consumed scan events", DefaultScoreBuckets)
	m.StoreOperationDuration = collector.RegisterHistogram("store_operation_duration_seconds", "History and profile store latency", DefaultStoreBuckets, "backend", "operation")

	m.HealthCheckStatus = collector.RegisterGauge("health_check_status", "Health check status (1=up, 0=down)", "component")

	return m
}

// TrackActiveRequest increments the in-flight gauge and returns the matching
// decrement.
func (m *AppMetrics) TrackActiveRequest(method string) func() {
	g := m.HTTPActiveRequests.WithLabelValues(method)
	g.Inc()
	return g.Dec
}

// RecordHTTPRequest records one served request.
func (m *AppMetrics) RecordHTTPRequest(method, route string, statusCode int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveScan records a completed analysis.
func (m *AppMetrics) ObserveScan(source string, res *risk.AnalysisResult, elapsed time.Duration) {
	m.ScansTotal.WithLabelValues(source, string(res.Badge)).Inc()
	m.ScanDuration.WithLabelValues(source).Observe(elapsed.Seconds())

	m.ScanScore.WithLabelValues("clean").Observe(float64(res.CleanScore))
	m.ScanScore.WithLabelValues("packaging").Observe(float64(res.PackagingScore))
	m.ScanScore.WithLabelValues("regulatory").Observe(float64(res.RegulatoryScore))
	m.ScanScore.WithLabelValues("temporal").Observe(float64(res.TemporalScore))
	m.ScanScore.WithLabelValues("overall").Observe(float64(res.OverallScore))

	if n := res.UnknownCount(); n > 0 {
		m.UnknownIngredients.WithLabelValues(source).Add(float64(n))
	}
	if n := len(res.Warnings); n > 0 {
		m.ScanWarningsTotal.WithLabelValues(source).Add(float64(n))
	}
}

// ObserveScanFailure counts a scan that ended with an error code.
func (m *AppMetrics) ObserveScanFailure(source, code string) {
	m.ScanFailuresTotal.WithLabelValues(source, code).Inc()
}

// ObservePublish counts a publish attempt.
func (m *AppMetrics) ObservePublish(err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	m.EventsPublishedTotal.WithLabelValues(result).Inc()
}

// ObserveConsumedScan records a scan event seen by the worker.
func (m *AppMetrics) ObserveConsumedScan(trend string, overall int) {
	m.EventsConsumedTotal.WithLabelValues(trend, string(risk.BadgeFor(overall))).Inc()
	m.ConsumedOverallScore.WithLabelValues().Observe(float64(overall))
}

// StoreHistogram returns the latency histogram of one store operation.
func (m *AppMetrics) StoreHistogram(backend, operation string) Histogram {
	return m.StoreOperationDuration.WithLabelValues(backend, operation)
}

// SetHealth sets the health gauge for component.
func (m *AppMetrics) SetHealth(component string, up bool) {
	v := 0.0
	if up {
		v = 1
	}
	m.HealthCheckStatus.WithLabelValues(component).Set(v)
}

//Personal.AI order the ending
