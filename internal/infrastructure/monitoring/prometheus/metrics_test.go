package prometheus

import (
	stderrors "errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/EatTrue/internal/domain/risk"
)

func newTestAppMetrics(t *testing.T) (*AppMetrics, MetricsCollector) {
	c := newTestCollector(t)
	return NewAppMetrics(c), c
}

func TestNewAppMetrics_AllMetricsRegistered(t *testing.T) {
	m, _ := newTestAppMetrics(t)
	require.NotNil(t, m)
	assert.NotNil(t, m.HTTPRequestsTotal)
	assert.NotNil(t, m.ScansTotal)
	assert.NotNil(t, m.ScanScore)
	assert.NotNil(t, m.EventsPublishedTotal)
	assert.NotNil(t, m.HealthCheckStatus)
}

func TestRecordHTTPRequest(t *testing.T) {
	m, c := newTestAppMetrics(t)
	m.RecordHTTPRequest("POST", "/api/v1/scans/text", 200, 30*time.Millisecond)

	output := scrapeMetrics(t, c)
	assert.Contains(t, output, `test_unit_http_requests_total{method="POST",route="/api/v1/scans/text",status_code="200"} 1`)
	assert.Contains(t, output, `test_unit_http_request_duration_seconds_count{method="POST",route="/api/v1/scans/text"} 1`)
}

func TestTrackActiveRequest(t *testing.T) {
	m, c := newTestAppMetrics(t)
	done := m.TrackActiveRequest("GET")
	assert.Contains(t, scrapeMetrics(t, c), `test_unit_http_active_requests{method="GET"} 1`)

	done()
	assert.Contains(t, scrapeMetrics(t, c), `test_unit_http_active_requests{method="GET"} 0`)
}

func TestObserveScan(t *testing.T) {
	m, c := newTestAppMetrics(t)
	res := &risk.AnalysisResult{
		CleanScore:      25,
		PackagingScore:  100,
		RegulatoryScore: 96,
		TemporalScore:   98,
		OverallScore:    69,
		Badge:           risk.BadgeGood,
		Warnings:        []string{"w1", "w2"},
		Findings: []risk.Finding{
			{SubstanceID: "sugar"},
			{SubstanceID: "unknown"},
		},
	}

	m.ObserveScan("barcode", res, 2*time.Millisecond)

	output := scrapeMetrics(t, c)
	assert.Contains(t, output, `test_unit_scans_total{badge="Good",source="barcode"} 1`)
	assert.Contains(t, output, `test_unit_scan_score_sum{component="overall"} 69`)
	assert.Contains(t, output, `test_unit_scan_score_bucket{component="clean",le="30"} 1`)
	assert.Contains(t, output, `test_unit_unknown_ingredients_total{source="barcode"} 1`)
	assert.Contains(t, output, `test_unit_scan_warnings_total{source="barcode"} 2`)
	assert.Contains(t, output, `test_unit_scan_duration_seconds_count{source="barcode"} 1`)
}

func TestObserveScan_NoUnknownsOrWarnings(t *testing.T) {
	m, c := newTestAppMetrics(t)
	m.ObserveScan("manual", risk.PerfectResult(), time.Millisecond)

	output := scrapeMetrics(t, c)
	assert.Contains(t, output, `test_unit_scans_total{badge="Excellent",source="manual"} 1`)
	assert.NotContains(t, output, `test_unit_unknown_ingredients_total{`)
	assert.NotContains(t, output, `test_unit_scan_warnings_total{`)
}

func TestObservePublishAndFailures(t *testing.T) {
	m, c := newTestAppMetrics(t)
	m.ObservePublish(nil)
	m.ObservePublish(stderrors.New("broker down"))
	m.ObserveScanFailure("manual", "SCN_001")

	output := scrapeMetrics(t, c)
	assert.Contains(t, output, `test_unit_events_published_total{result="success"} 1`)
	assert.Contains(t, output, `test_unit_events_published_total{result="failure"} 1`)
	assert.Contains(t, output, `test_unit_scan_failures_total{code="SCN_001",source="manual"} 1`)
}

func TestObserveConsumedScan(t *testing.T) {
	m, c := newTestAppMetrics(t)
	m.ObserveConsumedScan("Improving", 35)

	output := scrapeMetrics(t, c)
	assert.Contains(t, output, `test_unit_events_consumed_total{badge="Poor",trend="Improving"} 1`)
	assert.Contains(t, output, `test_unit_consumed_overall_score_sum 35`)
}

func TestStoreHistogramAndHealth(t *testing.T) {
	m, c := newTestAppMetrics(t)
	NewTimer(m.StoreHistogram("redis", "append"), nil).ObserveDuration()
	m.SetHealth("redis", true)
	m.SetHealth("kafka", false)

	output := scrapeMetrics(t, c)
	assert.Contains(t, output, `test_unit_store_operation_duration_seconds_count{backend="redis",operation="append"} 1`)
	assert.Contains(t, output, `test_unit_health_check_status{component="redis"} 1`)
	assert.Contains(t, output, `test_unit_health_check_status{component="kafka"} 0`)
}

func TestConcurrentMetricRecording(t *testing.T) {
	m, c := newTestAppMetrics(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.RecordHTTPRequest("GET", "/healthz", 200, time.Millisecond)
			}
		}()
	}
	wg.Wait()

	assert.Contains(t, scrapeMetrics(t, c), `test_unit_http_requests_total{method="GET",route="/healthz",status_code="200"} 1000`)
}

//Personal.AI order the ending
