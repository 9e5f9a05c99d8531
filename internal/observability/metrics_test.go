package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.ObserveAPI("POST", "/input_transit", "200", time.Millisecond)
	m.ApiInflightInc()
	m.ApiInflightDec()
	m.ObserveChartIngest("success", 2, 1, 1, time.Millisecond)
	m.IncWebhookReceived()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusNotFound)
	}
}

func TestObserveChartIngestCountsItemsOnSuccessOnly(t *testing.T) {
	m := NewMetrics()

	m.ObserveChartIngest("success", 2, 1, 1, 10*time.Millisecond)
	m.ObserveChartIngest("error", 5, 5, 0, 10*time.Millisecond)

	if got := testutil.ToFloat64(m.chartItems.WithLabelValues("position")); got != 2 {
		t.Fatalf("positions: got=%v want=2", got)
	}
	if got := testutil.ToFloat64(m.edgesCreated); got != 1 {
		t.Fatalf("edges: got=%v want=1", got)
	}
	if got := testutil.ToFloat64(m.chartsIngested.WithLabelValues("error")); got != 1 {
		t.Fatalf("errors: got=%v want=1", got)
	}
}

func TestHandlerExposesCollectors(t *testing.T) {
	m := NewMetrics()
	m.IncWebhookReceived()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "astro_webhooks_received_total 1") {
		t.Fatalf("webhook counter missing from exposition")
	}
}
