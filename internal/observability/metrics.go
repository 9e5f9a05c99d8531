package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	apiRequests      *prometheus.CounterVec
	apiLatency       *prometheus.HistogramVec
	apiInflight      prometheus.Gauge
	chartsIngested   *prometheus.CounterVec
	chartItems       *prometheus.CounterVec
	edgesCreated     prometheus.Counter
	chartWriteTime   *prometheus.HistogramVec
	webhooksReceived prometheus.Counter
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)
	return &Metrics{
		registry: reg,
		apiRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "astro_api_requests_total",
			Help: "Total API requests by method/route/status.",
		}, []string{"method", "route", "status"}),
		apiLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "astro_api_request_duration_seconds",
			Help:    "API request latency in seconds by method/route/status.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		}, []string{"method", "route", "status"}),
		apiInflight: f.NewGauge(prometheus.GaugeOpts{
			Name: "astro_api_inflight_requests",
			Help: "In-flight API requests.",
		}),
		chartsIngested: f.NewCounterVec(prometheus.CounterOpts{
			Name: "astro_charts_ingested_total",
			Help: "Chart ingest attempts by status.",
		}, []string{"status"}),
		chartItems: f.NewCounterVec(prometheus.CounterOpts{
			Name: "astro_chart_items_total",
			Help: "Positions and aspects submitted in successfully stored charts.",
		}, []string{"kind"}),
		edgesCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "astro_aspect_edges_created_total",
			Help: "ASPECT relationships created in the graph store.",
		}),
		chartWriteTime: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "astro_chart_write_duration_seconds",
			Help:    "Graph write latency per chart by status.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		}, []string{"status"}),
		webhooksReceived: f.NewCounter(prometheus.CounterOpts{
			Name: "astro_webhooks_received_total",
			Help: "Payloads accepted by the no-op webhook receiver.",
		}),
	}
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) ObserveAPI(method, route, status string, dur time.Duration) {
	if m == nil {
		return
	}
	m.apiRequests.WithLabelValues(method, route, status).Inc()
	m.apiLatency.WithLabelValues(method, route, status).Observe(dur.Seconds())
}

func (m *Metrics) ApiInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Inc()
}

func (m *Metrics) ApiInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Dec()
}

func (m *Metrics) ObserveChartIngest(status string, positions, aspects, edges int, dur time.Duration) {
	if m == nil {
		return
	}
	m.chartsIngested.WithLabelValues(status).Inc()
	m.chartWriteTime.WithLabelValues(status).Observe(dur.Seconds())
	if status != "success" {
		return
	}
	m.chartItems.WithLabelValues("position").Add(float64(positions))
	m.chartItems.WithLabelValues("aspect").Add(float64(aspects))
	m.edgesCreated.Add(float64(edges))
}

func (m *Metrics) IncWebhookReceived() {
	if m == nil {
		return
	}
	m.webhooksReceived.Inc()
}
