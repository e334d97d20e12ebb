// Package metrics exposes Prometheus collectors for the alert load and the
// dashboard HTTP surface.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Fetch outcome label values.
const (
	OutcomeLoaded = "loaded"
	OutcomeEmpty  = "empty"
	OutcomeFailed = "failed"
)

// Metrics holds the collectors of one process.
type Metrics struct {
	gatherer prometheus.Gatherer

	fetchDuration    prometheus.Histogram
	fetchOutcomes    *prometheus.CounterVec
	loadedAlerts     prometheus.Gauge
	viewComputations *prometheus.CounterVec
	httpRequests     *prometheus.CounterVec
}

// New registers the collectors on reg. Passing a fresh prometheus.Registry
// keeps tests isolated from the global registry.
func New(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		gatherer: reg,
		fetchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "alertdash_fetch_duration_seconds",
			Help:    "Duration of the alert query fetch.",
			Buckets: prometheus.DefBuckets,
		}),
		fetchOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "alertdash_fetch_total",
			Help: "Alert loads by outcome.",
		}, []string{"outcome"}),
		loadedAlerts: factory.NewGauge(prometheus.GaugeOpts{
			Name: "alertdash_loaded_alerts",
			Help: "Number of alerts held by the current snapshot.",
		}),
		viewComputations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "alertdash_view_computations_total",
			Help: "Computed views by mode.",
		}, []string{"mode"}),
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "alertdash_http_requests_total",
			Help: "HTTP requests by route and status code.",
		}, []string{"route", "status"}),
	}
}

// ObserveFetch records one load.
func (m *Metrics) ObserveFetch(elapsed time.Duration, outcome string, alerts int) {
	if m == nil {
		return
	}
	m.fetchDuration.Observe(elapsed.Seconds())
	m.fetchOutcomes.WithLabelValues(outcome).Inc()
	m.loadedAlerts.Set(float64(alerts))
}

// ObserveView counts a computed view.
func (m *Metrics) ObserveView(mode string) {
	if m == nil {
		return
	}
	m.viewComputations.WithLabelValues(mode).Inc()
}

// ObserveRequest counts a served HTTP request.
func (m *Metrics) ObserveRequest(route string, status int) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
}

// Handler serves the registered collectors in the exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
