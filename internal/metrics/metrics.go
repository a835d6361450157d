package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "region_http_requests_total",
		Help: "Total HTTP requests by method, route and status",
	}, []string{"method", "route", "status"})
	HTTPRequestDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "region_http_request_duration_ms",
		Help:    "HTTP request duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000},
	}, []string{"method", "route"})
	CacheHitsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "region_cache_hits_total",
		Help: "Total redis cache hits",
	}, []string{"kind"})
	CacheMissesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "region_cache_misses_total",
		Help: "Total redis cache misses",
	}, []string{"kind"})
	RegionEventsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "region_events_processed_total",
		Help: "Region change events handled by the worker, by type and result",
	}, []string{"type", "result"})
	FormSubmitsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "region_form_submits_total",
		Help: "Form submissions by form and outcome",
	}, []string{"form", "outcome"})
	EditorCommitsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "region_editor_commits_total",
		Help: "Boundary editor commits by mode",
	}, []string{"mode"})
)

// Cache kinds
const (
	KindRegionList  = "region_list"
	KindRegionStats = "region_stats"
)

func init() {
	prometheus.MustRegister(HTTPRequestsTotal)
	prometheus.MustRegister(HTTPRequestDurationMs)
	prometheus.MustRegister(CacheHitsTotal)
	prometheus.MustRegister(CacheMissesTotal)
	prometheus.MustRegister(RegionEventsTotal)
	prometheus.MustRegister(FormSubmitsTotal)
	prometheus.MustRegister(EditorCommitsTotal)
}

// Handler - обработчик /metrics
func Handler() http.Handler { return promhttp.Handler() }

// CacheLookup учитывает попадание или промах кеша
func CacheLookup(kind string, hit bool) {
	if hit {
		CacheHitsTotal.WithLabelValues(kind).Inc()
		return
	}
	CacheMissesTotal.WithLabelValues(kind).Inc()
}
