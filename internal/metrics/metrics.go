package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles the service's prometheus metrics.
type Collector struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	ReportsIngestedTotal   *prometheus.CounterVec
	ReportsDeletedTotal    prometheus.Counter
	AnalysisFallbacksTotal prometheus.Counter
	StorageUploadFailures  prometheus.Counter
}

// NewCollector registers the metrics on the default registerer.
func NewCollector(serviceName string) *Collector {
	return NewCollectorWith(serviceName, prometheus.DefaultRegisterer)
}

// NewCollectorWith registers the metrics on reg. Tests pass a fresh
// registry so repeated construction does not panic.
func NewCollectorWith(serviceName string, reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method, path, and status code.",
		}, []string{"method", "path", "status"}),

		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: serviceName,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency distribution.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"method", "path", "status"}),

		ReportsIngestedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "reports",
			Name:      "ingested_total",
			Help:      "Total reports ingested, by report type.",
		}, []string{"report_type"}),

		ReportsDeletedTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "reports",
			Name:      "deleted_total",
			Help:      "Total reports deleted.",
		}),

		AnalysisFallbacksTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "reports",
			Name:      "analysis_fallbacks_total",
			Help:      "Ingestions that persisted the fallback summary because analysis failed.",
		}),

		StorageUploadFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "reports",
			Name:      "storage_upload_failures_total",
			Help:      "Ingestions aborted because the object storage upload failed.",
		}),
	}
}

// Handler exposes the default registry for the /metrics route.
func Handler() http.Handler {
	return promhttp.Handler()
}
