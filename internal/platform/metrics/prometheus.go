package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsManager holds the catalog's Prometheus collectors.
// A nil *MetricsManager is valid and records nothing.
type MetricsManager struct {
	Registry *prometheus.Registry

	HTTPRequestsTotal  *prometheus.CounterVec
	HTTPRequestLatency *prometheus.HistogramVec
	StoreFetchErrors   *prometheus.CounterVec
	FacetDegradedTotal *prometheus.CounterVec
	ContactInquiries   *prometheus.CounterVec
}

// NewMetricsManager creates and registers the collectors under namespace.
func NewMetricsManager(namespace string) *MetricsManager {
	registry := prometheus.NewRegistry()

	httpRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	httpLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Latency of HTTP requests by method and route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	storeErrors := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "store_fetch_errors_total",
		Help:      "Content store reads that failed, by fetch.",
	}, []string{"fetch"})

	facetDegraded := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "facet_degraded_total",
		Help:      "Facet option lists served empty because their fetch failed.",
	}, []string{"facet"})

	inquiries := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "contact_inquiries_total",
		Help:      "Contact form submissions by outcome.",
	}, []string{"outcome"})

	registry.MustRegister(
		httpRequests,
		httpLatency,
		storeErrors,
		facetDegraded,
		inquiries,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &MetricsManager{
		Registry:           registry,
		HTTPRequestsTotal:  httpRequests,
		HTTPRequestLatency: httpLatency,
		StoreFetchErrors:   storeErrors,
		FacetDegradedTotal: facetDegraded,
		ContactInquiries:   inquiries,
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *MetricsManager) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

func (m *MetricsManager) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestLatency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *MetricsManager) StoreFetchFailed(fetch string) {
	if m == nil {
		return
	}
	m.StoreFetchErrors.WithLabelValues(fetch).Inc()
}

func (m *MetricsManager) FacetDegraded(facet string) {
	if m == nil {
		return
	}
	m.FacetDegradedTotal.WithLabelValues(facet).Inc()
}

func (m *MetricsManager) InquiryHandled(outcome string) {
	if m == nil {
		return
	}
	m.ContactInquiries.WithLabelValues(outcome).Inc()
}
