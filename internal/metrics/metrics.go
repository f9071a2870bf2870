// Package metrics exposes Prometheus collectors for upstream fetches and the
// HTTP dashboard.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	defaultNamespace = "skill_heatmap"
)

// Option applies a configuration option to the Manager.
type Option func(*Manager)

// WithNamespace sets the namespace for all metrics.
func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

// WithHistogramBuckets sets custom histogram buckets for latency metrics.
func WithHistogramBuckets(buckets []float64) Option {
	return func(m *Manager) {
		if len(buckets) > 0 {
			m.histogramBuckets = buckets
		}
	}
}

// WithRegistry sets the registry the collectors are registered on.
func WithRegistry(registry *prometheus.Registry) Option {
	return func(m *Manager) {
		if registry != nil {
			m.registry = registry
		}
	}
}

// Manager owns the collectors. A nil *Manager is valid and records nothing.
type Manager struct {
	namespace        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	upstreamRequests *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	httpRequests     *prometheus.CounterVec
	selected         prometheus.Gauge
}

// NewManager creates a manager on a dedicated registry unless one is supplied.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        defaultNamespace,
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.NewRegistry(),
	}

	for _, opt := range opts {
		opt(m)
	}

	auto := promauto.With(m.registry)

	m.upstreamRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "upstream_requests_total",
		Help:      "Requests made to the talent API by endpoint and result",
	}, []string{"endpoint", "result"})

	m.upstreamDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Latency of talent API requests",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "http_requests_total",
		Help:      "Dashboard HTTP requests by route and status code",
	}, []string{"route", "code"})

	m.selected = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "selected_candidates",
		Help:      "Number of candidates currently selected for comparison",
	})

	return m
}

// ObserveUpstream records one talent API request.
func (m *Manager) ObserveUpstream(endpoint, result string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.upstreamRequests.WithLabelValues(endpoint, result).Inc()
	m.upstreamDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// ObserveHTTP records one dashboard request.
func (m *Manager) ObserveHTTP(route string, code int) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, strconv.Itoa(code)).Inc()
}

// SetSelected reports the current size of the selection.
func (m *Manager) SetSelected(n int) {
	if m == nil {
		return
	}
	m.selected.Set(float64(n))
}

// Registry returns the registry the collectors live on.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Manager) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
