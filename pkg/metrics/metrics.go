// Package metrics exposes Prometheus instrumentation for the HTTP surface and
// domain events.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/JaimeStill/ems-backend/pkg/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds collectors registered on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inflight prometheus.Gauge

	TelemetryIngested prometheus.Counter
	AlertsRaised      *prometheus.CounterVec
	StreamClients     prometheus.Gauge
}

// New creates a Metrics set under namespace.
func New(namespace string) *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method and status code.",
		}, []string{"method", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
		inflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "HTTP requests currently being served.",
		}),
		TelemetryIngested: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "telemetry_readings_total",
			Help:      "Telemetry readings ingested.",
		}),
		AlertsRaised: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alerts_raised_total",
			Help:      "Alerts raised by severity.",
		}, []string{"severity"}),
		StreamClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "stream_clients",
			Help:      "Connected live telemetry websocket clients.",
		}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests,
		m.duration,
		m.inflight,
		m.TelemetryIngested,
		m.AlertsRaised,
		m.StreamClients,
	)

	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records request count, latency, and in-flight requests.
func (m *Metrics) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			m.inflight.Inc()
			defer m.inflight.Dec()

			start := time.Now()
			sw := middleware.NewStatusWriter(w)

			next.ServeHTTP(sw, r)

			m.requests.WithLabelValues(r.Method, strconv.Itoa(sw.Status)).Inc()
			m.duration.WithLabelValues(r.Method).Observe(time.Since(start).Seconds())
		})
	}
}
