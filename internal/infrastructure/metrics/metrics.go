// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "labpool"

// Verification outcomes.
const (
	resultSuccess  = "success"
	resultMismatch = "signature_mismatch"
	resultConflict = "conflict"
)

// Metrics owns a registry so tests can build isolated instances.
type Metrics struct {
	registry *prometheus.Registry

	httpInFlight        prometheus.Gauge
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	ordersCreated      prometheus.Counter
	verifications      *prometheus.CounterVec
	donatedMinorUnits  prometheus.Counter
	poolTargetsReached prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_in_flight_requests",
			Help:      "In-flight HTTP requests.",
		}),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "path", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latencies in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		ordersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "donation_orders_created_total",
			Help:      "Payment orders created for donations.",
		}),
		verifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "donation_verifications_total",
			Help:      "Payment verifications by outcome.",
		}, []string{"result"}),
		donatedMinorUnits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "donation_amount_minor_units_total",
			Help:      "Sum of successful donations in minor currency units.",
		}),
		poolTargetsReached: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pool_targets_reached_total",
			Help:      "Pools that reached their funding target.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpInFlight,
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.ordersCreated,
		m.verifications,
		m.donatedMinorUnits,
		m.poolTargetsReached,
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) RequestStarted() { m.httpInFlight.Inc() }

// RequestFinished records one served request. path is the route template,
// not the raw URL, to keep label cardinality bounded.
func (m *Metrics) RequestFinished(method, path, status string, seconds float64) {
	m.httpInFlight.Dec()
	m.httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.httpRequestDuration.WithLabelValues(method, path, status).Observe(seconds)
}

func (m *Metrics) OrderCreated() { m.ordersCreated.Inc() }

func (m *Metrics) SignatureMismatch() {
	m.verifications.WithLabelValues(resultMismatch).Inc()
}

func (m *Metrics) VerificationConflict() {
	m.verifications.WithLabelValues(resultConflict).Inc()
}

func (m *Metrics) DonationSucceeded(amount int64, targetReached bool) {
	m.verifications.WithLabelValues(resultSuccess).Inc()
	m.donatedMinorUnits.Add(float64(amount))
	if targetReached {
		m.poolTargetsReached.Inc()
	}
}
