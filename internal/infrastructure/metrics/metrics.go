package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "barberledger"

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Register metrics
	RegisterOperations *prometheus.CounterVec

	// Report metrics
	ReportsGenerated *prometheus.CounterVec

	// Exchange rate metrics
	FXFetches       *prometheus.CounterVec
	FXFetchDuration prometheus.Histogram

	// API metrics
	HTTPRequests     *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
	HTTPInFlight     prometheus.Gauge
	RateLimitHits    prometheus.Counter
	IdempotentReplay prometheus.Counter

	// Event metrics
	EventsPublished *prometheus.CounterVec
}

// New creates all metrics and registers them with reg. A nil reg uses the
// default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)

	return &Metrics{
		RegisterOperations: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "register_operations_total",
				Help:      "Register mutations by operation and outcome",
			},
			[]string{"operation", "status"},
		),

		ReportsGenerated: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "reports_generated_total",
				Help:      "Reports built by kind",
			},
			[]string{"kind"},
		),

		FXFetches: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "fx_fetches_total",
				Help:      "Exchange rate fetches by outcome",
			},
			[]string{"status"},
		),
		FXFetchDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fx_fetch_duration_seconds",
			Help:      "Duration of exchange rate fetches, retries included",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		}),

		HTTPRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		HTTPInFlight: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Number of HTTP requests currently being processed",
		}),
		RateLimitHits: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limit_hits_total",
			Help:      "Requests rejected by the rate limiter",
		}),
		IdempotentReplay: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "idempotent_replays_total",
			Help:      "Responses served from the idempotency store",
		}),

		EventsPublished: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "events_published_total",
				Help:      "Register events handed to the publisher by type and outcome",
			},
			[]string{"event_type", "status"},
		),
	}
}

// RegisterOperation counts a register mutation.
func (m *Metrics) RegisterOperation(operation, status string) {
	m.RegisterOperations.WithLabelValues(operation, status).Inc()
}

// ReportGenerated counts a built report.
func (m *Metrics) ReportGenerated(kind string) {
	m.ReportsGenerated.WithLabelValues(kind).Inc()
}

// FXFetch records one exchange rate fetch.
func (m *Metrics) FXFetch(status string, d time.Duration) {
	m.FXFetches.WithLabelValues(status).Inc()
	m.FXFetchDuration.Observe(d.Seconds())
}

// EventPublished counts a publish attempt.
func (m *Metrics) EventPublished(eventType, status string) {
	m.EventsPublished.WithLabelValues(eventType, status).Inc()
}
