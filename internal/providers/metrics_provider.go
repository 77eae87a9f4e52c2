package providers

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"wordgate/internal/storage"
	"wordgate/internal/structures"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	IncGateDecision(result, reason string)
	IncReviewOutcome(outcome, kind string)
	ObserveSelectionDuration(duration time.Duration)
	ObservePersistenceDuration(duration time.Duration)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	gateDecisions       *prometheus.CounterVec
	escapeValveTotal    prometheus.Counter
	reviewOutcomes      *prometheus.CounterVec
	selectionDuration   prometheus.Histogram
	persistenceDuration prometheus.Histogram
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) IncGateDecision(result, reason string) {
	m.gateDecisions.WithLabelValues(result, reason).Inc()
	// The escape valve must stay auditable on its own, not buried in labels.
	if reason == "escape_valve" {
		m.escapeValveTotal.Inc()
	}
}

func (m *MetricsProvider) IncReviewOutcome(outcome, kind string) {
	m.reviewOutcomes.WithLabelValues(outcome, kind).Inc()
}

func (m *MetricsProvider) ObserveSelectionDuration(duration time.Duration) {
	m.selectionDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config, cards storage.CardRepositoryInterface, sessions storage.SessionRepositoryInterface) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	m := &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "wordgate_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "wordgate_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "wordgate_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "wordgate_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		gateDecisions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "wordgate_gate_decisions_total",
			Help: "Gate decisions by result and reason",
		}, []string{"result", "reason"}),

		escapeValveTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "wordgate_escape_valve_total",
			Help: "Launches allowed because no eligible item remained",
		}),

		reviewOutcomes: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "wordgate_reviews_total",
			Help: "Completed reviews by outcome and card kind",
		}, []string{"outcome", "kind"}),

		selectionDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "wordgate_selection_duration_seconds",
			Help:    "Duration of item selection in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "wordgate_persistence_duration_seconds",
			Help:    "Duration of review persistence operations in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "wordgate_cards_total",
		Help: "Total number of vocabulary cards",
	}, func() float64 {
		count, err := cards.Count()
		if err != nil {
			return -1
		}
		return float64(count)
	})

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "wordgate_active_sessions",
		Help: "Currently active unlock sessions",
	}, func() float64 {
		active, err := sessions.ListActive()
		if err != nil {
			return -1
		}
		return float64(len(active))
	})

	return m
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                  {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration)  {}
func (n *noopMetrics) IncCacheHits()                                     {}
func (n *noopMetrics) IncCacheMisses()                                   {}
func (n *noopMetrics) IncGateDecision(_, _ string)                       {}
func (n *noopMetrics) IncReviewOutcome(_, _ string)                      {}
func (n *noopMetrics) ObserveSelectionDuration(_ time.Duration)          {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)        {}
