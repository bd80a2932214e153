package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the collectors exported on /metrics.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	cacheRequests *prometheus.CounterVec
	requests      *prometheus.CounterVec
	stepDuration  *prometheus.HistogramVec
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		cacheRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "notime",
			Name:      "cache_requests_total",
			Help:      "Memoized step lookups by namespace and result (hit or miss).",
		}, []string{"namespace", "result"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "notime",
			Name:      "requests_total",
			Help:      "Summarize requests by URL kind and outcome.",
		}, []string{"kind", "outcome"}),
		stepDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "notime",
			Name:      "external_call_duration_seconds",
			Help:      "Duration of calls to external tools and services.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12),
		}, []string{"step"}),
	}
	reg.MustRegister(m.cacheRequests, m.requests, m.stepDuration)
	return m
}

func (m *Metrics) CacheHit(namespace string) {
	if m == nil {
		return
	}
	m.cacheRequests.WithLabelValues(namespace, "hit").Inc()
}

func (m *Metrics) CacheMiss(namespace string) {
	if m == nil {
		return
	}
	m.cacheRequests.WithLabelValues(namespace, "miss").Inc()
}

// Request records the outcome of one summarize request.
func (m *Metrics) Request(kind, outcome string) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(kind, outcome).Inc()
}

// ObserveStep records how long an external step took, starting at start.
func (m *Metrics) ObserveStep(step string, start time.Time) {
	if m == nil {
		return
	}
	m.stepDuration.WithLabelValues(step).Observe(time.Since(start).Seconds())
}
