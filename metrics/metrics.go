// Package metrics exposes Prometheus counters for the sentiment pipeline.
package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "savoriq"

// Classification outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeFallback = "fallback"
	OutcomeNoSignal = "no_signal"
	OutcomeError    = "error"
	OutcomeQuota    = "quota_exhausted"
)

var (
	classifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sentiment_classifications_total",
			Help:      "Review classifications by classifier and outcome",
		},
		[]string{"classifier", "outcome"},
	)

	briefingCacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "briefing_cache_lookups_total",
			Help:      "Manager briefing cache lookups by result",
		},
		[]string{"result"},
	)

	llmRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "llm_requests_total",
			Help:      "Text generation calls by purpose and outcome",
		},
		[]string{"purpose", "outcome"},
	)

	llmLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "llm_request_duration_seconds",
			Help:      "Text generation call latency",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30},
		},
		[]string{"purpose"},
	)

	httpRequests = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "API request latency by route and status",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	registerOnce sync.Once
)

// Register adds all collectors to reg. Safe to call more than once.
func Register(reg prometheus.Registerer) {
	registerOnce.Do(func() {
		reg.MustRegister(classifications, briefingCacheLookups, llmRequests, llmLatency, httpRequests)
	})
}

func RecordClassification(classifier, outcome string) {
	classifications.WithLabelValues(classifier, outcome).Inc()
}

func RecordBriefingCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	briefingCacheLookups.WithLabelValues(result).Inc()
}

func RecordLLMRequest(purpose, outcome string, d time.Duration) {
	llmRequests.WithLabelValues(purpose, outcome).Inc()
	llmLatency.WithLabelValues(purpose).Observe(d.Seconds())
}

// RecordHTTPRequest observes one API request. route is the matched route
// pattern, not the raw path.
func RecordHTTPRequest(method, route string, status int, d time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}
