// Package metrics exposes Prometheus instrumentation for the suggestion
// pipeline. Counters are registered on the default registry and served via
// Handler on the HTTP API's /metrics endpoint.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "refassign"

var (
	suggestionsGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "suggestions_generated_total",
		Help:      "Number of suggestions generated and persisted",
	})

	suggestionsAccepted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "suggestions_accepted_total",
		Help:      "Number of suggestions accepted into assignments",
	})

	suggestionsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "suggestions_rejected_total",
		Help:      "Number of suggestions rejected",
	})

	suggestionsExpired = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "suggestions_expired_total",
		Help:      "Number of pending suggestions swept as expired",
	})

	conflictChecks = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "conflict_checks_total",
		Help:      "Number of conflict checks performed",
	})

	conflictsDetected = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "conflicts_detected_total",
		Help:      "Number of conflict checks that found a hard conflict",
	})

	generationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "generation_failures_total",
		Help:      "Number of games skipped during batch generation due to errors",
	})

	generationLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "generation_duration_seconds",
		Help:      "Time taken to generate suggestions for one game",
		Buckets:   prometheus.DefBuckets,
	})
)

// RecordSuggestionsGenerated adds to the generated counter
func RecordSuggestionsGenerated(count int) {
	suggestionsGenerated.Add(float64(count))
}

// RecordSuggestionAccepted increments the accepted counter
func RecordSuggestionAccepted() {
	suggestionsAccepted.Inc()
}

// RecordSuggestionRejected increments the rejected counter
func RecordSuggestionRejected() {
	suggestionsRejected.Inc()
}

// RecordSuggestionsExpired adds to the expired counter
func RecordSuggestionsExpired(count int64) {
	suggestionsExpired.Add(float64(count))
}

// RecordConflictCheck counts a conflict check and whether it found a conflict
func RecordConflictCheck(hasConflict bool) {
	conflictChecks.Inc()
	if hasConflict {
		conflictsDetected.Inc()
	}
}

// RecordGenerationFailure counts a game skipped during batch generation
func RecordGenerationFailure() {
	generationFailures.Inc()
}

// RecordGenerationDuration records how long one game's generation took
func RecordGenerationDuration(seconds float64) {
	generationLatency.Observe(seconds)
}

// Handler returns the HTTP handler serving the metrics endpoint
func Handler() http.Handler {
	return promhttp.Handler()
}
