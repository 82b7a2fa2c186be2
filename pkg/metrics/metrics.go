package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "ideaportal"

var (
	IdeaOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "idea_operations_total", Help: "Idea service operations by operation and outcome."},
		[]string{"operation", "outcome"},
	)
	DegradedReads = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "store_degraded_reads_total", Help: "Reads that failed and were served as an empty collection."},
		[]string{"collection"},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

// Outcome labels for IdeaOperations.
const (
	OutcomeOK          = "ok"
	OutcomeInvalid     = "invalid_input"
	OutcomeNotFound    = "not_found"
	OutcomePersistence = "persistence_failure"
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(IdeaOperations)
	reg.MustRegister(DegradedReads)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}
