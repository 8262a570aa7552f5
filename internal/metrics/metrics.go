package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	transitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pustaka_market",
			Name:      "request_transitions_total",
			Help:      "Successful purchase request transitions by target status.",
		},
		[]string{"status"},
	)

	transitionFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pustaka_market",
			Name:      "request_transition_failures_total",
			Help:      "Failed transitions by reason.",
		},
		[]string{"reason"},
	)

	bulkBatches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pustaka_market",
			Name:      "bulk_batches_total",
			Help:      "Bulk actions dispatched by action.",
		},
		[]string{"action"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(transitions, transitionFailures, bulkBatches)
	})
}

// IncTransition increments the counter for a target status label.
func IncTransition(status string) {
	transitions.WithLabelValues(status).Inc()
}

// IncTransitionFailure increments the failure counter for a reason label.
func IncTransitionFailure(reason string) {
	transitionFailures.WithLabelValues(reason).Inc()
}

// IncBulkBatch increments the counter for a bulk action label.
func IncBulkBatch(action string) {
	bulkBatches.WithLabelValues(action).Inc()
}
