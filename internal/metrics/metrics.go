package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counters partitioned by chain id.

var (
	// Orchestrator
	ApprovalsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "noah",
		Subsystem: "orchestrator",
		Name:      "approvals_total",
		Help:      "Sequential token approvals by outcome",
	}, []string{"chain", "outcome"})

	BatchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "noah",
		Subsystem: "orchestrator",
		Name:      "batches_total",
		Help:      "Atomic approval batches by outcome",
	}, []string{"chain", "outcome"})

	PrimarySubmissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "noah",
		Subsystem: "orchestrator",
		Name:      "primary_submissions_total",
		Help:      "Primary contract calls by outcome",
	}, []string{"chain", "outcome"})

	// Indexer
	IndexerPollsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "noah",
		Subsystem: "indexer",
		Name:      "polls_total",
		Help:      "Confirmation polls against the indexer by result",
	}, []string{"chain", "result"})

	IndexerRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "noah",
		Subsystem: "indexer",
		Name:      "request_duration_seconds",
		Help:      "Indexer HTTP request duration",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"endpoint"})

	// Activity cache
	ActivityCacheTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "noah",
		Subsystem: "activity",
		Name:      "cache_lookups_total",
		Help:      "Activity cache lookups by result (fresh, stale, miss)",
	}, []string{"result"})

	// Keeper
	KeeperFloodsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "noah",
		Subsystem: "keeper",
		Name:      "floods_total",
		Help:      "Flood transactions sent by the keeper by outcome",
	}, []string{"chain", "outcome"})

	KeeperCyclesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "noah",
		Subsystem: "keeper",
		Name:      "cycles_total",
		Help:      "Completed keeper scan cycles",
	})
)

// Outcome labels
const (
	OutcomeConfirmed = "confirmed"
	OutcomeFailed    = "failed"
	OutcomeRejected  = "rejected"
)

// Poll result labels
const (
	PollSatisfied = "satisfied"
	PollPending   = "pending"
	PollError     = "error"
)
