package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for EdgeWrites.
const (
	OutcomeCreated   = "created"
	OutcomeDuplicate = "duplicate"
	OutcomeRejected  = "rejected"
)

var (
	// EdgeWrites counts graph edge write attempts by kind and outcome.
	EdgeWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "snipshare_edge_writes_total",
		Help: "Total number of edge write attempts by kind and outcome",
	}, []string{"kind", "outcome"})

	// VisibilityDrops counts candidates removed during visibility resolution.
	VisibilityDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "snipshare_visibility_drops_total",
		Help: "Total number of candidates dropped from query results by reason",
	}, []string{"reason"})

	// CascadeDeletes counts completed cascade deletions by root entity.
	CascadeDeletes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "snipshare_cascade_deletes_total",
		Help: "Total number of completed cascade deletions by entity",
	}, []string{"entity"})

	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "snipshare_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "snipshare_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
