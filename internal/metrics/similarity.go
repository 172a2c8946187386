package metrics

import "github.com/prometheus/client_golang/prometheus"

// Similarity Prometheus metrics.
var (
	RankDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "casematch",
			Name:      "rank_duration_seconds",
			Help:      "Similarity ranking duration in seconds",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
	)

	RankCandidatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "casematch",
			Name:      "rank_candidates_total",
			Help:      "Candidates seen by the ranker, by outcome",
		},
		[]string{"outcome"}, // scored, skipped_dimension, skipped_no_vector
	)

	SnapshotCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "casematch",
			Name:      "snapshot_cache_total",
			Help:      "Table snapshot cache lookups",
		},
		[]string{"result"}, // hit, miss, stale
	)
)

// RegisterSimilarityMetrics registers the similarity metrics explicitly (no init()).
func RegisterSimilarityMetrics() {
	prometheus.MustRegister(RankDuration)
	prometheus.MustRegister(RankCandidatesTotal)
	prometheus.MustRegister(SnapshotCacheTotal)
}
