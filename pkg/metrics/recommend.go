package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of Engine.Recommend by resource type
	RecommendLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "recommend_latency_seconds",
		Help:    "Latency of building one recommendation list",
		Buckets: prometheus.DefBuckets,
	}, []string{"resource_type"})

	// Total recommendation lists served, split by whether the bandit re-ranked them
	RecommendRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "recommend_requests_total",
		Help: "Total number of recommend calls",
	}, []string{"resource_type", "mode"})

	// Candidates dropped before ranking (blank id or scoring panic)
	RecommendCandidatesSkipped = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "recommend_candidates_skipped_total",
		Help: "Candidates excluded from a recommendation list",
	}, []string{"reason"})
)

func Init() {
	prometheus.MustRegister(
		RecommendLatency,
		RecommendRequests,
		RecommendCandidatesSkipped,
	)
}
