package bandit

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	BanditFeedbackEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bandit_feedback_events_total",
			Help: "Count of bandit feedback events by resource type and outcome.",
		},
		[]string{"resource_type", "outcome"},
	)

	BanditSelectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bandit_selections_total",
			Help: "Count of bandit selections by resource type and mode (explore or exploit).",
		},
		[]string{"resource_type", "mode"},
	)

	BanditEpsilon = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "bandit_epsilon",
		Help: "Current exploration rate of the bandit.",
	})
)

func init() {
	prometheus.MustRegister(BanditFeedbackEventsTotal, BanditSelectionsTotal, BanditEpsilon)
}

func outcomeLabel(reward float64) string {
	switch reward {
	case 1:
		return "success"
	case 0:
		return "failure"
	default:
		return "partial"
	}
}
