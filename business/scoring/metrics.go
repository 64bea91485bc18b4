package scoring

import "github.com/prometheus/client_golang/prometheus"

var SkillMatcherFallbacksTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "scoring_skill_matcher_fallbacks_total",
		Help: "Times the configured skill matcher failed and the rule based matcher was used instead",
	},
)

func init() {
	prometheus.MustRegister(SkillMatcherFallbacksTotal)
}
