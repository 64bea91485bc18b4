package scoring

import (
	"context"

	"aidMatch/domain"
	"aidMatch/pkg/logger"
)

// HistorySource exposes learned outcomes per resource. The bandit satisfies it.
type HistorySource interface {
	AverageReward(resourceType domain.ResourceType, resourceID string) float64
	InteractionCount(resourceType domain.ResourceType, resourceID string) int
}

type Scorer struct {
	cfg      Config
	matcher  SkillMatcher
	fallback *RuleMatcher
	history  HistorySource
}

type Option func(*Scorer)

// WithSkillMatcher replaces the default rule based matcher.
func WithSkillMatcher(m SkillMatcher) Option {
	return func(s *Scorer) {
		if m != nil {
			s.matcher = m
		}
	}
}

// WithHistory wires learned outcomes into the historical factor and the cold
// start bonus. Without it both stay neutral.
func WithHistory(h HistorySource) Option {
	return func(s *Scorer) {
		s.history = h
	}
}

func NewScorer(cfg Config, opts ...Option) *Scorer {
	rules := NewRuleMatcher()
	s := &Scorer{
		cfg:      cfg,
		matcher:  rules,
		fallback: rules,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Scorer) Config() Config {
	return s.cfg
}

func (s *Scorer) LocationScore(a, b *domain.Location) float64 {
	return LocationScore(a, b, s.cfg.MaxDistance)
}

// SkillMatchScore is 1 when nothing is required and 0 when the individual
// lists no skills. Matcher failures degrade to the rule based matcher.
func (s *Scorer) SkillMatchScore(ctx context.Context, individual, required []string) float64 {
	if len(required) == 0 {
		return 1.0
	}
	if len(individual) == 0 {
		return 0.0
	}

	score, err := s.matcher.Similarity(ctx, individual, required)
	if err != nil {
		SkillMatcherFallbacksTotal.Inc()
		logger.Warn("skill matcher failed, falling back to rules", "error", err)
		return s.fallback.score(individual, required)
	}
	return score
}

func (s *Scorer) HistoricalScore(resourceType domain.ResourceType, resourceID string) float64 {
	if s.history == nil {
		return neutralScore
	}
	return s.history.AverageReward(resourceType, resourceID)
}

// CompositeScore returns the weighted sum of the five factors, plus the cold
// start bonus for resources with too little history, and the per-factor
// explanation rounded to three decimals.
func (s *Scorer) CompositeScore(
	ctx context.Context,
	individual domain.Individual,
	resource domain.Resource,
	resourceType domain.ResourceType,
) (float64, domain.Explanation) {
	location := s.LocationScore(individual.Location, resource.Location)
	skill := s.SkillMatchScore(ctx, individual.Skills, resource.RequiredSkills)
	availability := AvailabilityScore(resource.Capacity, resource.Occupied)
	priority := PriorityScore(individual.Priority, resource.PrioritySupport)
	historical := s.HistoricalScore(resourceType, resource.ID)

	w := s.cfg.Weights
	composite := w.Location*location +
		w.Skill*skill +
		w.Availability*availability +
		w.Priority*priority +
		w.Historical*historical

	if s.history != nil && s.history.InteractionCount(resourceType, resource.ID) < s.cfg.MinInteractions {
		composite += s.cfg.ColdStartBonus
	}

	return composite, domain.Explanation{
		LocationScore:     round3(location),
		SkillMatchScore:   round3(skill),
		AvailabilityScore: round3(availability),
		PriorityScore:     round3(priority),
		HistoricalScore:   round3(historical),
		CompositeScore:    round3(composite),
	}
}
