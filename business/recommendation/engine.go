package recommendation

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"aidMatch/business/bandit"
	"aidMatch/business/scoring"
	"aidMatch/domain"
	"aidMatch/pkg/logger"
	"aidMatch/pkg/metrics"
)

var (
	ErrMissingOutcome = errors.New("either success or outcome_score is required")
	ErrInvalidVariant = errors.New("variant must be A or B")
)

const (
	VariantA = "A"
	VariantB = "B"

	unknownResourceName = "Unknown"
)

type RecommendInput struct {
	Individual   domain.Individual
	Resources    []domain.Resource
	ResourceType domain.ResourceType
	TopK         int
	UseBandit    bool
}

type FeedbackInput struct {
	ResourceType domain.ResourceType
	ResourceID   string
	Success      *bool
	OutcomeScore *float64
}

type scoredCandidate struct {
	resource    domain.Resource
	score       float64
	explanation domain.Explanation
	ok          bool
}

// Engine ranks resources with the scorer, re-ranks the head of the list with
// the bandit and feeds outcomes back into it. One Engine is shared by every
// request of the process.
type Engine struct {
	cfg    Config
	scorer *scoring.Scorer
	bandit *bandit.Bandit

	mu      sync.RWMutex
	variant string
}

type Option func(*options)

type options struct {
	matcher scoring.SkillMatcher
	rng     *rand.Rand
}

// WithSkillMatcher plugs a similarity provider into the scorer.
func WithSkillMatcher(m scoring.SkillMatcher) Option {
	return func(o *options) { o.matcher = m }
}

// WithRand seeds bandit exploration.
func WithRand(r *rand.Rand) Option {
	return func(o *options) { o.rng = r }
}

func NewEngine(cfg Config, opts ...Option) *Engine {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if cfg.ScoringWorkers <= 0 {
		cfg.ScoringWorkers = 1
	}

	b := bandit.New(cfg.Bandit, bandit.WithRand(o.rng))
	s := scoring.NewScorer(cfg.Scoring,
		scoring.WithHistory(b),
		scoring.WithSkillMatcher(o.matcher),
	)

	return &Engine{
		cfg:     cfg,
		scorer:  s,
		bandit:  b,
		variant: VariantA,
	}
}

// Recommend scores every candidate, sorts them best first (ties keep input
// order), lets the bandit promote one of the top 2*TopK to the front and
// returns the first TopK.
func (e *Engine) Recommend(ctx context.Context, in RecommendInput) ([]domain.Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if !in.ResourceType.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownResourceType, in.ResourceType)
	}
	if len(in.Resources) == 0 {
		return []domain.Recommendation{}, nil
	}

	start := time.Now()
	defer func() {
		metrics.RecommendLatency.WithLabelValues(string(in.ResourceType)).Observe(time.Since(start).Seconds())
	}()

	topK := in.TopK
	if topK <= 0 {
		topK = DefaultTopK
	}

	ranked := e.scoreAll(ctx, in.Individual, in.Resources, in.ResourceType)
	if len(ranked) == 0 {
		return []domain.Recommendation{}, nil
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	mode := "static"
	if in.UseBandit {
		mode = "bandit"
		var err error
		ranked, err = e.rerank(in.ResourceType, ranked, topK)
		if err != nil {
			return nil, err
		}
	}
	metrics.RecommendRequests.WithLabelValues(string(in.ResourceType), mode).Inc()

	if len(ranked) > topK {
		ranked = ranked[:topK]
	}

	out := make([]domain.Recommendation, 0, len(ranked))
	for _, c := range ranked {
		name := c.resource.Name
		if strings.TrimSpace(name) == "" {
			name = unknownResourceName
		}
		out = append(out, domain.Recommendation{
			ResourceID:      c.resource.ID,
			ResourceName:    name,
			ResourceType:    in.ResourceType,
			Score:           c.score,
			Explanation:     c.explanation,
			ResourceDetails: c.resource,
		})
	}

	logger.Debug("recommendation_built",
		"individual_id", in.Individual.ID,
		"resource_type", in.ResourceType,
		"candidates", len(in.Resources),
		"returned", len(out),
		"use_bandit", in.UseBandit,
	)

	return out, nil
}

// scoreAll scores candidates concurrently and returns them in input order.
// Candidates with a blank id, or whose scoring panics, are left out.
func (e *Engine) scoreAll(
	ctx context.Context,
	individual domain.Individual,
	resources []domain.Resource,
	resourceType domain.ResourceType,
) []scoredCandidate {
	results := make([]scoredCandidate, len(resources))

	var g errgroup.Group
	g.SetLimit(e.cfg.ScoringWorkers)

	for i := range resources {
		res := resources[i]
		if strings.TrimSpace(res.ID) == "" {
			metrics.RecommendCandidatesSkipped.WithLabelValues("blank_id").Inc()
			logger.Warn("skipping candidate without id",
				"resource_type", resourceType,
				"index", i,
				"name", res.Name,
			)
			continue
		}

		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					metrics.RecommendCandidatesSkipped.WithLabelValues("panic").Inc()
					logger.Error("scoring candidate panicked",
						"resource_type", resourceType,
						"resource_id", res.ID,
						"panic", fmt.Sprint(r),
					)
				}
			}()

			score, exp := e.scorer.CompositeScore(ctx, individual, res, resourceType)
			results[i] = scoredCandidate{resource: res, score: score, explanation: exp, ok: true}
			return nil
		})
	}
	_ = g.Wait()

	out := make([]scoredCandidate, 0, len(results))
	for _, c := range results {
		if c.ok {
			out = append(out, c)
		}
	}
	return out
}

// rerank moves the bandit's pick from the top min(2*topK, n) candidates to
// the front, keeping the relative order of everything else.
func (e *Engine) rerank(resourceType domain.ResourceType, ranked []scoredCandidate, topK int) ([]scoredCandidate, error) {
	poolSize := min(2*topK, len(ranked))

	scores := make(map[string]float64, len(ranked))
	for _, c := range ranked {
		if _, seen := scores[c.resource.ID]; !seen {
			scores[c.resource.ID] = c.score
		}
	}

	ids := make([]string, poolSize)
	for i := 0; i < poolSize; i++ {
		ids[i] = ranked[i].resource.ID
	}

	winner, err := e.bandit.SelectAction(resourceType, ids, scores)
	if err != nil {
		return nil, fmt.Errorf("bandit select: %w", err)
	}

	for i := 0; i < poolSize; i++ {
		if ranked[i].resource.ID != winner {
			continue
		}
		if i > 0 {
			picked := ranked[i]
			copy(ranked[1:i+1], ranked[:i])
			ranked[0] = picked
		}
		break
	}
	return ranked, nil
}

// ProvideFeedback turns an outcome into a reward and records it. An explicit
// outcome score wins over the success flag. It returns the reward applied.
func (e *Engine) ProvideFeedback(ctx context.Context, in FeedbackInput) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}
	if !in.ResourceType.Valid() {
		return 0, fmt.Errorf("%w: %q", domain.ErrUnknownResourceType, in.ResourceType)
	}

	var reward float64
	switch {
	case in.OutcomeScore != nil:
		reward = *in.OutcomeScore
	case in.Success != nil:
		if *in.Success {
			reward = 1.0
		}
	default:
		return 0, ErrMissingOutcome
	}

	if err := e.bandit.Update(in.ResourceType, in.ResourceID, reward); err != nil {
		return 0, err
	}

	logger.Info("feedback recorded",
		"resource_type", in.ResourceType,
		"resource_id", in.ResourceID,
		"reward", reward,
	)
	return reward, nil
}

func (e *Engine) Statistics() domain.Statistics {
	e.mu.RLock()
	variant := e.variant
	e.mu.RUnlock()

	return domain.Statistics{
		BanditStats:   e.bandit.Stats(),
		Epsilon:       e.bandit.Epsilon(),
		ABTestVariant: variant,
	}
}

// SetABVariant records the variant. Variant B also raises epsilon once, up to
// the configured ceiling; calling it again raises it again.
func (e *Engine) SetABVariant(variant string) error {
	v := strings.ToUpper(strings.TrimSpace(variant))
	if v != VariantA && v != VariantB {
		return fmt.Errorf("%w: got %q", ErrInvalidVariant, variant)
	}

	e.mu.Lock()
	e.variant = v
	e.mu.Unlock()

	if v == VariantB {
		eps := e.bandit.BoostEpsilon(e.cfg.ABBoostFactor, e.cfg.ABEpsilonCeiling)
		logger.Info("ab variant B applied", "epsilon", eps)
	}
	return nil
}
