package cmd

import (
	"context"
	"fmt"
	"math/rand"
	"sort"

	"aidMatch/business/recommendation"
	"aidMatch/domain"
)

type SimulationOptions struct {
	Rounds       int
	TopK         int
	UseBandit    bool
	Variant      string
	Seed         int64
	SampleEvery  int
	EngineConfig recommendation.Config
}

type EpsilonPoint struct {
	Round   int
	Epsilon float64
}

type Report struct {
	Scenario    string
	Rounds      int
	Picks       map[string]int
	Successes   map[string]int
	TotalReward float64
	Epsilon     []EpsilonPoint
	Statistics  domain.Statistics
}

// Simulate runs rounds of recommend then feedback against a fresh engine. The
// first recommendation of every round is "placed" and succeeds with its
// hidden probability.
func Simulate(ctx context.Context, s *Scenario, opts SimulationOptions) (*Report, error) {
	rng := rand.New(rand.NewSource(opts.Seed))
	engine := recommendation.NewEngine(opts.EngineConfig, recommendation.WithRand(rand.New(rand.NewSource(opts.Seed+1))))

	if opts.Variant != "" {
		if err := engine.SetABVariant(opts.Variant); err != nil {
			return nil, err
		}
	}
	if opts.SampleEvery <= 0 {
		opts.SampleEvery = max(1, opts.Rounds/10)
	}

	resourceType := s.resourceType()
	individual := s.individual()
	resources := s.resources()
	probabilities := s.successProbabilities()

	report := &Report{
		Scenario:  s.Name,
		Picks:     make(map[string]int),
		Successes: make(map[string]int),
		Epsilon:   []EpsilonPoint{{Round: 0, Epsilon: engine.Statistics().Epsilon}},
	}

	for round := 1; round <= opts.Rounds; round++ {
		recs, err := engine.Recommend(ctx, recommendation.RecommendInput{
			Individual:   individual,
			Resources:    resources,
			ResourceType: resourceType,
			TopK:         opts.TopK,
			UseBandit:    opts.UseBandit,
		})
		if err != nil {
			return nil, fmt.Errorf("round %d: %w", round, err)
		}
		if len(recs) == 0 {
			return nil, fmt.Errorf("round %d: no recommendations", round)
		}

		placed := recs[0].ResourceID
		success := rng.Float64() < probabilities[placed]
		reward, err := engine.ProvideFeedback(ctx, recommendation.FeedbackInput{
			ResourceType: resourceType,
			ResourceID:   placed,
			Success:      &success,
		})
		if err != nil {
			return nil, fmt.Errorf("round %d: %w", round, err)
		}

		report.Rounds++
		report.Picks[placed]++
		if success {
			report.Successes[placed]++
		}
		report.TotalReward += reward

		if round%opts.SampleEvery == 0 || round == opts.Rounds {
			report.Epsilon = append(report.Epsilon, EpsilonPoint{Round: round, Epsilon: engine.Statistics().Epsilon})
		}
	}

	report.Statistics = engine.Statistics()
	return report, nil
}

// RankedPicks lists resource ids by how often they were placed, most first.
func (r *Report) RankedPicks() []string {
	ids := make([]string, 0, len(r.Picks))
	for id := range r.Picks {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if r.Picks[ids[i]] != r.Picks[ids[j]] {
			return r.Picks[ids[i]] > r.Picks[ids[j]]
		}
		return ids[i] < ids[j]
	})
	return ids
}
