package scoring

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"aidMatch/domain"
	"aidMatch/pkg/logger"
)

type fakeHistory struct {
	avg   map[string]float64
	count map[string]int
}

func (f fakeHistory) AverageReward(_ domain.ResourceType, id string) float64 {
	if v, ok := f.avg[id]; ok {
		return v
	}
	return 0.5
}

func (f fakeHistory) InteractionCount(_ domain.ResourceType, id string) int {
	return f.count[id]
}

type failingMatcher struct{}

func (failingMatcher) Similarity(context.Context, []string, []string) (float64, error) {
	return 0, errors.New("provider unavailable")
}

func sampleIndividual() domain.Individual {
	return domain.Individual{
		ID:       "ind-1",
		Skills:   []string{"cooking", "forklift"},
		Location: &domain.Location{Lat: 0, Lng: 0},
		Priority: domain.PriorityHigh,
	}
}

func sampleResource() domain.Resource {
	return domain.Resource{
		ID:              "job-1",
		Name:            "Kitchen Porter",
		Location:        &domain.Location{Lat: 3, Lng: 4},
		Capacity:        10,
		Occupied:        5,
		RequiredSkills:  []string{"forklift"},
		PrioritySupport: []domain.Priority{"medium", "high"},
	}
}

func TestSkillMatchScore_FallbackUsesRules(t *testing.T) {
	s := NewScorer(DefaultConfig())
	got := s.SkillMatchScore(context.Background(), []string{"cooking"}, []string{"cook"})
	assert.InDelta(t, 0.7, got, 1e-12)
}

func TestSkillMatchScore_ShortCircuits(t *testing.T) {
	s := NewScorer(DefaultConfig(), WithSkillMatcher(failingMatcher{}))
	assert.Equal(t, 1.0, s.SkillMatchScore(context.Background(), []string{"cooking"}, nil))
	assert.Equal(t, 0.0, s.SkillMatchScore(context.Background(), nil, []string{"cook"}))
}

func TestSkillMatchScore_DegradesWhenMatcherFails(t *testing.T) {
	core, observed := observer.New(zapcore.WarnLevel)
	logger.SetLogger(zap.New(core))
	defer logger.SetLogger(nil)

	s := NewScorer(DefaultConfig(), WithSkillMatcher(failingMatcher{}))
	got := s.SkillMatchScore(context.Background(), []string{"cooking"}, []string{"cook"})

	assert.InDelta(t, 0.7, got, 1e-12)
	require.Equal(t, 1, observed.Len())
	assert.Equal(t, zapcore.WarnLevel, observed.All()[0].Level)
}

func TestSkillMatchScore_SemanticMatcher(t *testing.T) {
	s := NewScorer(DefaultConfig(), WithSkillMatcher(NewSemanticMatcher(&fakeEmbedder{vectors: skillVectors()})))
	got := s.SkillMatchScore(context.Background(), []string{"chef"}, []string{"cook"})
	assert.InDelta(t, 0.8, got, 1e-6)
}

func TestHistoricalScore(t *testing.T) {
	assert.Equal(t, 0.5, NewScorer(DefaultConfig()).HistoricalScore(domain.ResourceJob, "job-1"))

	s := NewScorer(DefaultConfig(), WithHistory(fakeHistory{avg: map[string]float64{"job-1": 0.9}}))
	assert.Equal(t, 0.9, s.HistoricalScore(domain.ResourceJob, "job-1"))
	assert.Equal(t, 0.5, s.HistoricalScore(domain.ResourceJob, "job-2"))
}

func TestCompositeScore_WeightedSum(t *testing.T) {
	history := fakeHistory{
		avg:   map[string]float64{"job-1": 0.8},
		count: map[string]int{"job-1": 10},
	}
	s := NewScorer(DefaultConfig(), WithHistory(history))

	score, exp := s.CompositeScore(context.Background(), sampleIndividual(), sampleResource(), domain.ResourceJob)

	// 0.25*0.9 + 0.25*1 + 0.2*1 + 0.2*1 + 0.1*0.8
	assert.InDelta(t, 0.955, score, 1e-9)
	assert.Equal(t, domain.Explanation{
		LocationScore:     0.9,
		SkillMatchScore:   1,
		AvailabilityScore: 1,
		PriorityScore:     1,
		HistoricalScore:   0.8,
		CompositeScore:    0.955,
	}, exp)
}

func TestCompositeScore_ColdStartBonus(t *testing.T) {
	warm := fakeHistory{count: map[string]int{"job-1": 5}}
	cold := fakeHistory{count: map[string]int{"job-1": 4}}

	warmScore, _ := NewScorer(DefaultConfig(), WithHistory(warm)).CompositeScore(context.Background(), sampleIndividual(), sampleResource(), domain.ResourceJob)
	coldScore, exp := NewScorer(DefaultConfig(), WithHistory(cold)).CompositeScore(context.Background(), sampleIndividual(), sampleResource(), domain.ResourceJob)

	assert.InDelta(t, 0.1, coldScore-warmScore, 1e-9)
	assert.InDelta(t, coldScore, exp.CompositeScore, 0.0005)
}

func TestCompositeScore_NoHistoryIsNeutral(t *testing.T) {
	s := NewScorer(DefaultConfig())
	score, exp := s.CompositeScore(context.Background(), sampleIndividual(), sampleResource(), domain.ResourceJob)

	assert.Equal(t, 0.5, exp.HistoricalScore)
	assert.InDelta(t, 0.925, score, 1e-9)
}

func TestCompositeScore_MissingOptionalFields(t *testing.T) {
	s := NewScorer(DefaultConfig())
	score, exp := s.CompositeScore(context.Background(), domain.Individual{ID: "x"}, domain.Resource{ID: "r"}, domain.ResourceShelter)

	assert.Equal(t, 0.5, exp.LocationScore)
	assert.Equal(t, 1.0, exp.SkillMatchScore)
	assert.Equal(t, 0.0, exp.AvailabilityScore)
	assert.Equal(t, 0.5, exp.PriorityScore)
	assert.InDelta(t, 0.25*0.5+0.25+0.2*0.5+0.1*0.5, score, 1e-9)
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	negative := DefaultConfig()
	negative.Weights.Skill = -0.1
	assert.Error(t, negative.Validate())

	noDistance := DefaultConfig()
	noDistance.MaxDistance = 0
	assert.Error(t, noDistance.Validate())

	badBonus := DefaultConfig()
	badBonus.ColdStartBonus = -1
	assert.Error(t, badBonus.Validate())

	badMin := DefaultConfig()
	badMin.MinInteractions = -1
	assert.Error(t, badMin.Validate())
}
