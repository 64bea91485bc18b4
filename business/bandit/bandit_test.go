package bandit

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aidMatch/domain"
)

func greedyConfig() Config {
	return Config{InitialEpsilon: 0, EpsilonDecay: 0.995, MinEpsilon: 0}
}

func newSeeded(cfg Config) *Bandit {
	return New(cfg, WithRand(rand.New(rand.NewSource(42))))
}

func TestAverageReward_ColdStartIsNeutral(t *testing.T) {
	b := newSeeded(DefaultConfig())
	assert.Equal(t, 0.5, b.AverageReward(domain.ResourceShelter, "s1"))
	assert.Equal(t, 0, b.InteractionCount(domain.ResourceShelter, "s1"))
	assert.Empty(t, b.Stats(), "reads must not create state")
}

func TestUpdate_RepeatedSuccessGivesExactlyOne(t *testing.T) {
	b := newSeeded(DefaultConfig())
	for i := 0; i < 3; i++ {
		require.NoError(t, b.Update(domain.ResourceShelter, "s1", 1.0))
	}

	assert.Equal(t, 1.0, b.AverageReward(domain.ResourceShelter, "s1"))
	assert.Equal(t, 3, b.InteractionCount(domain.ResourceShelter, "s1"))

	stats := b.Stats()
	assert.Equal(t, domain.TypeStats{TotalInteractions: 3, UniqueResources: 1, AvgReward: 1.0}, stats[domain.ResourceShelter])
}

func TestUpdate_MixedOutcomesTrackSuccessRatio(t *testing.T) {
	b := newSeeded(DefaultConfig())
	outcomes := []float64{1, 0, 1, 1, 0, 1, 1, 0}
	for _, r := range outcomes {
		require.NoError(t, b.Update(domain.ResourceJob, "j1", r))
	}
	assert.InDelta(t, 5.0/8.0, b.AverageReward(domain.ResourceJob, "j1"), 1e-12)
}

func TestUpdate_RejectsOutOfRangeReward(t *testing.T) {
	b := newSeeded(DefaultConfig())
	for _, r := range []float64{-0.1, 1.5, math.NaN()} {
		err := b.Update(domain.ResourceJob, "j1", r)
		assert.ErrorIs(t, err, ErrRewardOutOfRange)
	}
	assert.Equal(t, 0, b.InteractionCount(domain.ResourceJob, "j1"))
	assert.Equal(t, DefaultConfig().InitialEpsilon, b.Epsilon())
}

func TestEpsilonDecay_IsPerEventAcrossTypes(t *testing.T) {
	cfg := Config{InitialEpsilon: 0.1, EpsilonDecay: 0.995, MinEpsilon: 0.01}
	b := newSeeded(cfg)

	types := []domain.ResourceType{domain.ResourceShelter, domain.ResourceJob, domain.ResourceTraining}
	for i := 0; i < 200; i++ {
		require.NoError(t, b.Update(types[i%len(types)], "r", 0.5))
	}

	want := math.Max(0.01, 0.1*math.Pow(0.995, 200))
	assert.InDelta(t, want, b.Epsilon(), 1e-12)
	assert.InDelta(t, 0.0367, b.Epsilon(), 1e-4)
}

func TestEpsilonDecay_StopsAtFloor(t *testing.T) {
	b := newSeeded(Config{InitialEpsilon: 0.1, EpsilonDecay: 0.5, MinEpsilon: 0.01})
	for i := 0; i < 20; i++ {
		require.NoError(t, b.Update(domain.ResourceShelter, "s1", 1))
	}
	assert.Equal(t, 0.01, b.Epsilon())
}

func TestSelectAction_NoCandidates(t *testing.T) {
	b := newSeeded(greedyConfig())
	_, err := b.SelectAction(domain.ResourceShelter, nil, nil)
	assert.ErrorIs(t, err, ErrNoCandidates)
}

func TestSelectAction_GreedyPicksHighestScoreWhenUntried(t *testing.T) {
	b := newSeeded(greedyConfig())
	got, err := b.SelectAction(domain.ResourceShelter, []string{"a", "b", "c"}, map[string]float64{"a": 0.5, "b": 0.7, "c": 0.6})
	require.NoError(t, err)
	assert.Equal(t, "b", got)
}

func TestSelectAction_TiesGoToEarliestCandidate(t *testing.T) {
	b := newSeeded(greedyConfig())
	scores := map[string]float64{"x": 0.4, "y": 0.4, "z": 0.4}
	for i := 0; i < 10; i++ {
		got, err := b.SelectAction(domain.ResourceShelter, []string{"y", "x", "z"}, scores)
		require.NoError(t, err)
		assert.Equal(t, "y", got)
	}
}

func TestSelectAction_UCBFavoursUntriedArm(t *testing.T) {
	b := newSeeded(greedyConfig())
	for i := 0; i < 10; i++ {
		require.NoError(t, b.Update(domain.ResourceJob, "a", 1))
	}

	// a: 0.9 + sqrt(2 ln 11 / 10) ~= 1.5925, b: 0.5 + 1.0 = 1.5
	got, err := b.SelectAction(domain.ResourceJob, []string{"a", "b"}, map[string]float64{"a": 0.9, "b": 0.5})
	require.NoError(t, err)
	assert.Equal(t, "a", got)

	// b: 0.7 + 1.0 = 1.7 beats a
	got, err = b.SelectAction(domain.ResourceJob, []string{"a", "b"}, map[string]float64{"a": 0.9, "b": 0.7})
	require.NoError(t, err)
	assert.Equal(t, "b", got)
}

func TestSelectAction_MissingScoreCountsAsZero(t *testing.T) {
	b := newSeeded(greedyConfig())
	got, err := b.SelectAction(domain.ResourceJob, []string{"a", "b"}, map[string]float64{"b": 0.1})
	require.NoError(t, err)
	assert.Equal(t, "b", got)
}

func TestSelectAction_DoesNotMutateState(t *testing.T) {
	b := newSeeded(Config{InitialEpsilon: 0.3, EpsilonDecay: 0.9, MinEpsilon: 0.01})
	require.NoError(t, b.Update(domain.ResourceShelter, "a", 1))
	eps := b.Epsilon()

	for i := 0; i < 50; i++ {
		_, err := b.SelectAction(domain.ResourceShelter, []string{"a", "b"}, map[string]float64{"a": 1})
		require.NoError(t, err)
	}

	assert.Equal(t, eps, b.Epsilon())
	assert.Equal(t, 1, b.InteractionCount(domain.ResourceShelter, "a"))
	assert.Equal(t, 0, b.InteractionCount(domain.ResourceShelter, "b"))
}

func TestSelectAction_FullExplorationReachesEveryCandidate(t *testing.T) {
	b := newSeeded(Config{InitialEpsilon: 1, EpsilonDecay: 1, MinEpsilon: 1})
	candidates := []string{"a", "b", "c", "d"}
	seen := map[string]int{}
	for i := 0; i < 400; i++ {
		got, err := b.SelectAction(domain.ResourceTraining, candidates, map[string]float64{"a": 10})
		require.NoError(t, err)
		seen[got]++
	}
	assert.Len(t, seen, len(candidates))
}

func TestBoostEpsilon_CapsAtCeiling(t *testing.T) {
	b := newSeeded(Config{InitialEpsilon: 0.1, EpsilonDecay: 0.995, MinEpsilon: 0.01})
	assert.InDelta(t, 0.15, b.BoostEpsilon(1.5, 0.2), 1e-12)
	assert.InDelta(t, 0.2, b.BoostEpsilon(1.5, 0.2), 1e-12)
}

func TestStats_AggregatesPerType(t *testing.T) {
	b := newSeeded(DefaultConfig())
	require.NoError(t, b.Update(domain.ResourceJob, "j1", 1))
	require.NoError(t, b.Update(domain.ResourceJob, "j2", 0))
	require.NoError(t, b.Update(domain.ResourceJob, "j2", 0.5))
	require.NoError(t, b.Update(domain.ResourceTraining, "t1", 0.25))

	stats := b.Stats()
	require.Len(t, stats, 2)
	assert.Equal(t, 3, stats[domain.ResourceJob].TotalInteractions)
	assert.Equal(t, 2, stats[domain.ResourceJob].UniqueResources)
	assert.InDelta(t, 0.5, stats[domain.ResourceJob].AvgReward, 1e-12)
	assert.InDelta(t, 0.25, stats[domain.ResourceTraining].AvgReward, 1e-12)
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	tests := []struct {
		name string
		cfg  Config
	}{
		{"negative initial", Config{InitialEpsilon: -0.1, EpsilonDecay: 0.9}},
		{"initial above one", Config{InitialEpsilon: 1.1, EpsilonDecay: 0.9}},
		{"min above initial", Config{InitialEpsilon: 0.1, EpsilonDecay: 0.9, MinEpsilon: 0.2}},
		{"zero decay", Config{InitialEpsilon: 0.1, EpsilonDecay: 0}},
		{"decay above one", Config{InitialEpsilon: 0.1, EpsilonDecay: 1.01}},
		{"NaN", Config{InitialEpsilon: math.NaN(), EpsilonDecay: 0.9}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.cfg.Validate())
		})
	}
}
