package bandit

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"aidMatch/domain"
	"aidMatch/pkg/logger"
)

var (
	ErrNoCandidates     = errors.New("no candidates to select from")
	ErrRewardOutOfRange = errors.New("reward must be within [0,1]")
)

// neutral reward reported for resources with no history yet
const coldStartReward = 0.5

// Bandit is an epsilon-greedy bandit with an upper-confidence-bound
// exploitation rule. History is scoped per resource type; epsilon is a single
// scalar shared by every type.
//
// All state sits behind one RWMutex: an update appends the reward, bumps the
// count and decays epsilon as one step, and a selection reads a consistent
// snapshot of counts.
type Bandit struct {
	mu      sync.RWMutex
	cfg     Config
	epsilon float64
	types   map[domain.ResourceType]*typeState

	randMu sync.Mutex
	rng    *rand.Rand
}

type Option func(*Bandit)

// WithRand replaces the random source, which makes exploration reproducible.
func WithRand(r *rand.Rand) Option {
	return func(b *Bandit) {
		if r != nil {
			b.rng = r
		}
	}
}

func New(cfg Config, opts ...Option) *Bandit {
	b := &Bandit{
		cfg:     cfg,
		epsilon: cfg.InitialEpsilon,
		types:   make(map[domain.ResourceType]*typeState),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(b)
	}
	BanditEpsilon.Set(b.epsilon)
	return b
}

func (b *Bandit) randFloat() float64 {
	b.randMu.Lock()
	defer b.randMu.Unlock()
	return b.rng.Float64()
}

func (b *Bandit) randIntn(n int) int {
	b.randMu.Lock()
	defer b.randMu.Unlock()
	return b.rng.Intn(n)
}

// SelectAction picks one candidate id. With probability epsilon it explores
// uniformly at random; otherwise it returns the candidate with the highest
// score + UCB bonus, ties going to the earliest candidate. It never changes
// epsilon or counts.
func (b *Bandit) SelectAction(
	resourceType domain.ResourceType,
	candidates []string,
	scores map[string]float64,
) (string, error) {
	if len(candidates) == 0 {
		return "", ErrNoCandidates
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.randFloat() < b.epsilon {
		BanditSelectionsTotal.WithLabelValues(string(resourceType), "explore").Inc()
		return candidates[b.randIntn(len(candidates))], nil
	}

	total := 0
	if ts, ok := b.types[resourceType]; ok {
		total = ts.total
	}

	bestIdx := 0
	bestUCB := math.Inf(-1)
	for i, id := range candidates {
		count := 0
		if a := b.lookup(resourceType, id); a != nil {
			count = a.count
		}
		ucb := scores[id] + ucbBonus(count, total)
		if ucb > bestUCB {
			bestIdx = i
			bestUCB = ucb
		}
	}

	BanditSelectionsTotal.WithLabelValues(string(resourceType), "exploit").Inc()
	return candidates[bestIdx], nil
}

// Update records one observed reward and decays epsilon. Decay is global and
// happens once per call regardless of resource type.
func (b *Bandit) Update(resourceType domain.ResourceType, resourceID string, reward float64) error {
	if math.IsNaN(reward) || reward < 0 || reward > 1 {
		return fmt.Errorf("%w: got %v", ErrRewardOutOfRange, reward)
	}

	b.mu.Lock()
	ts, a := b.arm(resourceType, resourceID)
	a.record(reward)
	ts.total++
	b.epsilon = math.Max(b.cfg.MinEpsilon, b.epsilon*b.cfg.EpsilonDecay)
	eps := b.epsilon
	count := a.count
	b.mu.Unlock()

	BanditEpsilon.Set(eps)
	BanditFeedbackEventsTotal.WithLabelValues(string(resourceType), outcomeLabel(reward)).Inc()

	logger.Debug("bandit_update",
		"resource_type", resourceType,
		"resource_id", resourceID,
		"reward", reward,
		"count", count,
		"epsilon", eps,
	)

	return nil
}

// AverageReward is the mean observed reward, or 0.5 when nothing has been
// observed yet (distinct from a learned 0.0).
func (b *Bandit) AverageReward(resourceType domain.ResourceType, resourceID string) float64 {
	b.mu.RLock()
	defer b.mu.RUnlock()

	a := b.lookup(resourceType, resourceID)
	if a == nil || a.count == 0 {
		return coldStartReward
	}
	return a.sum / float64(a.count)
}

func (b *Bandit) InteractionCount(resourceType domain.ResourceType, resourceID string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if a := b.lookup(resourceType, resourceID); a != nil {
		return a.count
	}
	return 0
}

// Stats aggregates every known resource type. avg_reward is the mean of all
// rewards of the type, or 0 when none exist.
func (b *Bandit) Stats() map[domain.ResourceType]domain.TypeStats {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make(map[domain.ResourceType]domain.TypeStats, len(b.types))
	for rt, ts := range b.types {
		var sum float64
		var n int
		for _, a := range ts.arms {
			sum += a.sum
			n += len(a.rewards)
		}

		avg := 0.0
		if n > 0 {
			avg = sum / float64(n)
		}

		out[rt] = domain.TypeStats{
			TotalInteractions: ts.total,
			UniqueResources:   len(ts.arms),
			AvgReward:         avg,
		}
	}
	return out
}

func (b *Bandit) Epsilon() float64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.epsilon
}

// BoostEpsilon applies a one-time epsilon = min(ceiling, epsilon*factor) and
// returns the new value.
func (b *Bandit) BoostEpsilon(factor, ceiling float64) float64 {
	b.mu.Lock()
	b.epsilon = math.Min(ceiling, b.epsilon*factor)
	eps := b.epsilon
	b.mu.Unlock()

	BanditEpsilon.Set(eps)
	return eps
}
