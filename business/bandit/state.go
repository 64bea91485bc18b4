package bandit

import "aidMatch/domain"

// Per (resource type, resource id) reward history. count always equals
// len(rewards); sum is kept so means are O(1).
type armState struct {
	rewards []float64
	sum     float64
	count   int
}

func (a *armState) record(reward float64) {
	a.rewards = append(a.rewards, reward)
	a.sum += reward
	a.count++
}

// typeState holds every arm of one resource type plus the running
// interaction total used by the UCB bonus.
type typeState struct {
	arms  map[string]*armState
	total int
}

func newTypeState() *typeState {
	return &typeState{arms: make(map[string]*armState)}
}

// lookup never inserts. A miss returns nil, which callers treat as an
// untried arm (count 0, neutral reward).
func (b *Bandit) lookup(resourceType domain.ResourceType, resourceID string) *armState {
	ts, ok := b.types[resourceType]
	if !ok {
		return nil
	}
	return ts.arms[resourceID]
}

// arm returns the arm for writing, creating the type and arm on first use.
func (b *Bandit) arm(resourceType domain.ResourceType, resourceID string) (*typeState, *armState) {
	ts, ok := b.types[resourceType]
	if !ok {
		ts = newTypeState()
		b.types[resourceType] = ts
	}
	a, ok := ts.arms[resourceID]
	if !ok {
		a = &armState{}
		ts.arms[resourceID] = a
	}
	return ts, a
}
