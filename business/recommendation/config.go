package recommendation

import (
	"fmt"
	"runtime"

	"aidMatch/business/bandit"
	"aidMatch/business/scoring"
)

const (
	DefaultTopK = 5

	defaultABBoostFactor    = 1.5
	defaultABEpsilonCeiling = 0.2
)

type Config struct {
	Scoring scoring.Config
	Bandit  bandit.Config

	// Variant B multiplies epsilon by ABBoostFactor once, capped at
	// ABEpsilonCeiling.
	ABBoostFactor    float64
	ABEpsilonCeiling float64

	// ScoringWorkers bounds how many candidates are scored at once.
	ScoringWorkers int
}

func DefaultConfig() Config {
	return Config{
		Scoring:          scoring.DefaultConfig(),
		Bandit:           bandit.DefaultConfig(),
		ABBoostFactor:    defaultABBoostFactor,
		ABEpsilonCeiling: defaultABEpsilonCeiling,
		ScoringWorkers:   runtime.GOMAXPROCS(0),
	}
}

func (c Config) Validate() error {
	if err := c.Scoring.Validate(); err != nil {
		return fmt.Errorf("scoring: %w", err)
	}
	if err := c.Bandit.Validate(); err != nil {
		return fmt.Errorf("bandit: %w", err)
	}
	if c.ABBoostFactor < 1 {
		return fmt.Errorf("ab boost factor must be at least 1, got %v", c.ABBoostFactor)
	}
	if c.ABEpsilonCeiling < 0 || c.ABEpsilonCeiling > 1 {
		return fmt.Errorf("ab epsilon ceiling must be within [0,1], got %v", c.ABEpsilonCeiling)
	}
	return nil
}
