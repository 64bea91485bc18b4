package bandit

import (
	"fmt"
	"math"
)

type Config struct {
	// exploration probability at cold start
	InitialEpsilon float64
	// multiplier applied to epsilon after every feedback event
	EpsilonDecay float64
	// floor epsilon never decays below
	MinEpsilon float64
}

const (
	defaultInitialEpsilon = 0.1
	defaultEpsilonDecay   = 0.995
	defaultMinEpsilon     = 0.01
)

func DefaultConfig() Config {
	return Config{
		InitialEpsilon: defaultInitialEpsilon,
		EpsilonDecay:   defaultEpsilonDecay,
		MinEpsilon:     defaultMinEpsilon,
	}
}

// Validate checks 0 <= MinEpsilon <= InitialEpsilon <= 1 and 0 < EpsilonDecay <= 1.
func (c Config) Validate() error {
	for name, v := range map[string]float64{
		"initial epsilon": c.InitialEpsilon,
		"epsilon decay":   c.EpsilonDecay,
		"min epsilon":     c.MinEpsilon,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s must be finite, got %v", name, v)
		}
	}
	if c.InitialEpsilon < 0 || c.InitialEpsilon > 1 {
		return fmt.Errorf("initial epsilon must be within [0,1], got %v", c.InitialEpsilon)
	}
	if c.MinEpsilon < 0 || c.MinEpsilon > c.InitialEpsilon {
		return fmt.Errorf("min epsilon must be within [0,%v], got %v", c.InitialEpsilon, c.MinEpsilon)
	}
	if c.EpsilonDecay <= 0 || c.EpsilonDecay > 1 {
		return fmt.Errorf("epsilon decay must be within (0,1], got %v", c.EpsilonDecay)
	}
	return nil
}
