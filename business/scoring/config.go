package scoring

import (
	"errors"
	"fmt"
	"math"
)

const (
	defaultWeightLocation     = 0.25
	defaultWeightSkill        = 0.25
	defaultWeightAvailability = 0.20
	defaultWeightPriority     = 0.20
	defaultWeightHistorical   = 0.10

	defaultColdStartBonus  = 0.1
	defaultMinInteractions = 5
	defaultMaxDistance     = 50.0
)

// Weights of the five factors in the composite score. They are not required
// to sum to one.
type Weights struct {
	Location     float64
	Skill        float64
	Availability float64
	Priority     float64
	Historical   float64
}

type Config struct {
	Weights Weights

	// ColdStartBonus is added to the composite score of any resource with
	// fewer than MinInteractions recorded outcomes.
	ColdStartBonus  float64
	MinInteractions int

	// MaxDistance is the distance at which the location score reaches zero.
	MaxDistance float64
}

func DefaultConfig() Config {
	return Config{
		Weights: Weights{
			Location:     defaultWeightLocation,
			Skill:        defaultWeightSkill,
			Availability: defaultWeightAvailability,
			Priority:     defaultWeightPriority,
			Historical:   defaultWeightHistorical,
		},
		ColdStartBonus:  defaultColdStartBonus,
		MinInteractions: defaultMinInteractions,
		MaxDistance:     defaultMaxDistance,
	}
}

func (c Config) Validate() error {
	weights := map[string]float64{
		"location":     c.Weights.Location,
		"skill":        c.Weights.Skill,
		"availability": c.Weights.Availability,
		"priority":     c.Weights.Priority,
		"historical":   c.Weights.Historical,
	}
	for name, w := range weights {
		if !isFinite(w) || w < 0 {
			return fmt.Errorf("weight %s must be a non-negative number, got %v", name, w)
		}
	}

	if !isFinite(c.ColdStartBonus) || c.ColdStartBonus < 0 {
		return fmt.Errorf("cold start bonus must be a non-negative number, got %v", c.ColdStartBonus)
	}
	if c.MinInteractions < 0 {
		return errors.New("min interactions must not be negative")
	}
	if !isFinite(c.MaxDistance) || c.MaxDistance <= 0 {
		return fmt.Errorf("max distance must be positive, got %v", c.MaxDistance)
	}
	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
