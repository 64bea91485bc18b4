package cmd

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"aidMatch/domain"
)

// Scenario is one offline experiment: a single individual facing a fixed set
// of candidates, each with a hidden probability that a placement succeeds.
type Scenario struct {
	Name         string             `yaml:"name"`
	ResourceType string             `yaml:"resource_type"`
	Individual   ScenarioIndividual `yaml:"individual"`
	Resources    []ScenarioResource `yaml:"resources"`
}

type ScenarioIndividual struct {
	ID       string    `yaml:"id"`
	Skills   []string  `yaml:"skills"`
	Location []float64 `yaml:"location"`
	Priority string    `yaml:"priority"`
}

type ScenarioResource struct {
	ID                 string    `yaml:"id"`
	Name               string    `yaml:"name"`
	Location           []float64 `yaml:"location"`
	Capacity           int       `yaml:"capacity"`
	Occupied           int       `yaml:"occupied"`
	RequiredSkills     []string  `yaml:"required_skills"`
	PrioritySupport    []string  `yaml:"priority_support"`
	SuccessProbability float64   `yaml:"success_probability"`
}

func LoadScenario(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}

	var s Scenario
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", path, err)
	}
	return &s, nil
}

func (s *Scenario) validate() error {
	if _, err := domain.ParseResourceType(s.ResourceType); err != nil {
		return err
	}
	if len(s.Resources) == 0 {
		return errors.New("at least one resource is required")
	}
	if err := checkLocation(s.Individual.Location); err != nil {
		return fmt.Errorf("individual: %w", err)
	}

	seen := make(map[string]struct{}, len(s.Resources))
	for _, r := range s.Resources {
		if r.ID == "" {
			return errors.New("resource id is required")
		}
		if _, dup := seen[r.ID]; dup {
			return fmt.Errorf("duplicate resource id %q", r.ID)
		}
		seen[r.ID] = struct{}{}

		if r.SuccessProbability < 0 || r.SuccessProbability > 1 {
			return fmt.Errorf("resource %s: success_probability must be within [0,1]", r.ID)
		}
		if err := checkLocation(r.Location); err != nil {
			return fmt.Errorf("resource %s: %w", r.ID, err)
		}
	}
	return nil
}

func checkLocation(loc []float64) error {
	if len(loc) != 0 && len(loc) != 2 {
		return domain.ErrInvalidLocation
	}
	return nil
}

func toLocation(loc []float64) *domain.Location {
	if len(loc) != 2 {
		return nil
	}
	return &domain.Location{Lat: loc[0], Lng: loc[1]}
}

func (s *Scenario) resourceType() domain.ResourceType {
	t, _ := domain.ParseResourceType(s.ResourceType)
	return t
}

func (s *Scenario) individual() domain.Individual {
	return domain.Individual{
		ID:       s.Individual.ID,
		Skills:   s.Individual.Skills,
		Location: toLocation(s.Individual.Location),
		Priority: domain.Priority(s.Individual.Priority),
	}
}

func (s *Scenario) resources() []domain.Resource {
	out := make([]domain.Resource, 0, len(s.Resources))
	for _, r := range s.Resources {
		support := domain.DefaultPrioritySupport()
		if r.PrioritySupport != nil {
			support = make([]domain.Priority, 0, len(r.PrioritySupport))
			for _, p := range r.PrioritySupport {
				support = append(support, domain.Priority(p))
			}
		}
		out = append(out, domain.Resource{
			ID:              r.ID,
			Name:            r.Name,
			Location:        toLocation(r.Location),
			Capacity:        r.Capacity,
			Occupied:        r.Occupied,
			RequiredSkills:  r.RequiredSkills,
			PrioritySupport: support,
		})
	}
	return out
}

func (s *Scenario) successProbabilities() map[string]float64 {
	out := make(map[string]float64, len(s.Resources))
	for _, r := range s.Resources {
		out[r.ID] = r.SuccessProbability
	}
	return out
}
