package domain

import (
	"errors"
	"fmt"
	"strings"
)

type ResourceType string

const (
	ResourceShelter  ResourceType = "shelter"
	ResourceJob      ResourceType = "job"
	ResourceTraining ResourceType = "training"
)

var ErrUnknownResourceType = errors.New("unknown resource type")

func (t ResourceType) Valid() bool {
	switch t {
	case ResourceShelter, ResourceJob, ResourceTraining:
		return true
	}
	return false
}

// ParseResourceType accepts the singular names plus the plural forms used in
// the recommend routes ("shelters", "jobs").
func ParseResourceType(s string) (ResourceType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "shelter", "shelters":
		return ResourceShelter, nil
	case "job", "jobs":
		return ResourceJob, nil
	case "training", "trainings", "program", "programs":
		return ResourceTraining, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownResourceType, s)
	}
}

// Resource is a shelter, job or training program offered to an individual.
// It is supplied fresh with every request and never mutated by the engine.
type Resource struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	Location        *Location      `json:"location,omitempty"`
	Capacity        int            `json:"capacity"`
	Occupied        int            `json:"occupied"`
	RequiredSkills  []string       `json:"required_skills"`
	PrioritySupport []Priority     `json:"priority_support"`
	Attributes      map[string]any `json:"attributes,omitempty"`
}
