package rest

import (
	"encoding/json"

	"aidMatch/domain"
)

// ResourceRequest is one candidate as posted by clients. Unknown keys are
// kept in Attributes for scoring and the audit log; resource_details in the
// response echoes the posted object unchanged.
type ResourceRequest struct {
	ID              string             `json:"id"`
	Name            string             `json:"name"`
	Location        *domain.Location   `json:"location"`
	Capacity        int                `json:"capacity" validate:"gte=0"`
	Occupied        int                `json:"occupied" validate:"gte=0"`
	RequiredSkills  []string           `json:"required_skills"`
	PrioritySupport *[]domain.Priority `json:"priority_support"`
	Attributes      map[string]any     `json:"-"`

	raw json.RawMessage
}

var knownResourceKeys = map[string]struct{}{
	"id":               {},
	"name":             {},
	"location":         {},
	"capacity":         {},
	"occupied":         {},
	"required_skills":  {},
	"priority_support": {},
}

func (r *ResourceRequest) UnmarshalJSON(data []byte) error {
	type plain ResourceRequest
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for k, v := range raw {
		if _, known := knownResourceKeys[k]; known {
			continue
		}
		if p.Attributes == nil {
			p.Attributes = make(map[string]any)
		}
		p.Attributes[k] = v
	}

	p.raw = append(json.RawMessage(nil), data...)
	*r = ResourceRequest(p)
	return nil
}

// toResource applies the default priority support (low, medium, high) when
// the key is absent. An explicit empty list is kept and scores neutral.
func (r ResourceRequest) toResource() domain.Resource {
	support := domain.DefaultPrioritySupport()
	if r.PrioritySupport != nil {
		support = *r.PrioritySupport
	}

	return domain.Resource{
		ID:              r.ID,
		Name:            r.Name,
		Location:        r.Location,
		Capacity:        r.Capacity,
		Occupied:        r.Occupied,
		RequiredSkills:  r.RequiredSkills,
		PrioritySupport: support,
		Attributes:      r.Attributes,
	}
}

func toResources(reqs []ResourceRequest) []domain.Resource {
	out := make([]domain.Resource, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, r.toResource())
	}
	return out
}

// RecommendationItem is a recommendation as served over HTTP.
type RecommendationItem struct {
	ResourceID      string              `json:"resource_id"`
	ResourceName    string              `json:"resource_name"`
	ResourceType    domain.ResourceType `json:"resource_type"`
	Score           float64             `json:"score"`
	Explanation     domain.Explanation  `json:"explanation"`
	ResourceDetails json.RawMessage     `json:"resource_details"`
}

// toRecommendationItems pairs each recommendation with the object the client
// posted for that id. The first posted object wins for duplicate ids.
func toRecommendationItems(recs []domain.Recommendation, reqs []ResourceRequest) ([]RecommendationItem, error) {
	posted := make(map[string]json.RawMessage, len(reqs))
	for _, r := range reqs {
		if _, seen := posted[r.ID]; !seen && len(r.raw) > 0 {
			posted[r.ID] = r.raw
		}
	}

	out := make([]RecommendationItem, 0, len(recs))
	for _, rec := range recs {
		details, ok := posted[rec.ResourceID]
		if !ok {
			var err error
			if details, err = json.Marshal(rec.ResourceDetails); err != nil {
				return nil, err
			}
		}
		out = append(out, RecommendationItem{
			ResourceID:      rec.ResourceID,
			ResourceName:    rec.ResourceName,
			ResourceType:    rec.ResourceType,
			Score:           rec.Score,
			Explanation:     rec.Explanation,
			ResourceDetails: details,
		})
	}
	return out, nil
}
