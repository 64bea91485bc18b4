package domain

// Explanation holds the rounded sub-scores behind a composite score.
type Explanation struct {
	LocationScore     float64 `json:"location_score"`
	SkillMatchScore   float64 `json:"skill_match_score"`
	AvailabilityScore float64 `json:"availability_score"`
	PriorityScore     float64 `json:"priority_score"`
	HistoricalScore   float64 `json:"historical_score"`
	CompositeScore    float64 `json:"composite_score"`
}

type Recommendation struct {
	ResourceID      string       `json:"resource_id"`
	ResourceName    string       `json:"resource_name"`
	ResourceType    ResourceType `json:"resource_type"`
	Score           float64      `json:"score"`
	Explanation     Explanation  `json:"explanation"`
	ResourceDetails Resource     `json:"resource_details"`
}
