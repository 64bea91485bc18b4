package domain

import (
	"time"

	"gorm.io/datatypes"
)

// RecommendationEvent is one served recommendation list, kept as an
// append-only audit row. It is never read back into bandit state.
type RecommendationEvent struct {
	ID           string         `gorm:"column:id;primaryKey" json:"id"`
	TraceID      string         `gorm:"column:trace_id" json:"trace_id"`
	IndividualID string         `gorm:"column:individual_id;not null" json:"individual_id"`
	ResourceType ResourceType   `gorm:"column:resource_type;not null" json:"resource_type"`
	TopK         int            `gorm:"column:top_k" json:"top_k"`
	UseBandit    bool           `gorm:"column:use_bandit" json:"use_bandit"`
	Items        datatypes.JSON `gorm:"column:items;type:jsonb" json:"items"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (RecommendationEvent) TableName() string {
	return "recommendation_events"
}

type FeedbackEvent struct {
	ID           string            `gorm:"column:id;primaryKey" json:"id"`
	TraceID      string            `gorm:"column:trace_id" json:"trace_id"`
	ResourceType ResourceType      `gorm:"column:resource_type;not null" json:"resource_type"`
	ResourceID   string            `gorm:"column:resource_id;not null" json:"resource_id"`
	Reward       float64           `gorm:"column:reward;not null" json:"reward"`
	Context      datatypes.JSONMap `gorm:"column:context;type:jsonb" json:"context"`
	CreatedAt    time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (FeedbackEvent) TableName() string {
	return "feedback_events"
}

// TypeStats aggregates bandit learning for one resource type.
type TypeStats struct {
	TotalInteractions int     `json:"total_interactions"`
	UniqueResources   int     `json:"unique_resources"`
	AvgReward         float64 `json:"avg_reward"`
}

type Statistics struct {
	BanditStats   map[ResourceType]TypeStats `json:"bandit_stats"`
	Epsilon       float64                    `json:"epsilon"`
	ABTestVariant string                     `json:"ab_test_variant"`
}
