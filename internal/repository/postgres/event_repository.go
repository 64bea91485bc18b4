package postgres

import (
	"context"
	"fmt"

	"aidMatch/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EventRepository appends recommendation and feedback events to postgres.
// Rows are an audit trail only; nothing reads them back into the bandit.
type EventRepository struct {
	DB *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{DB: db}
}

func (r *EventRepository) Migrate(ctx context.Context) error {
	if err := r.DB.WithContext(ctx).AutoMigrate(&domain.RecommendationEvent{}, &domain.FeedbackEvent{}); err != nil {
		return fmt.Errorf("failed to migrate event tables: %w", err)
	}
	return nil
}

func (r *EventRepository) SaveRecommendationEvent(ctx context.Context, event *domain.RecommendationEvent) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if event.ID == "" {
		event.ID = uuid.NewString()
	}

	if err := r.DB.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("failed to save recommendation event: %w", err)
	}

	return nil
}

func (r *EventRepository) SaveFeedbackEvent(ctx context.Context, event *domain.FeedbackEvent) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if event.ID == "" {
		event.ID = uuid.NewString()
	}

	if err := r.DB.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("failed to save feedback event: %w", err)
	}

	return nil
}
