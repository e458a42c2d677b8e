package repository

import (
	"context"
	"time"

	"github.com/endurancy/fiscal-api/internal/domain/entity"
	domainRepo "github.com/endurancy/fiscal-api/internal/domain/repository"
	"gorm.io/gorm"
)

type outboxRepository struct {
	db *gorm.DB
}

// NewOutboxRepository creates a new outbox repository
func NewOutboxRepository(db *gorm.DB) domainRepo.OutboxRepository {
	return &outboxRepository{db: db}
}

func (r *outboxRepository) Append(ctx context.Context, event *entity.OutboxEvent) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}
	return dbFrom(ctx, r.db).WithContext(ctx).Create(event).Error
}

func (r *outboxRepository) PendingBatch(ctx context.Context, limit int) ([]entity.OutboxEvent, error) {
	var events []entity.OutboxEvent
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Where("published_at IS NULL").
		Order("id ASC").
		Limit(limit).
		Find(&events).Error
	return events, err
}

func (r *outboxRepository) MarkPublished(ctx context.Context, eventID int64) error {
	return dbFrom(ctx, r.db).WithContext(ctx).
		Model(&entity.OutboxEvent{}).
		Where("id = ?", eventID).
		Update("published_at", time.Now()).Error
}
