package repository

import (
	"context"

	"github.com/endurancy/fiscal-api/internal/domain/entity"
)

// OutboxRepository defines the interface for pending integration events
type OutboxRepository interface {
	// Append stores a new event (inside the caller's transaction when one is active)
	Append(ctx context.Context, event *entity.OutboxEvent) error
	// PendingBatch returns up to limit unpublished events, oldest first
	PendingBatch(ctx context.Context, limit int) ([]entity.OutboxEvent, error)
	// MarkPublished records that an event was delivered to the broker
	MarkPublished(ctx context.Context, eventID int64) error
}
