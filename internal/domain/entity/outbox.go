package entity

import (
	"time"

	"github.com/google/uuid"
)

// Event types appended to the outbox by the document service.
const (
	EventDocumentEmitted  = "fiscal.document.emitted"
	EventDocumentCanceled = "fiscal.document.canceled"
)

// OutboxEvent is a pending integration event. Rows are appended in the same
// transaction as the state change they describe and published asynchronously.
type OutboxEvent struct {
	ID          int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	EventType   string     `gorm:"size:100;not null" json:"event_type"`
	AggregateID uuid.UUID  `gorm:"type:uuid;not null" json:"aggregate_id"`
	Payload     string     `gorm:"type:jsonb;not null" json:"payload"`
	OccurredAt  time.Time  `gorm:"not null" json:"occurred_at"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

// TableName returns the table name for the OutboxEvent model
func (OutboxEvent) TableName() string {
	return "outbox_events"
}
