package entity

import "time"

// WebhookEvent records processor event ids that have already been applied.
// The provider delivers at least once; a recorded id makes redelivery a
// no-op.
type WebhookEvent struct {
	ID          string    `db:"id"` // provider event id
	EventType   string    `db:"event_type"`
	ProcessedAt time.Time `db:"processed_at"`
}
