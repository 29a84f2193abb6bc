package repository

import (
	"context"
	"fmt"

	"storefront/pkg/database"

	"go.uber.org/zap"
)

type WebhookEventRepository interface {
	// MarkProcessed records the event ID and reports whether this call
	// was the first to see it. Redelivered events return false.
	MarkProcessed(ctx context.Context, eventID, eventType string) (bool, error)
	// Unmark releases a claimed event ID after a downstream failure so
	// the provider's retry gets through.
	Unmark(ctx context.Context, eventID string) error
}

type webhookEventRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewWebhookEventRepository(db database.PgxIface, log *zap.Logger) WebhookEventRepository {
	return &webhookEventRepository{
		db:  db,
		log: log.With(zap.String("repository", "webhook_event")),
	}
}

func (r *webhookEventRepository) MarkProcessed(ctx context.Context, eventID, eventType string) (bool, error) {
	query := `
		INSERT INTO webhook_events (id, event_type, processed_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (id) DO NOTHING
	`

	tag, err := r.db.Exec(ctx, query, eventID, eventType)
	if err != nil {
		r.log.Error("Failed to record webhook event",
			zap.Error(err),
			zap.String("event_id", eventID),
		)
		return false, fmt.Errorf("record webhook event %s: %w", eventID, err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *webhookEventRepository) Unmark(ctx context.Context, eventID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM webhook_events WHERE id = $1`, eventID)
	if err != nil {
		r.log.Error("Failed to release webhook event",
			zap.Error(err),
			zap.String("event_id", eventID),
		)
		return fmt.Errorf("release webhook event %s: %w", eventID, err)
	}

	return nil
}
