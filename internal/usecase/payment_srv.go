package usecase

import (
	"context"
	"fmt"

	"storefront/internal/dto/request"
	"storefront/internal/dto/response"
	"storefront/pkg/payment"
	"storefront/pkg/utils"

	"go.uber.org/zap"
)

// The storefront creates intents before checkout completes and fills the
// order id in later; until then the metadata carries this placeholder.
const pendingOrderSentinel = "pending"

type PaymentService interface {
	CreateIntent(ctx context.Context, userID string, req *request.CreateIntentRequest) (*response.CreateIntentResponse, error)
	// HandleWebhook applies a verified provider event. Signature checking
	// happens in the handler before the body is parsed.
	HandleWebhook(ctx context.Context, event *payment.Event) error
}

type paymentService struct {
	repo   WebhookStore
	orders OrderService
	client IntentCreator
	log    *zap.Logger
}

// IntentCreator is the slice of the payment client this service needs.
type IntentCreator interface {
	CreateIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (*payment.Intent, error)
}

// WebhookStore records processed event ids.
type WebhookStore interface {
	MarkProcessed(ctx context.Context, eventID, eventType string) (bool, error)
	Unmark(ctx context.Context, eventID string) error
}

func NewPaymentService(store WebhookStore, orders OrderService, client IntentCreator, log *zap.Logger) PaymentService {
	return &paymentService{
		repo:   store,
		orders: orders,
		client: client,
		log:    log.With(zap.String("service", "payment")),
	}
}

func (s *paymentService) CreateIntent(ctx context.Context, userID string, req *request.CreateIntentRequest) (*response.CreateIntentResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	orderID := pendingOrderSentinel
	if req.OrderID != nil && *req.OrderID != "" {
		orderID = *req.OrderID
	}

	// Provider wants the amount in the smallest currency unit.
	amountCents := int64(req.Amount*100 + 0.5)

	intent, err := s.client.CreateIntent(ctx, amountCents, "usd", map[string]string{
		"user_id":  userID,
		"order_id": orderID,
	})
	if err != nil {
		s.log.Error("Failed to create payment intent",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return nil, fmt.Errorf("create payment intent: %w", err)
	}

	// Only the client secret goes back; the intent id stays server-side.
	return &response.CreateIntentResponse{ClientSecret: intent.ClientSecret}, nil
}

func (s *paymentService) HandleWebhook(ctx context.Context, event *payment.Event) error {
	first, err := s.repo.MarkProcessed(ctx, event.ID, event.Type)
	if err != nil {
		return fmt.Errorf("record webhook event: %w", err)
	}
	if !first {
		s.log.Info("Skipping redelivered webhook event", zap.String("event_id", event.ID))
		return nil
	}

	switch event.Type {
	case payment.EventPaymentSucceeded:
		orderID := event.Data.Object.Metadata["order_id"]
		if orderID == "" || orderID == pendingOrderSentinel {
			s.log.Info("Payment succeeded without a finalized order",
				zap.String("event_id", event.ID),
			)
			return nil
		}
		if err := s.orders.ConfirmPayment(ctx, orderID); err != nil {
			s.log.Error("Failed to confirm payment",
				zap.Error(err),
				zap.String("event_id", event.ID),
				zap.String("order_id", orderID),
			)
			// Give the claim back so the provider's retry is not
			// swallowed by the idempotency check.
			if unmarkErr := s.repo.Unmark(ctx, event.ID); unmarkErr != nil {
				s.log.Error("Failed to release webhook claim", zap.Error(unmarkErr), zap.String("event_id", event.ID))
			}
			return fmt.Errorf("confirm payment for order %s: %w", orderID, err)
		}
		s.log.Info("Order confirmed from webhook",
			zap.String("event_id", event.ID),
			zap.String("order_id", orderID),
		)
	default:
		// Unknown event types are acknowledged so the provider stops
		// retrying them.
		s.log.Info("Ignoring webhook event type",
			zap.String("event_id", event.ID),
			zap.String("event_type", event.Type),
		)
	}

	return nil
}
