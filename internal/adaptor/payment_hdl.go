package adaptor

import (
	"encoding/json"
	"io"
	"net/http"

	"storefront/internal/dto/request"
	"storefront/internal/usecase"
	"storefront/pkg/payment"
	"storefront/pkg/utils"

	"go.uber.org/zap"
)

// Webhook bodies are tiny; anything this large is not from the provider.
const maxWebhookBody = 1 << 20

type PaymentHandler struct {
	service       usecase.PaymentService
	webhookSecret string
	log           *zap.Logger
}

func NewPaymentHandler(service usecase.PaymentService, webhookSecret string, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		service:       service,
		webhookSecret: webhookSecret,
		log:           log.With(zap.String("handler", "payment")),
	}
}

// CreateIntent handles POST /payments/create-intent (protected)
func (h *PaymentHandler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateIntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	intent, err := h.service.CreateIntent(r.Context(), userID.String(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create payment intent")
		return
	}

	utils.ResponseSuccess(w, intent)
}

// Webhook handles POST /payments/webhook. The raw body is read first and
// the signature verified against it before any parsing; an unverified
// payload is never unmarshalled.
func (h *PaymentHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		utils.ResponseBadRequest(w, "Unable to read body", nil)
		return
	}

	sigHeader := r.Header.Get("Stripe-Signature")
	if err := payment.VerifySignature(body, sigHeader, h.webhookSecret, payment.DefaultTolerance); err != nil {
		h.log.Warn("Webhook signature verification failed", zap.Error(err))
		utils.ResponseBadRequest(w, "Invalid signature", nil)
		return
	}

	event, err := payment.ParseEvent(body)
	if err != nil {
		utils.ResponseBadRequest(w, "Malformed event payload", nil)
		return
	}

	if err := h.service.HandleWebhook(r.Context(), event); err != nil {
		// 500 tells the provider to redeliver.
		h.log.Error("Webhook processing failed", zap.Error(err), zap.String("event_id", event.ID))
		utils.ResponseInternalError(w, "Webhook processing failed")
		return
	}

	utils.ResponseSuccess(w, map[string]bool{"received": true})
}
