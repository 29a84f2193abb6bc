package adaptor

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/internal/dto/request"
	"storefront/internal/dto/response"
	"storefront/internal/usecase"
	"storefront/pkg/payment"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

const webhookSecret = "whsec_handler_test"

type fakePaymentService struct {
	handled   []*payment.Event
	handleErr error
}

func (f *fakePaymentService) CreateIntent(_ context.Context, _ string, _ *request.CreateIntentRequest) (*response.CreateIntentResponse, error) {
	return &response.CreateIntentResponse{ClientSecret: "pi_secret"}, nil
}

func (f *fakePaymentService) HandleWebhook(_ context.Context, event *payment.Event) error {
	if f.handleErr != nil {
		return f.handleErr
	}
	f.handled = append(f.handled, event)
	return nil
}

var _ usecase.PaymentService = (*fakePaymentService)(nil)

func webhookRequest(body []byte, sigHeader string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/payments/webhook", bytes.NewReader(body))
	if sigHeader != "" {
		req.Header.Set("Stripe-Signature", sigHeader)
	}
	return req
}

func TestWebhookValidSignature(t *testing.T) {
	svc := &fakePaymentService{}
	handler := NewPaymentHandler(svc, webhookSecret, zap.NewNop())

	body := []byte(`{"id":"evt_1","type":"payment_intent.succeeded","data":{"object":{"metadata":{"order_id":"o1"}}}}`)
	sig := payment.SignatureHeader(body, time.Now().Unix(), webhookSecret)

	rec := httptest.NewRecorder()
	handler.Webhook(rec, webhookRequest(body, sig))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, svc.handled, 1)
	assert.Equal(t, "evt_1", svc.handled[0].ID)
}

func TestWebhookBadSignatureNeverParsed(t *testing.T) {
	svc := &fakePaymentService{}
	handler := NewPaymentHandler(svc, webhookSecret, zap.NewNop())

	body := []byte(`{"id":"evt_1","type":"payment_intent.succeeded"}`)
	sig := payment.SignatureHeader(body, time.Now().Unix(), "whsec_wrong")

	rec := httptest.NewRecorder()
	handler.Webhook(rec, webhookRequest(body, sig))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, svc.handled)
}

func TestWebhookMissingSignature(t *testing.T) {
	svc := &fakePaymentService{}
	handler := NewPaymentHandler(svc, webhookSecret, zap.NewNop())

	rec := httptest.NewRecorder()
	handler.Webhook(rec, webhookRequest([]byte(`{}`), ""))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, svc.handled)
}

func TestWebhookMalformedPayloadAfterValidSignature(t *testing.T) {
	svc := &fakePaymentService{}
	handler := NewPaymentHandler(svc, webhookSecret, zap.NewNop())

	body := []byte("not json")
	sig := payment.SignatureHeader(body, time.Now().Unix(), webhookSecret)

	rec := httptest.NewRecorder()
	handler.Webhook(rec, webhookRequest(body, sig))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWebhookProcessingFailureReturns500(t *testing.T) {
	svc := &fakePaymentService{handleErr: errors.New("db down")}
	handler := NewPaymentHandler(svc, webhookSecret, zap.NewNop())

	body := []byte(`{"id":"evt_1","type":"payment_intent.succeeded","data":{"object":{"metadata":{"order_id":"o1"}}}}`)
	sig := payment.SignatureHeader(body, time.Now().Unix(), webhookSecret)

	rec := httptest.NewRecorder()
	handler.Webhook(rec, webhookRequest(body, sig))

	// 500 tells the provider to redeliver
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
