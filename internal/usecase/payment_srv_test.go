package usecase

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/dto/request"
	"storefront/pkg/payment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeWebhookStore struct {
	seen     map[string]bool
	markErr  error
	unmarked []string
}

func newFakeWebhookStore() *fakeWebhookStore {
	return &fakeWebhookStore{seen: map[string]bool{}}
}

func (f *fakeWebhookStore) MarkProcessed(_ context.Context, eventID, _ string) (bool, error) {
	if f.markErr != nil {
		return false, f.markErr
	}
	if f.seen[eventID] {
		return false, nil
	}
	f.seen[eventID] = true
	return true, nil
}

func (f *fakeWebhookStore) Unmark(_ context.Context, eventID string) error {
	delete(f.seen, eventID)
	f.unmarked = append(f.unmarked, eventID)
	return nil
}

type fakeOrderConfirmer struct {
	OrderService
	confirmed []string
	err       error
}

func (f *fakeOrderConfirmer) ConfirmPayment(_ context.Context, orderID string) error {
	if f.err != nil {
		return f.err
	}
	f.confirmed = append(f.confirmed, orderID)
	return nil
}

type fakeIntentCreator struct {
	lastAmount   int64
	lastMetadata map[string]string
	intent       *payment.Intent
	err          error
}

func (f *fakeIntentCreator) CreateIntent(_ context.Context, amount int64, _ string, metadata map[string]string) (*payment.Intent, error) {
	f.lastAmount = amount
	f.lastMetadata = metadata
	if f.err != nil {
		return nil, f.err
	}
	return f.intent, nil
}

func succeededEvent(id, orderID string) *payment.Event {
	event := &payment.Event{ID: id, Type: payment.EventPaymentSucceeded}
	event.Data.Object.Metadata = map[string]string{"order_id": orderID}
	return event
}

func TestCreateIntentCarriesMetadata(t *testing.T) {
	creator := &fakeIntentCreator{intent: &payment.Intent{ClientSecret: "pi_secret"}}
	svc := NewPaymentService(newFakeWebhookStore(), &fakeOrderConfirmer{}, creator, zap.NewNop())

	orderID := "4f2c1d9a-0000-0000-0000-000000000001"
	resp, err := svc.CreateIntent(context.Background(), "user-1", &request.CreateIntentRequest{
		Amount:  49.99,
		OrderID: &orderID,
	})
	require.NoError(t, err)

	assert.Equal(t, "pi_secret", resp.ClientSecret)
	assert.Equal(t, int64(4999), creator.lastAmount)
	assert.Equal(t, "user-1", creator.lastMetadata["user_id"])
	assert.Equal(t, orderID, creator.lastMetadata["order_id"])
}

func TestCreateIntentDefaultsToPendingSentinel(t *testing.T) {
	creator := &fakeIntentCreator{intent: &payment.Intent{ClientSecret: "pi_secret"}}
	svc := NewPaymentService(newFakeWebhookStore(), &fakeOrderConfirmer{}, creator, zap.NewNop())

	_, err := svc.CreateIntent(context.Background(), "user-1", &request.CreateIntentRequest{Amount: 10})
	require.NoError(t, err)

	assert.Equal(t, "pending", creator.lastMetadata["order_id"])
}

func TestCreateIntentRejectsNonPositiveAmount(t *testing.T) {
	svc := NewPaymentService(newFakeWebhookStore(), &fakeOrderConfirmer{}, &fakeIntentCreator{}, zap.NewNop())

	_, err := svc.CreateIntent(context.Background(), "user-1", &request.CreateIntentRequest{Amount: 0})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestHandleWebhookConfirmsOrder(t *testing.T) {
	orders := &fakeOrderConfirmer{}
	svc := NewPaymentService(newFakeWebhookStore(), orders, &fakeIntentCreator{}, zap.NewNop())

	err := svc.HandleWebhook(context.Background(), succeededEvent("evt_1", "order-7"))
	require.NoError(t, err)
	assert.Equal(t, []string{"order-7"}, orders.confirmed)
}

func TestHandleWebhookSkipsPendingSentinel(t *testing.T) {
	orders := &fakeOrderConfirmer{}
	svc := NewPaymentService(newFakeWebhookStore(), orders, &fakeIntentCreator{}, zap.NewNop())

	require.NoError(t, svc.HandleWebhook(context.Background(), succeededEvent("evt_1", "pending")))
	require.NoError(t, svc.HandleWebhook(context.Background(), succeededEvent("evt_2", "")))
	assert.Empty(t, orders.confirmed)
}

func TestHandleWebhookIdempotent(t *testing.T) {
	orders := &fakeOrderConfirmer{}
	svc := NewPaymentService(newFakeWebhookStore(), orders, &fakeIntentCreator{}, zap.NewNop())

	require.NoError(t, svc.HandleWebhook(context.Background(), succeededEvent("evt_1", "order-7")))
	require.NoError(t, svc.HandleWebhook(context.Background(), succeededEvent("evt_1", "order-7")))

	// Redelivery is a no-op
	assert.Equal(t, []string{"order-7"}, orders.confirmed)
}

func TestHandleWebhookAcknowledgesUnknownTypes(t *testing.T) {
	orders := &fakeOrderConfirmer{}
	svc := NewPaymentService(newFakeWebhookStore(), orders, &fakeIntentCreator{}, zap.NewNop())

	event := &payment.Event{ID: "evt_9", Type: "charge.refunded"}
	assert.NoError(t, svc.HandleWebhook(context.Background(), event))
	assert.Empty(t, orders.confirmed)
}

func TestHandleWebhookReleasesClaimOnFailure(t *testing.T) {
	store := newFakeWebhookStore()
	orders := &fakeOrderConfirmer{err: errors.New("db down")}
	svc := NewPaymentService(store, orders, &fakeIntentCreator{}, zap.NewNop())

	err := svc.HandleWebhook(context.Background(), succeededEvent("evt_1", "order-7"))
	require.Error(t, err)
	assert.Equal(t, []string{"evt_1"}, store.unmarked)

	// The provider's retry must get through the idempotency check
	orders.err = nil
	require.NoError(t, svc.HandleWebhook(context.Background(), succeededEvent("evt_1", "order-7")))
	assert.Equal(t, []string{"order-7"}, orders.confirmed)
}
