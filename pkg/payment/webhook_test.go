package payment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "whsec_testing"

func TestVerifySignatureRoundTrip(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"payment_intent.succeeded"}`)
	header := SignatureHeader(payload, time.Now().Unix(), testSecret)

	err := VerifySignature(payload, header, testSecret, DefaultTolerance)
	assert.NoError(t, err)
}

func TestVerifySignatureWrongSecret(t *testing.T) {
	payload := []byte(`{"id":"evt_1"}`)
	header := SignatureHeader(payload, time.Now().Unix(), "whsec_other")

	err := VerifySignature(payload, header, testSecret, DefaultTolerance)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerifySignatureTamperedBody(t *testing.T) {
	payload := []byte(`{"id":"evt_1","amount":100}`)
	header := SignatureHeader(payload, time.Now().Unix(), testSecret)

	tampered := []byte(`{"id":"evt_1","amount":99999}`)
	err := VerifySignature(tampered, header, testSecret, DefaultTolerance)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerifySignatureStaleTimestamp(t *testing.T) {
	payload := []byte(`{"id":"evt_1"}`)
	stale := time.Now().Add(-10 * time.Minute).Unix()
	header := SignatureHeader(payload, stale, testSecret)

	err := VerifySignature(payload, header, testSecret, DefaultTolerance)
	assert.ErrorIs(t, err, ErrTimestampTooOld)

	// Tolerance of zero disables the age check
	err = VerifySignature(payload, header, testSecret, 0)
	assert.NoError(t, err)
}

func TestVerifySignatureMalformedHeaders(t *testing.T) {
	payload := []byte(`{}`)

	for _, header := range []string{
		"",
		"v1=abcdef",
		"t=notanumber,v1=abcdef",
		"t=123",
	} {
		err := VerifySignature(payload, header, testSecret, DefaultTolerance)
		assert.ErrorIs(t, err, ErrInvalidSignature, "header %q", header)
	}
}

func TestParseEvent(t *testing.T) {
	payload := []byte(`{
		"id": "evt_42",
		"type": "payment_intent.succeeded",
		"data": {
			"object": {
				"id": "pi_7",
				"amount": 12345,
				"metadata": {"order_id": "abc", "user_id": "u1"}
			}
		}
	}`)

	event, err := ParseEvent(payload)
	require.NoError(t, err)
	assert.Equal(t, "evt_42", event.ID)
	assert.Equal(t, EventPaymentSucceeded, event.Type)
	assert.Equal(t, int64(12345), event.Data.Object.Amount)
	assert.Equal(t, "abc", event.Data.Object.Metadata["order_id"])

	_, err = ParseEvent([]byte("not json"))
	assert.Error(t, err)
}
