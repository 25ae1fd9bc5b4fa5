package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEvent(t *testing.T) {
	payload := []byte(`{"event":"PAYMENT_RECEIVED","payment":{"id":"pay_001","subscription":"sub_001","value":149.90,"netValue":145.00,"billingType":"PIX","dueDate":"2026-09-10"}}`)

	event, err := ParseEvent(payload)
	require.NoError(t, err)
	assert.Equal(t, EventTypeReceived, event.Type)
	assert.Equal(t, "PAYMENT_RECEIVED", event.RawEvent)
	assert.Equal(t, "pay_001", event.Payment.ID)
	assert.Equal(t, "sub_001", event.Payment.Subscription)
	assert.Equal(t, int64(14990), int64(event.Payment.Value))
	assert.Equal(t, "PIX", event.Payment.BillingType)
	assert.Equal(t, payload, event.Payload)
}

func TestParseEventUnknownName(t *testing.T) {
	event, err := ParseEvent([]byte(`{"event":"PAYMENT_ANTICIPATED","payment":{"id":"pay_001"}}`))
	require.NoError(t, err)
	assert.Equal(t, EventTypeUnknown, event.Type)
	assert.Equal(t, "PAYMENT_ANTICIPATED", event.RawEvent)
}

func TestParseEventMalformed(t *testing.T) {
	cases := []struct {
		name    string
		payload string
	}{
		{"not json", `not json`},
		{"empty object", `{}`},
		{"missing payment", `{"event":"PAYMENT_RECEIVED"}`},
		{"missing payment id", `{"event":"PAYMENT_RECEIVED","payment":{"value":10}}`},
		{"missing event", `{"payment":{"id":"pay_001"}}`},
		{"blank event", `{"event":"  ","payment":{"id":"pay_001"}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseEvent([]byte(tc.payload))
			assert.ErrorIs(t, err, ErrMalformedPayload)
		})
	}
}

func TestParseEventTypeCaseInsensitive(t *testing.T) {
	got, ok := ParseEventType(" payment_overdue ")
	assert.True(t, ok)
	assert.Equal(t, EventTypeOverdue, got)
}
