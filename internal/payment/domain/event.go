package domain

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/turmapay/turmapay/internal/asaas"
)

// EventType classifies provider webhook events. Anything the mapper
// does not recognize becomes EventTypeUnknown so new provider events
// never break the receiver.
type EventType string

const (
	EventTypeUnknown   EventType = ""
	EventTypeCreated   EventType = "PAYMENT_CREATED"
	EventTypeReceived  EventType = "PAYMENT_RECEIVED"
	EventTypeConfirmed EventType = "PAYMENT_CONFIRMED"
	EventTypeOverdue   EventType = "PAYMENT_OVERDUE"
	EventTypeDeleted   EventType = "PAYMENT_DELETED"
	EventTypeRefunded  EventType = "PAYMENT_REFUNDED"
	EventTypeRestored  EventType = "PAYMENT_RESTORED"
)

// ParseEventType maps a provider event string to a known type.
func ParseEventType(raw string) (EventType, bool) {
	switch EventType(strings.ToUpper(strings.TrimSpace(raw))) {
	case EventTypeCreated:
		return EventTypeCreated, true
	case EventTypeReceived:
		return EventTypeReceived, true
	case EventTypeConfirmed:
		return EventTypeConfirmed, true
	case EventTypeOverdue:
		return EventTypeOverdue, true
	case EventTypeDeleted:
		return EventTypeDeleted, true
	case EventTypeRefunded:
		return EventTypeRefunded, true
	case EventTypeRestored:
		return EventTypeRestored, true
	default:
		return EventTypeUnknown, false
	}
}

// WebhookEvent is a parsed provider delivery. RawEvent keeps the
// original event string for unknown types.
type WebhookEvent struct {
	Type     EventType
	RawEvent string
	Payment  asaas.Payment
	Payload  []byte
}

var ErrMalformedPayload = errors.New("malformed_webhook_payload")

// ParseEvent decodes a webhook body. A body without a valid JSON
// shape, event name, or payment id is malformed; an unrecognized event
// name is not.
func ParseEvent(payload []byte) (*WebhookEvent, error) {
	var body struct {
		Event   string        `json:"event"`
		Payment asaas.Payment `json:"payment"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return nil, ErrMalformedPayload
	}
	if strings.TrimSpace(body.Event) == "" || strings.TrimSpace(body.Payment.ID) == "" {
		return nil, ErrMalformedPayload
	}

	eventType, _ := ParseEventType(body.Event)
	return &WebhookEvent{
		Type:     eventType,
		RawEvent: strings.TrimSpace(body.Event),
		Payment:  body.Payment,
		Payload:  payload,
	}, nil
}
