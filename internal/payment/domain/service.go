package domain

import "context"

// Outcome says what a webhook event did. It is recorded on the audit
// trail and reported to metrics; the receiver acknowledges the
// delivery either way.
type Outcome string

const (
	OutcomeProcessed            Outcome = "processed"
	OutcomeIgnored              Outcome = "ignored"
	OutcomePaymentNotFound      Outcome = "payment_not_found"
	OutcomeSubscriptionNotFound Outcome = "subscription_not_found"
	OutcomeFailed               Outcome = "failed"
)

type Service interface {
	// ProcessEvent reconciles one provider delivery. Missing local
	// rows are an outcome, not an error; the error return is for
	// infrastructure failures only.
	ProcessEvent(ctx context.Context, event *WebhookEvent) (Outcome, error)
	// ListBySubscription returns the payment history of a subscription
	// owned by the acting student.
	ListBySubscription(ctx context.Context, subscriptionID string) ([]*Payment, error)
}
