package domain

import (
	"context"
	"errors"

	"github.com/turmapay/turmapay/internal/asaas"
)

type SubscribeRequest struct {
	EnrollmentID string `json:"enrollment_id"`
	BillingType  string `json:"billing_type"`
}

type Service interface {
	// Subscribe creates the provider-side recurring charge for an
	// enrollment and mirrors it locally. The acting student must own
	// the enrollment.
	Subscribe(ctx context.Context, req SubscribeRequest) (Subscription, error)
	GetByID(ctx context.Context, id string) (Subscription, error)
	ListByStudent(ctx context.Context) ([]*Subscription, error)

	Pause(ctx context.Context, id string) (Subscription, error)
	Cancel(ctx context.Context, id string) (Subscription, error)
	Reactivate(ctx context.Context, id string) (Subscription, error)
}

// SubscriptionProvider is the slice of the billing provider the
// lifecycle needs. *asaas.Client satisfies it.
type SubscriptionProvider interface {
	CreateSubscription(ctx context.Context, req asaas.SubscriptionRequest) (asaas.Subscription, error)
	UpdateSubscriptionStatus(ctx context.Context, subscriptionID, status string) (asaas.Subscription, error)
	DeleteSubscription(ctx context.Context, subscriptionID string) error
}

var (
	ErrNotFound             = errors.New("subscription_not_found")
	ErrInvalidSubscription  = errors.New("invalid_subscription")
	ErrInvalidEnrollment    = errors.New("invalid_enrollment")
	ErrInvalidBillingType   = errors.New("invalid_billing_type")
	ErrNotOwner             = errors.New("subscription_not_owned")
	ErrMissingStudent       = errors.New("student_context_missing")
	ErrTransitionNotAllowed = errors.New("subscription_transition_not_allowed")
	ErrAlreadySubscribed    = errors.New("enrollment_already_subscribed")
)
