package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	auditdomain "github.com/turmapay/turmapay/internal/audit/domain"
	"github.com/turmapay/turmapay/internal/clock"
	enrollmentdomain "github.com/turmapay/turmapay/internal/enrollment/domain"
	obsmetrics "github.com/turmapay/turmapay/internal/observability/metrics"
	"github.com/turmapay/turmapay/internal/payment/domain"
	"github.com/turmapay/turmapay/internal/ratelimit"
	"github.com/turmapay/turmapay/internal/studentctx"
	subscriptiondomain "github.com/turmapay/turmapay/internal/subscription/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const paymentLockTTL = 30 * time.Second

type Params struct {
	fx.In

	DB               *gorm.DB
	Log              *zap.Logger
	GenID            *snowflake.Node
	Clock            clock.Clock
	Repo             domain.Repository
	SubscriptionRepo subscriptiondomain.Repository
	EnrollmentRepo   enrollmentdomain.Repository
	AuditSvc         auditdomain.Service
	Locker           *ratelimit.Locker   `optional:"true"`
	Metrics          *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	db               *gorm.DB
	log              *zap.Logger
	genID            *snowflake.Node
	clock            clock.Clock
	repo             domain.Repository
	subscriptionRepo subscriptiondomain.Repository
	enrollmentRepo   enrollmentdomain.Repository
	auditSvc         auditdomain.Service
	locker           *ratelimit.Locker
	metrics          *obsmetrics.Metrics
}

func NewService(p Params) domain.Service {
	return &Service{
		db:               p.DB,
		log:              p.Log.Named("payment.service"),
		genID:            p.GenID,
		clock:            p.Clock,
		repo:             p.Repo,
		subscriptionRepo: p.SubscriptionRepo,
		enrollmentRepo:   p.EnrollmentRepo,
		auditSvc:         p.AuditSvc,
		locker:           p.Locker,
		metrics:          p.Metrics,
	}
}

func (s *Service) ProcessEvent(ctx context.Context, event *domain.WebhookEvent) (domain.Outcome, error) {
	if event == nil {
		return domain.OutcomeFailed, domain.ErrMalformedPayload
	}

	if s.locker != nil {
		key := "webhook:payment:" + event.Payment.ID
		token, locked, err := s.locker.TryLock(ctx, key, paymentLockTTL)
		if err != nil {
			s.log.Warn("payment lock unavailable, relying on guarded updates",
				zap.String("asaas_payment_id", event.Payment.ID),
				zap.Error(err),
			)
		} else if locked {
			defer func() {
				if err := s.locker.Release(ctx, key, token); err != nil {
					s.log.Warn("failed to release payment lock", zap.Error(err))
				}
			}()
		}
	}

	outcome, detail, err := s.apply(ctx, event)
	if err != nil {
		outcome = domain.OutcomeFailed
		detail = err.Error()
	}

	s.auditSvc.Record(ctx, auditdomain.Entry{
		EventType:      event.RawEvent,
		AsaasPaymentID: event.Payment.ID,
		Outcome:        string(outcome),
		Detail:         detail,
		Payload:        event.Payload,
	})
	s.metrics.RecordWebhookEvent(event.RawEvent, string(outcome))

	return outcome, err
}

func (s *Service) ListBySubscription(ctx context.Context, subscriptionID string) ([]*domain.Payment, error) {
	studentID, ok := studentctx.StudentIDFromContext(ctx)
	if !ok || studentID == 0 {
		return nil, subscriptiondomain.ErrMissingStudent
	}

	id, err := snowflake.ParseString(strings.TrimSpace(subscriptionID))
	if err != nil || id == 0 {
		return nil, subscriptiondomain.ErrInvalidSubscription
	}

	subscription, err := s.subscriptionRepo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if subscription == nil {
		return nil, subscriptiondomain.ErrNotFound
	}
	if subscription.StudentID != studentID {
		return nil, subscriptiondomain.ErrNotOwner
	}

	return s.repo.ListBySubscription(ctx, s.db, id)
}

func (s *Service) apply(ctx context.Context, event *domain.WebhookEvent) (domain.Outcome, string, error) {
	switch event.Type {
	case domain.EventTypeCreated:
		return s.applyCreated(ctx, event)
	case domain.EventTypeReceived, domain.EventTypeConfirmed:
		return s.applyPaid(ctx, event)
	case domain.EventTypeOverdue:
		return s.applyOverdue(ctx, event)
	case domain.EventTypeDeleted, domain.EventTypeRefunded:
		return s.applyCancelled(ctx, event)
	case domain.EventTypeRestored:
		return s.applyRestored(ctx, event)
	default:
		s.log.Info("ignoring unknown webhook event",
			zap.String("event", event.RawEvent),
			zap.String("asaas_payment_id", event.Payment.ID),
		)
		return domain.OutcomeIgnored, "unknown event type", nil
	}
}

func (s *Service) applyCreated(ctx context.Context, event *domain.WebhookEvent) (domain.Outcome, string, error) {
	subscription, err := s.subscriptionRepo.FindByProviderID(ctx, s.db, event.Payment.Subscription)
	if err != nil {
		return domain.OutcomeFailed, "", err
	}
	if subscription == nil {
		s.log.Warn("webhook references unknown subscription",
			zap.String("event", event.RawEvent),
			zap.String("asaas_subscription_id", event.Payment.Subscription),
			zap.String("asaas_payment_id", event.Payment.ID),
		)
		return domain.OutcomeSubscriptionNotFound, "", nil
	}

	now := s.clock.Now()
	payment := domain.Payment{
		ID:             s.genID.Generate(),
		SubscriptionID: subscription.ID,
		EnrollmentID:   subscription.EnrollmentID,
		StudentID:      subscription.StudentID,
		AsaasPaymentID: event.Payment.ID,
		Amount:         int64(event.Payment.Value),
		NetAmount:      int64(event.Payment.NetValue),
		BillingType:    event.Payment.BillingType,
		Status:         domain.PaymentStatusPending,
		DueDate:        parseDate(event.Payment.DueDate),
		InvoiceURL:     event.Payment.InvoiceURL,
		BankSlipURL:    event.Payment.BankSlipURL,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	inserted, err := s.repo.InsertIgnoreDuplicate(ctx, s.db, &payment)
	if err != nil {
		return domain.OutcomeFailed, "", err
	}
	if !inserted {
		return domain.OutcomeProcessed, "duplicate delivery", nil
	}
	return domain.OutcomeProcessed, "", nil
}

func (s *Service) applyPaid(ctx context.Context, event *domain.WebhookEvent) (domain.Outcome, string, error) {
	payment, err := s.repo.FindByProviderID(ctx, s.db, event.Payment.ID)
	if err != nil {
		return domain.OutcomeFailed, "", err
	}
	if payment == nil {
		return s.paymentNotFound(event), "", nil
	}

	paidAt := s.clock.Now()
	if parsed := parseDate(event.Payment.PaymentDate); parsed != nil {
		paidAt = *parsed
	}

	changed, err := s.repo.MarkPaid(ctx, s.db, event.Payment.ID, paidAt, event.Payment.BillingType, int64(event.Payment.NetValue))
	if err != nil {
		return domain.OutcomeFailed, "", err
	}
	if !changed {
		// The row kept a terminal state, so none of the activation side
		// effects may run. A cancelled payment never activates anything.
		if payment.Status == domain.PaymentStatusCancelled {
			return domain.OutcomeProcessed, "payment already settled", nil
		}
		return domain.OutcomeProcessed, "duplicate delivery", nil
	}

	// Activation is a guarded flip, safe to re-apply on duplicate
	// deliveries.
	activated, err := s.enrollmentRepo.SetActive(ctx, s.db, payment.EnrollmentID, true)
	if err != nil {
		return domain.OutcomeFailed, "", err
	}
	if _, err := s.subscriptionRepo.MarkStatusIfNot(ctx, s.db, payment.SubscriptionID,
		subscriptiondomain.SubscriptionStatusActive,
		[]subscriptiondomain.SubscriptionStatus{subscriptiondomain.SubscriptionStatusCancelled},
	); err != nil {
		return domain.OutcomeFailed, "", err
	}

	detail := ""
	if activated {
		paidCount, err := s.repo.CountPaidBySubscription(ctx, s.db, payment.SubscriptionID)
		if err == nil && paidCount == 1 {
			detail = "first_payment"
		}
		s.log.Info("enrollment activated by payment",
			zap.String("enrollment_id", payment.EnrollmentID.String()),
			zap.String("asaas_payment_id", event.Payment.ID),
		)
	}
	return domain.OutcomeProcessed, detail, nil
}

func (s *Service) applyOverdue(ctx context.Context, event *domain.WebhookEvent) (domain.Outcome, string, error) {
	payment, err := s.repo.FindByProviderID(ctx, s.db, event.Payment.ID)
	if err != nil {
		return domain.OutcomeFailed, "", err
	}
	if payment == nil {
		return s.paymentNotFound(event), "", nil
	}

	changed, err := s.repo.MarkOverdue(ctx, s.db, event.Payment.ID)
	if err != nil {
		return domain.OutcomeFailed, "", err
	}
	if !changed {
		// Terminal states win regardless of delivery order.
		return domain.OutcomeProcessed, "payment already settled", nil
	}

	if _, err := s.subscriptionRepo.MarkStatusIfNot(ctx, s.db, payment.SubscriptionID,
		subscriptiondomain.SubscriptionStatusOverdue,
		[]subscriptiondomain.SubscriptionStatus{subscriptiondomain.SubscriptionStatusCancelled},
	); err != nil {
		return domain.OutcomeFailed, "", err
	}
	return domain.OutcomeProcessed, "", nil
}

func (s *Service) applyCancelled(ctx context.Context, event *domain.WebhookEvent) (domain.Outcome, string, error) {
	payment, err := s.repo.FindByProviderID(ctx, s.db, event.Payment.ID)
	if err != nil {
		return domain.OutcomeFailed, "", err
	}
	if payment == nil {
		return s.paymentNotFound(event), "", nil
	}

	changed, err := s.repo.MarkCancelled(ctx, s.db, event.Payment.ID)
	if err != nil {
		return domain.OutcomeFailed, "", err
	}
	if !changed {
		return domain.OutcomeProcessed, "duplicate delivery", nil
	}
	return domain.OutcomeProcessed, "", nil
}

func (s *Service) applyRestored(ctx context.Context, event *domain.WebhookEvent) (domain.Outcome, string, error) {
	payment, err := s.repo.FindByProviderID(ctx, s.db, event.Payment.ID)
	if err != nil {
		return domain.OutcomeFailed, "", err
	}
	if payment == nil {
		return s.paymentNotFound(event), "", nil
	}

	changed, err := s.repo.MarkRestored(ctx, s.db, event.Payment.ID)
	if err != nil {
		return domain.OutcomeFailed, "", err
	}
	if !changed {
		return domain.OutcomeIgnored, "payment not overdue", nil
	}
	return domain.OutcomeProcessed, "", nil
}

func (s *Service) paymentNotFound(event *domain.WebhookEvent) domain.Outcome {
	s.log.Warn("webhook references unknown payment",
		zap.String("event", event.RawEvent),
		zap.String("asaas_payment_id", event.Payment.ID),
	)
	return domain.OutcomePaymentNotFound
}

func parseDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil
	}
	return &parsed
}
