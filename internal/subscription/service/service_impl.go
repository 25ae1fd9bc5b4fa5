package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/turmapay/turmapay/internal/asaas"
	billingdomain "github.com/turmapay/turmapay/internal/billingcustomer/domain"
	"github.com/turmapay/turmapay/internal/clock"
	"github.com/turmapay/turmapay/internal/config"
	enrollmentdomain "github.com/turmapay/turmapay/internal/enrollment/domain"
	schoolclassdomain "github.com/turmapay/turmapay/internal/schoolclass/domain"
	"github.com/turmapay/turmapay/internal/studentctx"
	"github.com/turmapay/turmapay/internal/subscription/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	providerStatusActive   = "ACTIVE"
	providerStatusInactive = "INACTIVE"

	defaultBillingType = "BOLETO"
	defaultCycle       = "MONTHLY"
	firstDueDateOffset = 7 * 24 * time.Hour
)

var allowedBillingTypes = map[string]bool{
	"BOLETO":      true,
	"PIX":         true,
	"CREDIT_CARD": true,
	"UNDEFINED":   true,
}

type Params struct {
	fx.In

	DB             *gorm.DB
	Log            *zap.Logger
	Cfg            config.Config
	GenID          *snowflake.Node
	Clock          clock.Clock
	Repo           domain.Repository
	EnrollmentRepo enrollmentdomain.Repository
	ClassRepo      schoolclassdomain.Repository
	Provider       domain.SubscriptionProvider
	Billing        billingdomain.Service
}

type Service struct {
	db             *gorm.DB
	log            *zap.Logger
	cfg            config.Config
	genID          *snowflake.Node
	clock          clock.Clock
	repo           domain.Repository
	enrollmentRepo enrollmentdomain.Repository
	classRepo      schoolclassdomain.Repository
	provider       domain.SubscriptionProvider
	billing        billingdomain.Service
}

func NewService(p Params) domain.Service {
	return &Service{
		db:             p.DB,
		log:            p.Log.Named("subscription.service"),
		cfg:            p.Cfg,
		genID:          p.GenID,
		clock:          p.Clock,
		repo:           p.Repo,
		enrollmentRepo: p.EnrollmentRepo,
		classRepo:      p.ClassRepo,
		provider:       p.Provider,
		billing:        p.Billing,
	}
}

func (s *Service) Subscribe(ctx context.Context, req domain.SubscribeRequest) (domain.Subscription, error) {
	studentID, ok := studentctx.StudentIDFromContext(ctx)
	if !ok || studentID == 0 {
		return domain.Subscription{}, domain.ErrMissingStudent
	}

	enrollmentID, err := snowflake.ParseString(strings.TrimSpace(req.EnrollmentID))
	if err != nil || enrollmentID == 0 {
		return domain.Subscription{}, domain.ErrInvalidEnrollment
	}

	billingType := strings.ToUpper(strings.TrimSpace(req.BillingType))
	if billingType == "" {
		billingType = defaultBillingType
	}
	if !allowedBillingTypes[billingType] {
		return domain.Subscription{}, domain.ErrInvalidBillingType
	}

	enrollment, err := s.enrollmentRepo.FindByID(ctx, s.db, enrollmentID)
	if err != nil {
		return domain.Subscription{}, err
	}
	if enrollment == nil {
		return domain.Subscription{}, enrollmentdomain.ErrNotFound
	}
	if enrollment.StudentID != studentID {
		return domain.Subscription{}, domain.ErrNotOwner
	}

	existing, err := s.repo.FindOpenByEnrollmentID(ctx, s.db, enrollmentID)
	if err != nil {
		return domain.Subscription{}, err
	}
	if existing != nil {
		return domain.Subscription{}, domain.ErrAlreadySubscribed
	}

	class, err := s.classRepo.FindByID(ctx, s.db, enrollment.ClassID)
	if err != nil {
		return domain.Subscription{}, err
	}
	if class == nil {
		return domain.Subscription{}, schoolclassdomain.ErrNotFound
	}

	customerID, err := s.billing.EnsureCustomer(ctx, studentID.String())
	if err != nil {
		return domain.Subscription{}, err
	}

	now := s.clock.Now()
	firstDueDate := now.Add(firstDueDateOffset)

	created, err := s.provider.CreateSubscription(ctx, asaas.SubscriptionRequest{
		Customer:          customerID,
		BillingType:       billingType,
		Value:             asaas.Money(class.MonthlyValue),
		NextDueDate:       firstDueDate.Format("2006-01-02"),
		Cycle:             defaultCycle,
		Description:       class.Name,
		ExternalReference: enrollmentID.String(),
		Callback:          s.paymentCallback(),
	})
	if err != nil {
		return domain.Subscription{}, err
	}

	subscription := domain.Subscription{
		ID:                  s.genID.Generate(),
		EnrollmentID:        enrollmentID,
		StudentID:           studentID,
		AsaasSubscriptionID: created.ID,
		AsaasCustomerID:     customerID,
		BillingType:         billingType,
		Value:               class.MonthlyValue,
		NextDueDate:         &firstDueDate,
		Status:              domain.SubscriptionStatusActive,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := s.repo.Insert(ctx, s.db, &subscription); err != nil {
		return domain.Subscription{}, err
	}

	s.log.Info("subscription created",
		zap.String("subscription_id", subscription.ID.String()),
		zap.String("asaas_subscription_id", created.ID),
		zap.String("student_id", studentID.String()),
	)
	return subscription, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Subscription, error) {
	studentID, ok := studentctx.StudentIDFromContext(ctx)
	if !ok || studentID == 0 {
		return domain.Subscription{}, domain.ErrMissingStudent
	}

	subscriptionID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || subscriptionID == 0 {
		return domain.Subscription{}, domain.ErrInvalidSubscription
	}

	item, err := s.repo.FindByID(ctx, s.db, subscriptionID)
	if err != nil {
		return domain.Subscription{}, err
	}
	if item == nil {
		return domain.Subscription{}, domain.ErrNotFound
	}
	if item.StudentID != studentID {
		return domain.Subscription{}, domain.ErrNotOwner
	}
	return *item, nil
}

func (s *Service) ListByStudent(ctx context.Context) ([]*domain.Subscription, error) {
	studentID, ok := studentctx.StudentIDFromContext(ctx)
	if !ok || studentID == 0 {
		return nil, domain.ErrMissingStudent
	}
	return s.repo.ListByStudentID(ctx, s.db, studentID)
}

func (s *Service) Pause(ctx context.Context, id string) (domain.Subscription, error) {
	return s.transition(ctx, id, domain.SubscriptionStatusPaused)
}

func (s *Service) Cancel(ctx context.Context, id string) (domain.Subscription, error) {
	return s.transition(ctx, id, domain.SubscriptionStatusCancelled)
}

func (s *Service) Reactivate(ctx context.Context, id string) (domain.Subscription, error) {
	return s.transition(ctx, id, domain.SubscriptionStatusActive)
}

// transition locks the row, validates the move, applies it at the
// provider, and mirrors it locally. Provider failures roll everything
// back.
func (s *Service) transition(ctx context.Context, id string, target domain.SubscriptionStatus) (domain.Subscription, error) {
	studentID, ok := studentctx.StudentIDFromContext(ctx)
	if !ok || studentID == 0 {
		return domain.Subscription{}, domain.ErrMissingStudent
	}

	subscriptionID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || subscriptionID == 0 {
		return domain.Subscription{}, domain.ErrInvalidSubscription
	}

	var updated domain.Subscription
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sub, err := s.repo.FindByIDForUpdate(ctx, tx, subscriptionID)
		if err != nil {
			return err
		}
		if sub == nil {
			return domain.ErrNotFound
		}
		if sub.StudentID != studentID {
			return domain.ErrNotOwner
		}
		if !isTransitionAllowed(sub.Status, target) {
			return domain.ErrTransitionNotAllowed
		}

		now := s.clock.Now()
		from := sub.Status

		switch target {
		case domain.SubscriptionStatusPaused:
			if _, err := s.provider.UpdateSubscriptionStatus(ctx, sub.AsaasSubscriptionID, providerStatusInactive); err != nil {
				return err
			}
			sub.PausedAt = &now

		case domain.SubscriptionStatusCancelled:
			if err := s.provider.DeleteSubscription(ctx, sub.AsaasSubscriptionID); err != nil {
				return err
			}
			sub.CancelledAt = &now
			if _, err := s.enrollmentRepo.SetActive(ctx, tx, sub.EnrollmentID, false); err != nil {
				return err
			}

		case domain.SubscriptionStatusActive:
			if from == domain.SubscriptionStatusCancelled {
				// The provider record was deleted on cancel. Create a
				// fresh one and point the local row at it.
				nextDueDate := now.Add(firstDueDateOffset)
				created, err := s.provider.CreateSubscription(ctx, asaas.SubscriptionRequest{
					Customer:          sub.AsaasCustomerID,
					BillingType:       sub.BillingType,
					Value:             asaas.Money(sub.Value),
					NextDueDate:       nextDueDate.Format("2006-01-02"),
					Cycle:             defaultCycle,
					ExternalReference: sub.EnrollmentID.String(),
					Callback:          s.paymentCallback(),
				})
				if err != nil {
					return err
				}
				sub.AsaasSubscriptionID = created.ID
				sub.NextDueDate = &nextDueDate
			} else {
				if _, err := s.provider.UpdateSubscriptionStatus(ctx, sub.AsaasSubscriptionID, providerStatusActive); err != nil {
					return err
				}
			}
			sub.ReactivatedAt = &now
			if _, err := s.enrollmentRepo.SetActive(ctx, tx, sub.EnrollmentID, true); err != nil {
				return err
			}
		}

		sub.Status = target
		sub.UpdatedAt = now
		if err := s.repo.UpdateStatus(ctx, tx, sub); err != nil {
			return err
		}

		s.log.Info("subscription transitioned",
			zap.String("subscription_id", sub.ID.String()),
			zap.String("from", string(from)),
			zap.String("to", string(target)),
		)
		updated = *sub
		return nil
	})
	if err != nil {
		return domain.Subscription{}, err
	}
	return updated, nil
}

// paymentCallback points the provider's hosted checkout back at the
// site after a successful payment. Nil when no site URL is configured.
func (s *Service) paymentCallback() *asaas.Callback {
	if s.cfg.SiteURL == "" {
		return nil
	}
	return &asaas.Callback{
		SuccessURL:   s.cfg.SiteURL + "/billing/return",
		AutoRedirect: true,
	}
}

func isTransitionAllowed(from, to domain.SubscriptionStatus) bool {
	switch to {
	case domain.SubscriptionStatusPaused:
		return from == domain.SubscriptionStatusActive
	case domain.SubscriptionStatusCancelled:
		return from == domain.SubscriptionStatusActive ||
			from == domain.SubscriptionStatusPaused ||
			from == domain.SubscriptionStatusOverdue
	case domain.SubscriptionStatusActive:
		return from == domain.SubscriptionStatusPaused ||
			from == domain.SubscriptionStatusOverdue ||
			from == domain.SubscriptionStatusCancelled
	default:
		return false
	}
}
