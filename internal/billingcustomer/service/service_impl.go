package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/turmapay/turmapay/internal/asaas"
	"github.com/turmapay/turmapay/internal/billingcustomer/domain"
	"github.com/turmapay/turmapay/internal/brdoc"
	"github.com/turmapay/turmapay/internal/cache"
	studentdomain "github.com/turmapay/turmapay/internal/student/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	StudentRepo studentdomain.Repository
	Provider    domain.CustomerProvider
	Validations cache.ProfileValidationCache
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	studentRepo studentdomain.Repository
	provider    domain.CustomerProvider
	validations cache.ProfileValidationCache
}

func NewService(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("billingcustomer.service"),
		studentRepo: p.StudentRepo,
		provider:    p.Provider,
		validations: p.Validations,
	}
}

func (s *Service) EnsureCustomer(ctx context.Context, studentID string) (string, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(studentID))
	if err != nil || id == 0 {
		return "", domain.ErrInvalidStudentID
	}

	student, err := s.studentRepo.FindByID(ctx, s.db, id)
	if err != nil {
		return "", err
	}
	if student == nil {
		return "", studentdomain.ErrNotFound
	}

	if student.AsaasCustomerID != nil && *student.AsaasCustomerID != "" {
		return *student.AsaasCustomerID, nil
	}

	// Validate locally before touching the network.
	if !s.validations.IsValid(studentID) {
		if err := brdoc.ValidateProfile(brdoc.Profile{
			Name:  student.Name,
			Email: student.Email,
			CPF:   student.CPF,
			Phone: student.Phone,
		}); err != nil {
			s.validations.Invalidate(studentID)
			return "", err
		}
		s.validations.MarkValid(studentID)
	}

	customer, err := s.resolveAtProvider(ctx, student)
	if err != nil {
		return "", err
	}

	if err := s.studentRepo.SetAsaasCustomerID(ctx, s.db, id, customer.ID); err != nil {
		s.log.Error("failed to persist provider customer id",
			zap.String("student_id", studentID),
			zap.String("asaas_customer_id", customer.ID),
			zap.Error(err),
		)
		return "", fmt.Errorf("%w: %v", domain.ErrPersistFailed, err)
	}

	s.log.Info("provider customer resolved",
		zap.String("student_id", studentID),
		zap.String("asaas_customer_id", customer.ID),
	)
	return customer.ID, nil
}

// defaultPostalCode stands in when a student has no CEP on file; the
// provider requires one to issue boletos.
const defaultPostalCode = "01310-100"

func (s *Service) resolveAtProvider(ctx context.Context, student *studentdomain.Student) (asaas.Customer, error) {
	postalCode := strings.TrimSpace(student.PostalCode)
	if postalCode == "" {
		postalCode = defaultPostalCode
	}

	req := asaas.CustomerRequest{
		Name:              student.Name,
		Email:             student.Email,
		CpfCnpj:           student.CPF,
		MobilePhone:       student.Phone,
		PostalCode:        postalCode,
		ExternalReference: student.ID.String(),
	}

	customer, err := s.provider.CreateCustomer(ctx, req)
	if err == nil {
		return customer, nil
	}
	if !asaas.IsDuplicateCustomer(err) {
		return asaas.Customer{}, err
	}

	// The provider already knows this tax id. Recover the existing record.
	existing, lookupErr := s.provider.FindCustomerByCpf(ctx, student.CPF)
	if lookupErr != nil {
		return asaas.Customer{}, lookupErr
	}
	if existing == nil {
		return asaas.Customer{}, err
	}
	return *existing, nil
}
