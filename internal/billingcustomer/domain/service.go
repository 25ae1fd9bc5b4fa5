package domain

import (
	"context"
	"errors"

	"github.com/turmapay/turmapay/internal/asaas"
)

// CustomerProvider is the slice of the billing provider the resolver
// needs. *asaas.Client satisfies it.
type CustomerProvider interface {
	CreateCustomer(ctx context.Context, req asaas.CustomerRequest) (asaas.Customer, error)
	FindCustomerByCpf(ctx context.Context, cpf string) (*asaas.Customer, error)
}

type Service interface {
	// EnsureCustomer returns the provider customer id for a student,
	// creating the customer at the provider on first use.
	EnsureCustomer(ctx context.Context, studentID string) (string, error)
}

var (
	ErrInvalidStudentID = errors.New("invalid_student_id")
	ErrPersistFailed    = errors.New("customer_persist_failed")
)
