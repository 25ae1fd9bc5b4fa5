package domain

import (
	"context"
	"errors"
)

type CreateStudentRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	CPF           string `json:"cpf"`
	Phone         string `json:"phone"`
	PostalCode    string `json:"postal_code"`
	Address       string `json:"address"`
	AddressNumber string `json:"address_number"`
}

type ListStudentResponse struct {
	Students []Student `json:"students"`
}

type Service interface {
	Create(ctx context.Context, req CreateStudentRequest) (Student, error)
	GetByID(ctx context.Context, id string) (Student, error)
	List(ctx context.Context) (ListStudentResponse, error)
}

var (
	ErrNotFound       = errors.New("student_not_found")
	ErrInvalidStudent = errors.New("invalid_student")
	ErrInvalidName    = errors.New("invalid_name")
	ErrInvalidEmail   = errors.New("invalid_email")
)
