package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type CreateClassRequest struct {
	Name         string `json:"name"`
	MonthlyValue int64  `json:"monthly_value"`
}

type ListClassResponse struct {
	Classes []SchoolClass `json:"classes"`
}

type Service interface {
	Create(ctx context.Context, req CreateClassRequest) (SchoolClass, error)
	GetByID(ctx context.Context, id string) (SchoolClass, error)
	List(ctx context.Context) (ListClassResponse, error)
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, class *SchoolClass) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*SchoolClass, error)
	List(ctx context.Context, db *gorm.DB, limit int) ([]*SchoolClass, error)
}

var (
	ErrNotFound     = errors.New("class_not_found")
	ErrInvalidClass = errors.New("invalid_class")
	ErrInvalidName  = errors.New("invalid_class_name")
	ErrInvalidValue = errors.New("invalid_monthly_value")
)
