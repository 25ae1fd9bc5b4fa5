package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type CreateEnrollmentRequest struct {
	StudentID string `json:"student_id"`
	ClassID   string `json:"class_id"`
}

type Service interface {
	Create(ctx context.Context, req CreateEnrollmentRequest) (Enrollment, error)
	GetByID(ctx context.Context, id string) (Enrollment, error)
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, enrollment *Enrollment) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Enrollment, error)
	// SetActive flips the active flag and reports whether a row actually
	// changed, so callers can tell a first activation from a replay.
	SetActive(ctx context.Context, db *gorm.DB, id snowflake.ID, active bool) (bool, error)
}

var (
	ErrNotFound          = errors.New("enrollment_not_found")
	ErrInvalidEnrollment = errors.New("invalid_enrollment")
	ErrInvalidStudent    = errors.New("invalid_student")
	ErrInvalidClass      = errors.New("invalid_class")
)
