package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, subscription *Subscription) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Subscription, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id snowflake.ID) (*Subscription, error)
	FindByProviderID(ctx context.Context, db *gorm.DB, asaasSubscriptionID string) (*Subscription, error)
	FindOpenByEnrollmentID(ctx context.Context, db *gorm.DB, enrollmentID snowflake.ID) (*Subscription, error)
	ListByStudentID(ctx context.Context, db *gorm.DB, studentID snowflake.ID) ([]*Subscription, error)
	UpdateStatus(ctx context.Context, db *gorm.DB, subscription *Subscription) error
	// MarkStatusIfNot updates the status unless the row already holds
	// one of the excluded statuses. Reports whether a row changed.
	MarkStatusIfNot(ctx context.Context, db *gorm.DB, id snowflake.ID, status SubscriptionStatus, excluded []SubscriptionStatus) (bool, error)
}
