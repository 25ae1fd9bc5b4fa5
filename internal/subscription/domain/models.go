package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// SubscriptionStatus is the local lifecycle state of a recurring
// tuition charge.
type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusPaused    SubscriptionStatus = "paused"
	SubscriptionStatusOverdue   SubscriptionStatus = "overdue"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
)

// Subscription mirrors the provider-side recurring charge for one
// enrollment.
type Subscription struct {
	ID                  snowflake.ID       `json:"id" gorm:"primaryKey"`
	EnrollmentID        snowflake.ID       `json:"enrollment_id" gorm:"not null"`
	StudentID           snowflake.ID       `json:"student_id" gorm:"not null;index"`
	AsaasSubscriptionID string             `json:"asaas_subscription_id" gorm:"uniqueIndex;not null"`
	AsaasCustomerID     string             `json:"asaas_customer_id" gorm:"not null"`
	BillingType         string             `json:"billing_type" gorm:"not null"`
	Value               int64              `json:"value" gorm:"not null"`
	NextDueDate         *time.Time         `json:"next_due_date"`
	Status              SubscriptionStatus `json:"status" gorm:"type:text;not null"`
	PausedAt            *time.Time         `json:"paused_at"`
	CancelledAt         *time.Time         `json:"cancelled_at"`
	ReactivatedAt       *time.Time         `json:"reactivated_at"`
	CreatedAt           time.Time          `json:"created_at" gorm:"not null"`
	UpdatedAt           time.Time          `json:"updated_at" gorm:"not null"`
}

func (Subscription) TableName() string { return "subscriptions" }
