package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	// InsertIgnoreDuplicate inserts a payment row, ignoring an existing
	// row with the same provider payment id. Reports whether a row was
	// written.
	InsertIgnoreDuplicate(ctx context.Context, db *gorm.DB, payment *Payment) (bool, error)
	FindByProviderID(ctx context.Context, db *gorm.DB, asaasPaymentID string) (*Payment, error)
	// MarkPaid sets paid unless the row is already paid or cancelled.
	MarkPaid(ctx context.Context, db *gorm.DB, asaasPaymentID string, paidAt time.Time, billingType string, netAmount int64) (bool, error)
	// MarkOverdue sets overdue unless the row reached a terminal state.
	MarkOverdue(ctx context.Context, db *gorm.DB, asaasPaymentID string) (bool, error)
	// MarkCancelled sets cancelled from any other state.
	MarkCancelled(ctx context.Context, db *gorm.DB, asaasPaymentID string) (bool, error)
	// MarkRestored sets pending, but only from overdue.
	MarkRestored(ctx context.Context, db *gorm.DB, asaasPaymentID string) (bool, error)
	CountPaidBySubscription(ctx context.Context, db *gorm.DB, subscriptionID snowflake.ID) (int64, error)
	ListBySubscription(ctx context.Context, db *gorm.DB, subscriptionID snowflake.ID) ([]*Payment, error)
}
