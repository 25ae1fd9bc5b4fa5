package repository

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/turmapay/turmapay/internal/subscription/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

const subscriptionColumns = `id, enrollment_id, student_id, asaas_subscription_id, asaas_customer_id,
	 billing_type, value, next_due_date, status, paused_at, cancelled_at, reactivated_at,
	 created_at, updated_at`

func (r *repo) Insert(ctx context.Context, db *gorm.DB, subscription *domain.Subscription) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO subscriptions (`+subscriptionColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		subscription.ID,
		subscription.EnrollmentID,
		subscription.StudentID,
		subscription.AsaasSubscriptionID,
		subscription.AsaasCustomerID,
		subscription.BillingType,
		subscription.Value,
		subscription.NextDueDate,
		subscription.Status,
		subscription.PausedAt,
		subscription.CancelledAt,
		subscription.ReactivatedAt,
		subscription.CreatedAt,
		subscription.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Subscription, error) {
	return r.findOne(ctx, db, `WHERE id = ?`, id)
}

func (r *repo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id snowflake.ID) (*domain.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE id = ? LIMIT 1`
	if tx.Dialector.Name() != "sqlite" {
		query += " FOR UPDATE"
	}

	var item domain.Subscription
	if err := tx.WithContext(ctx).Raw(query, id).Scan(&item).Error; err != nil {
		return nil, err
	}
	if item.ID == 0 {
		return nil, nil
	}
	return &item, nil
}

func (r *repo) FindByProviderID(ctx context.Context, db *gorm.DB, asaasSubscriptionID string) (*domain.Subscription, error) {
	asaasSubscriptionID = strings.TrimSpace(asaasSubscriptionID)
	if asaasSubscriptionID == "" {
		return nil, nil
	}
	return r.findOne(ctx, db, `WHERE asaas_subscription_id = ?`, asaasSubscriptionID)
}

func (r *repo) FindOpenByEnrollmentID(ctx context.Context, db *gorm.DB, enrollmentID snowflake.ID) (*domain.Subscription, error) {
	return r.findOne(ctx, db, `WHERE enrollment_id = ? AND status <> ?`, enrollmentID, domain.SubscriptionStatusCancelled)
}

func (r *repo) ListByStudentID(ctx context.Context, db *gorm.DB, studentID snowflake.ID) ([]*domain.Subscription, error) {
	var items []*domain.Subscription
	err := db.WithContext(ctx).Raw(
		`SELECT `+subscriptionColumns+`
		 FROM subscriptions
		 WHERE student_id = ?
		 ORDER BY created_at DESC`,
		studentID,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) UpdateStatus(ctx context.Context, db *gorm.DB, subscription *domain.Subscription) error {
	return db.WithContext(ctx).Exec(
		`UPDATE subscriptions
		 SET status = ?, paused_at = ?, cancelled_at = ?, reactivated_at = ?,
		     asaas_subscription_id = ?, updated_at = ?
		 WHERE id = ?`,
		subscription.Status,
		subscription.PausedAt,
		subscription.CancelledAt,
		subscription.ReactivatedAt,
		subscription.AsaasSubscriptionID,
		subscription.UpdatedAt,
		subscription.ID,
	).Error
}

func (r *repo) MarkStatusIfNot(ctx context.Context, db *gorm.DB, id snowflake.ID, status domain.SubscriptionStatus, excluded []domain.SubscriptionStatus) (bool, error) {
	query := `UPDATE subscriptions
		 SET status = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND status <> ?`
	args := []interface{}{status, id, status}
	for _, s := range excluded {
		query += " AND status <> ?"
		args = append(args, s)
	}

	res := db.WithContext(ctx).Exec(query, args...)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repo) findOne(ctx context.Context, db *gorm.DB, where string, args ...interface{}) (*domain.Subscription, error) {
	var item domain.Subscription
	err := db.WithContext(ctx).Raw(
		`SELECT `+subscriptionColumns+` FROM subscriptions `+where+` LIMIT 1`,
		args...,
	).Scan(&item).Error
	if err != nil {
		return nil, err
	}
	if item.ID == 0 {
		return nil, nil
	}
	return &item, nil
}
