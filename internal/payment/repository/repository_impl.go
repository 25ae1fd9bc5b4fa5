package repository

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/turmapay/turmapay/internal/payment/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

const paymentColumns = `id, subscription_id, enrollment_id, student_id, asaas_payment_id,
	 amount, net_amount, billing_type, status, due_date, paid_at,
	 invoice_url, bank_slip_url, created_at, updated_at`

func (r *repo) InsertIgnoreDuplicate(ctx context.Context, db *gorm.DB, payment *domain.Payment) (bool, error) {
	res := db.WithContext(ctx).Exec(
		`INSERT INTO payments (`+paymentColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (asaas_payment_id) DO NOTHING`,
		payment.ID,
		payment.SubscriptionID,
		payment.EnrollmentID,
		payment.StudentID,
		payment.AsaasPaymentID,
		payment.Amount,
		payment.NetAmount,
		payment.BillingType,
		payment.Status,
		payment.DueDate,
		payment.PaidAt,
		payment.InvoiceURL,
		payment.BankSlipURL,
		payment.CreatedAt,
		payment.UpdatedAt,
	)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repo) FindByProviderID(ctx context.Context, db *gorm.DB, asaasPaymentID string) (*domain.Payment, error) {
	asaasPaymentID = strings.TrimSpace(asaasPaymentID)
	if asaasPaymentID == "" {
		return nil, nil
	}

	var item domain.Payment
	err := db.WithContext(ctx).Raw(
		`SELECT `+paymentColumns+`
		 FROM payments
		 WHERE asaas_payment_id = ?
		 LIMIT 1`,
		asaasPaymentID,
	).Scan(&item).Error
	if err != nil {
		return nil, err
	}
	if item.ID == 0 {
		return nil, nil
	}
	return &item, nil
}

func (r *repo) MarkPaid(ctx context.Context, db *gorm.DB, asaasPaymentID string, paidAt time.Time, billingType string, netAmount int64) (bool, error) {
	res := db.WithContext(ctx).Exec(
		`UPDATE payments
		 SET status = ?, paid_at = ?, billing_type = ?, net_amount = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE asaas_payment_id = ? AND status NOT IN (?, ?)`,
		domain.PaymentStatusPaid,
		paidAt,
		billingType,
		netAmount,
		asaasPaymentID,
		domain.PaymentStatusPaid,
		domain.PaymentStatusCancelled,
	)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repo) MarkOverdue(ctx context.Context, db *gorm.DB, asaasPaymentID string) (bool, error) {
	return r.markStatus(ctx, db, asaasPaymentID, domain.PaymentStatusOverdue,
		`AND status NOT IN (?, ?)`, domain.PaymentStatusPaid, domain.PaymentStatusCancelled)
}

func (r *repo) MarkCancelled(ctx context.Context, db *gorm.DB, asaasPaymentID string) (bool, error) {
	return r.markStatus(ctx, db, asaasPaymentID, domain.PaymentStatusCancelled,
		`AND status <> ?`, domain.PaymentStatusCancelled)
}

func (r *repo) MarkRestored(ctx context.Context, db *gorm.DB, asaasPaymentID string) (bool, error) {
	return r.markStatus(ctx, db, asaasPaymentID, domain.PaymentStatusPending,
		`AND status = ?`, domain.PaymentStatusOverdue)
}

func (r *repo) markStatus(ctx context.Context, db *gorm.DB, asaasPaymentID string, status domain.PaymentStatus, guard string, guardArgs ...interface{}) (bool, error) {
	args := append([]interface{}{status, asaasPaymentID}, guardArgs...)
	res := db.WithContext(ctx).Exec(
		`UPDATE payments
		 SET status = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE asaas_payment_id = ? `+guard,
		args...,
	)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repo) CountPaidBySubscription(ctx context.Context, db *gorm.DB, subscriptionID snowflake.ID) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Raw(
		`SELECT COUNT(*)
		 FROM payments
		 WHERE subscription_id = ? AND status = ?`,
		subscriptionID,
		domain.PaymentStatusPaid,
	).Scan(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repo) ListBySubscription(ctx context.Context, db *gorm.DB, subscriptionID snowflake.ID) ([]*domain.Payment, error) {
	var items []*domain.Payment
	err := db.WithContext(ctx).Raw(
		`SELECT `+paymentColumns+`
		 FROM payments
		 WHERE subscription_id = ?
		 ORDER BY created_at DESC`,
		subscriptionID,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
