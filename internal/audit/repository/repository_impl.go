package repository

import (
	"context"
	"strings"

	"github.com/turmapay/turmapay/internal/audit/domain"
	"github.com/turmapay/turmapay/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, log *domain.WebhookLog) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO webhook_logs (id, event_type, asaas_payment_id, outcome, detail, payload, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		log.ID,
		log.EventType,
		log.AsaasPaymentID,
		log.Outcome,
		log.Detail,
		log.Payload,
		log.CreatedAt,
	).Error
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListFilter) ([]*domain.WebhookLog, error) {
	var (
		conds []string
		args  []interface{}
	)

	if filter.EventType != "" {
		conds = append(conds, "event_type = ?")
		args = append(args, filter.EventType)
	}
	if filter.AsaasPaymentID != "" {
		conds = append(conds, "asaas_payment_id = ?")
		args = append(args, filter.AsaasPaymentID)
	}
	if filter.Outcome != "" {
		conds = append(conds, "outcome = ?")
		args = append(args, filter.Outcome)
	}

	if filter.PageToken != "" {
		cursor, err := pagination.DecodeCursor(filter.PageToken)
		if err != nil {
			return nil, err
		}
		conds = append(conds, "id < ?")
		args = append(args, cursor.ID)
	}

	query := `SELECT id, event_type, asaas_payment_id, outcome, detail, payload, created_at
		 FROM webhook_logs`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY id DESC LIMIT ?"
	args = append(args, filter.PageSize+1)

	var items []*domain.WebhookLog
	if err := db.WithContext(ctx).Raw(query, args...).Scan(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
