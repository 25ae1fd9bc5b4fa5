package domain

import (
	"context"

	"github.com/turmapay/turmapay/pkg/db/pagination"
	"gorm.io/gorm"
)

// Entry is what reconciliation hands to the sink. The sink assigns the
// id and timestamp.
type Entry struct {
	EventType      string
	AsaasPaymentID string
	Outcome        string
	Detail         string
	Payload        []byte
}

type ListFilter struct {
	EventType      string `form:"event_type"`
	AsaasPaymentID string `form:"asaas_payment_id"`
	Outcome        string `form:"outcome"`

	pagination.Pagination
}

type Service interface {
	// Record appends a log entry. It never returns an error: a failed
	// write is logged and dropped so it cannot break event handling.
	Record(ctx context.Context, entry Entry)
	List(ctx context.Context, filter ListFilter) ([]*WebhookLog, *pagination.PageInfo, error)
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, log *WebhookLog) error
	List(ctx context.Context, db *gorm.DB, filter ListFilter) ([]*WebhookLog, error)
}
