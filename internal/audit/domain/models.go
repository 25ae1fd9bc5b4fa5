package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// WebhookLog is an append-only record of a processed provider event.
type WebhookLog struct {
	ID             snowflake.ID   `json:"id" gorm:"primaryKey"`
	EventType      string         `json:"event_type" gorm:"not null"`
	AsaasPaymentID string         `json:"asaas_payment_id"`
	Outcome        string         `json:"outcome" gorm:"not null"`
	Detail         string         `json:"detail,omitempty"`
	Payload        datatypes.JSON `json:"payload"`
	CreatedAt      time.Time      `json:"created_at" gorm:"not null"`
}

func (WebhookLog) TableName() string { return "webhook_logs" }
