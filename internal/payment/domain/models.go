package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// PaymentStatus is the local state of one charge. Paid and cancelled
// are terminal for the overdue path.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusPaid      PaymentStatus = "paid"
	PaymentStatusOverdue   PaymentStatus = "overdue"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

// Payment mirrors one provider charge, keyed by the provider payment id.
type Payment struct {
	ID             snowflake.ID  `json:"id" gorm:"primaryKey"`
	SubscriptionID snowflake.ID  `json:"subscription_id" gorm:"index"`
	EnrollmentID   snowflake.ID  `json:"enrollment_id"`
	StudentID      snowflake.ID  `json:"student_id"`
	AsaasPaymentID string        `json:"asaas_payment_id" gorm:"uniqueIndex;not null"`
	Amount         int64         `json:"amount" gorm:"not null"`
	NetAmount      int64         `json:"net_amount"`
	BillingType    string        `json:"billing_type"`
	Status         PaymentStatus `json:"status" gorm:"type:text;not null"`
	DueDate        *time.Time    `json:"due_date"`
	PaidAt         *time.Time    `json:"paid_at"`
	InvoiceURL     string        `json:"invoice_url"`
	BankSlipURL    string        `json:"bank_slip_url"`
	CreatedAt      time.Time     `json:"created_at" gorm:"not null"`
	UpdatedAt      time.Time     `json:"updated_at" gorm:"not null"`
}

func (Payment) TableName() string { return "payments" }
