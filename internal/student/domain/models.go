package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Student carries the billing profile the payment provider requires.
type Student struct {
	ID              snowflake.ID `json:"id" gorm:"primaryKey"`
	Name            string       `json:"name" gorm:"type:text;not null"`
	Email           string       `json:"email" gorm:"type:text;not null"`
	CPF             string       `json:"cpf" gorm:"column:cpf;type:text;not null"`
	Phone           string       `json:"phone" gorm:"type:text;not null"`
	PostalCode      string       `json:"postal_code" gorm:"type:text;not null"`
	Address         string       `json:"address" gorm:"type:text;not null"`
	AddressNumber   string       `json:"address_number" gorm:"type:text;not null"`
	AsaasCustomerID *string      `json:"asaas_customer_id" gorm:"type:text;uniqueIndex"`
	CreatedAt       time.Time    `json:"created_at" gorm:"not null"`
	UpdatedAt       time.Time    `json:"updated_at" gorm:"not null"`
}

func (Student) TableName() string { return "students" }
