package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// SchoolClass is the tuition source for an enrollment.
type SchoolClass struct {
	ID           snowflake.ID `json:"id" gorm:"primaryKey"`
	Name         string       `json:"name" gorm:"type:text;not null"`
	MonthlyValue int64        `json:"monthly_value" gorm:"not null"`
	CreatedAt    time.Time    `json:"created_at" gorm:"not null"`
	UpdatedAt    time.Time    `json:"updated_at" gorm:"not null"`
}

func (SchoolClass) TableName() string { return "classes" }
