package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Enrollment links a student to a class. It stays inactive until the
// first tuition payment is confirmed.
type Enrollment struct {
	ID        snowflake.ID `json:"id" gorm:"primaryKey"`
	StudentID snowflake.ID `json:"student_id" gorm:"not null;index"`
	ClassID   snowflake.ID `json:"class_id" gorm:"not null"`
	Active    bool         `json:"active" gorm:"not null;default:false"`
	CreatedAt time.Time    `json:"created_at" gorm:"not null"`
	UpdatedAt time.Time    `json:"updated_at" gorm:"not null"`
}

func (Enrollment) TableName() string { return "enrollments" }
