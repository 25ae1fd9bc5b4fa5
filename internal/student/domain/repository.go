package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, student *Student) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Student, error)
	List(ctx context.Context, db *gorm.DB, limit int) ([]*Student, error)
	SetAsaasCustomerID(ctx context.Context, db *gorm.DB, id snowflake.ID, customerID string) error
}
