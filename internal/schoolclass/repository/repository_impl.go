package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/turmapay/turmapay/internal/schoolclass/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, class *domain.SchoolClass) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO classes (id, name, monthly_value, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		class.ID,
		class.Name,
		class.MonthlyValue,
		class.CreatedAt,
		class.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.SchoolClass, error) {
	var item domain.SchoolClass
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, monthly_value, created_at, updated_at
		 FROM classes
		 WHERE id = ?
		 LIMIT 1`,
		id,
	).Scan(&item).Error
	if err != nil {
		return nil, err
	}
	if item.ID == 0 {
		return nil, nil
	}
	return &item, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, limit int) ([]*domain.SchoolClass, error) {
	if limit <= 0 {
		limit = 100
	}
	var items []*domain.SchoolClass
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, monthly_value, created_at, updated_at
		 FROM classes
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
