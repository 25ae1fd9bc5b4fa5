package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/turmapay/turmapay/internal/enrollment/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, enrollment *domain.Enrollment) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO enrollments (id, student_id, class_id, active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		enrollment.ID,
		enrollment.StudentID,
		enrollment.ClassID,
		enrollment.Active,
		enrollment.CreatedAt,
		enrollment.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Enrollment, error) {
	var item domain.Enrollment
	err := db.WithContext(ctx).Raw(
		`SELECT id, student_id, class_id, active, created_at, updated_at
		 FROM enrollments
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

func (r *repo) SetActive(ctx context.Context, db *gorm.DB, id snowflake.ID, active bool) (bool, error) {
	res := db.WithContext(ctx).Exec(
		`UPDATE enrollments
		 SET active = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND active = ?`,
		active,
		id,
		!active,
	)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
