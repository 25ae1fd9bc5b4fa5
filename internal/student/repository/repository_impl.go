package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/turmapay/turmapay/internal/student/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, student *domain.Student) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO students (
			id, name, email, cpf, phone, postal_code, address, address_number,
			asaas_customer_id, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		student.ID,
		student.Name,
		student.Email,
		student.CPF,
		student.Phone,
		student.PostalCode,
		student.Address,
		student.AddressNumber,
		student.AsaasCustomerID,
		student.CreatedAt,
		student.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Student, error) {
	var item domain.Student
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, email, cpf, phone, postal_code, address, address_number,
			asaas_customer_id, created_at, updated_at
		 FROM students
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

func (r *repo) List(ctx context.Context, db *gorm.DB, limit int) ([]*domain.Student, error) {
	if limit <= 0 {
		limit = 100
	}
	var items []*domain.Student
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, email, cpf, phone, postal_code, address, address_number,
			asaas_customer_id, created_at, updated_at
		 FROM students
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) SetAsaasCustomerID(ctx context.Context, db *gorm.DB, id snowflake.ID, customerID string) error {
	return db.WithContext(ctx).Exec(
		`UPDATE students
		 SET asaas_customer_id = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		customerID,
		id,
	).Error
}
