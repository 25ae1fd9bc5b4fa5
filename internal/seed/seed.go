// Package seed bootstraps demo rows for local development.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	schoolclassdomain "github.com/turmapay/turmapay/internal/schoolclass/domain"
	studentdomain "github.com/turmapay/turmapay/internal/student/domain"
	"gorm.io/gorm"
)

const (
	demoClassName    = "Turma A"
	demoClassValue   = 14990
	demoStudentName  = "Aluno Demo"
	demoStudentEmail = "aluno.demo@turmapay.dev"
	demoStudentCPF   = "52998224725"
	demoStudentPhone = "11987654321"
)

// EnsureDemoData seeds a demo class and student when the database is
// empty. Safe to call on every startup.
func EnsureDemoData(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureDemoClassTx(ctx, tx, node); err != nil {
			return err
		}
		return ensureDemoStudentTx(ctx, tx, node)
	})
}

func ensureDemoClassTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node) error {
	var count int64
	if err := tx.WithContext(ctx).Raw(`SELECT COUNT(*) FROM classes`).Scan(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	class := schoolclassdomain.SchoolClass{
		ID:           node.Generate(),
		Name:         demoClassName,
		MonthlyValue: demoClassValue,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return tx.WithContext(ctx).Exec(
		`INSERT INTO classes (id, name, monthly_value, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		class.ID,
		class.Name,
		class.MonthlyValue,
		class.CreatedAt,
		class.UpdatedAt,
	).Error
}

func ensureDemoStudentTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node) error {
	var count int64
	if err := tx.WithContext(ctx).Raw(`SELECT COUNT(*) FROM students`).Scan(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	student := studentdomain.Student{
		ID:        node.Generate(),
		Name:      demoStudentName,
		Email:     demoStudentEmail,
		CPF:       demoStudentCPF,
		Phone:     demoStudentPhone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return tx.WithContext(ctx).Exec(
		`INSERT INTO students (id, name, email, cpf, phone, postal_code, address, address_number, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, '', '', '', ?, ?)`,
		student.ID,
		student.Name,
		student.Email,
		student.CPF,
		student.Phone,
		student.CreatedAt,
		student.UpdatedAt,
	).Error
}
