package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/turmapay/turmapay/internal/brdoc"
	"github.com/turmapay/turmapay/internal/clock"
	"github.com/turmapay/turmapay/internal/student/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
}

func NewService(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("student.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateStudentRequest) (domain.Student, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Student{}, domain.ErrInvalidName
	}
	email := strings.TrimSpace(req.Email)
	if email == "" || !strings.Contains(email, "@") {
		return domain.Student{}, domain.ErrInvalidEmail
	}

	now := s.clock.Now()
	student := domain.Student{
		ID:            s.genID.Generate(),
		Name:          name,
		Email:         email,
		CPF:           brdoc.Digits(req.CPF),
		Phone:         brdoc.NormalizePhone(req.Phone),
		PostalCode:    brdoc.Digits(req.PostalCode),
		Address:       strings.TrimSpace(req.Address),
		AddressNumber: strings.TrimSpace(req.AddressNumber),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Insert(ctx, s.db, &student); err != nil {
		return domain.Student{}, err
	}

	s.log.Info("student created", zap.String("student_id", student.ID.String()))
	return student, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Student, error) {
	studentID, err := parseID(id)
	if err != nil {
		return domain.Student{}, domain.ErrInvalidStudent
	}

	item, err := s.repo.FindByID(ctx, s.db, studentID)
	if err != nil {
		return domain.Student{}, err
	}
	if item == nil {
		return domain.Student{}, domain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) List(ctx context.Context) (domain.ListStudentResponse, error) {
	items, err := s.repo.List(ctx, s.db, 100)
	if err != nil {
		return domain.ListStudentResponse{}, err
	}

	students := make([]domain.Student, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		students = append(students, *item)
	}
	return domain.ListStudentResponse{Students: students}, nil
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidStudent
	}
	return id, nil
}
