package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/turmapay/turmapay/internal/clock"
	"github.com/turmapay/turmapay/internal/enrollment/domain"
	schoolclassdomain "github.com/turmapay/turmapay/internal/schoolclass/domain"
	studentdomain "github.com/turmapay/turmapay/internal/student/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Clock       clock.Clock
	Repo        domain.Repository
	StudentRepo studentdomain.Repository
	ClassRepo   schoolclassdomain.Repository
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	clock       clock.Clock
	repo        domain.Repository
	studentRepo studentdomain.Repository
	classRepo   schoolclassdomain.Repository
}

func NewService(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("enrollment.service"),
		genID:       p.GenID,
		clock:       p.Clock,
		repo:        p.Repo,
		studentRepo: p.StudentRepo,
		classRepo:   p.ClassRepo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateEnrollmentRequest) (domain.Enrollment, error) {
	studentID, err := parseID(req.StudentID)
	if err != nil {
		return domain.Enrollment{}, domain.ErrInvalidStudent
	}
	classID, err := parseID(req.ClassID)
	if err != nil {
		return domain.Enrollment{}, domain.ErrInvalidClass
	}

	student, err := s.studentRepo.FindByID(ctx, s.db, studentID)
	if err != nil {
		return domain.Enrollment{}, err
	}
	if student == nil {
		return domain.Enrollment{}, studentdomain.ErrNotFound
	}

	class, err := s.classRepo.FindByID(ctx, s.db, classID)
	if err != nil {
		return domain.Enrollment{}, err
	}
	if class == nil {
		return domain.Enrollment{}, schoolclassdomain.ErrNotFound
	}

	now := s.clock.Now()
	enrollment := domain.Enrollment{
		ID:        s.genID.Generate(),
		StudentID: studentID,
		ClassID:   classID,
		Active:    false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, s.db, &enrollment); err != nil {
		return domain.Enrollment{}, err
	}

	s.log.Info("enrollment created",
		zap.String("enrollment_id", enrollment.ID.String()),
		zap.String("student_id", studentID.String()),
	)
	return enrollment, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Enrollment, error) {
	enrollmentID, err := parseID(id)
	if err != nil {
		return domain.Enrollment{}, domain.ErrInvalidEnrollment
	}

	item, err := s.repo.FindByID(ctx, s.db, enrollmentID)
	if err != nil {
		return domain.Enrollment{}, err
	}
	if item == nil {
		return domain.Enrollment{}, domain.ErrNotFound
	}
	return *item, nil
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidEnrollment
	}
	return id, nil
}
