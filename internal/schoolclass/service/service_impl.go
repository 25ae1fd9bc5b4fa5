package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/turmapay/turmapay/internal/clock"
	"github.com/turmapay/turmapay/internal/schoolclass/domain"
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
		log:   p.Log.Named("schoolclass.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateClassRequest) (domain.SchoolClass, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.SchoolClass{}, domain.ErrInvalidName
	}
	if req.MonthlyValue <= 0 {
		return domain.SchoolClass{}, domain.ErrInvalidValue
	}

	now := s.clock.Now()
	class := domain.SchoolClass{
		ID:           s.genID.Generate(),
		Name:         name,
		MonthlyValue: req.MonthlyValue,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Insert(ctx, s.db, &class); err != nil {
		return domain.SchoolClass{}, err
	}
	return class, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.SchoolClass, error) {
	classID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || classID == 0 {
		return domain.SchoolClass{}, domain.ErrInvalidClass
	}

	item, err := s.repo.FindByID(ctx, s.db, classID)
	if err != nil {
		return domain.SchoolClass{}, err
	}
	if item == nil {
		return domain.SchoolClass{}, domain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) List(ctx context.Context) (domain.ListClassResponse, error) {
	items, err := s.repo.List(ctx, s.db, 100)
	if err != nil {
		return domain.ListClassResponse{}, err
	}

	classes := make([]domain.SchoolClass, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		classes = append(classes, *item)
	}
	return domain.ListClassResponse{Classes: classes}, nil
}
