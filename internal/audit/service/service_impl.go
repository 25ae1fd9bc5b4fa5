package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/turmapay/turmapay/internal/audit/domain"
	"github.com/turmapay/turmapay/internal/clock"
	"github.com/turmapay/turmapay/pkg/db/pagination"
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
		log:   p.Log.Named("audit.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Record(ctx context.Context, entry domain.Entry) {
	if len(entry.Payload) == 0 {
		entry.Payload = []byte("{}")
	}
	item := domain.WebhookLog{
		ID:             s.genID.Generate(),
		EventType:      entry.EventType,
		AsaasPaymentID: entry.AsaasPaymentID,
		Outcome:        entry.Outcome,
		Detail:         entry.Detail,
		Payload:        entry.Payload,
		CreatedAt:      s.clock.Now(),
	}

	if err := s.repo.Insert(ctx, s.db, &item); err != nil {
		// Audit must never break event handling.
		s.log.Warn("failed to record webhook log",
			zap.String("event_type", entry.EventType),
			zap.String("asaas_payment_id", entry.AsaasPaymentID),
			zap.Error(err),
		)
	}
}

func (s *Service) List(ctx context.Context, filter domain.ListFilter) ([]*domain.WebhookLog, *pagination.PageInfo, error) {
	if filter.PageSize <= 0 {
		filter.PageSize = 10
	}

	items, err := s.repo.List(ctx, s.db, filter)
	if err != nil {
		return nil, nil, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, int32(filter.PageSize), func(item *domain.WebhookLog) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{ID: item.ID.String()})
		if err != nil {
			return ""
		}
		return token
	})

	if len(items) > filter.PageSize {
		items = items[:filter.PageSize]
	}
	return items, pageInfo, nil
}
