package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/turmapay/turmapay/internal/audit/domain"
	"github.com/turmapay/turmapay/internal/audit/repository"
	"github.com/turmapay/turmapay/internal/clock"
	"github.com/turmapay/turmapay/pkg/db/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (domain.Service, *gorm.DB, *clock.FakeClock) {
	t.Helper()

	dsn := fmt.Sprintf("file:memdb_audit_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Exec(`CREATE TABLE webhook_logs (
		id BIGINT PRIMARY KEY,
		event_type TEXT NOT NULL,
		asaas_payment_id TEXT NOT NULL DEFAULT '',
		outcome TEXT NOT NULL,
		detail TEXT NOT NULL DEFAULT '',
		payload TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`).Error)

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	clk := clock.NewFakeClock(time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC))

	svc := NewService(Params{
		DB:    db,
		Log:   zaptest.NewLogger(t),
		GenID: node,
		Clock: clk,
		Repo:  repository.Provide(),
	})
	return svc, db, clk
}

func TestRecordAndList(t *testing.T) {
	svc, _, clk := newTestService(t)
	ctx := context.Background()

	svc.Record(ctx, domain.Entry{
		EventType:      "PAYMENT_RECEIVED",
		AsaasPaymentID: "pay_001",
		Outcome:        "processed",
		Detail:         "first_payment",
		Payload:        []byte(`{"event":"PAYMENT_RECEIVED"}`),
	})
	svc.Record(ctx, domain.Entry{
		EventType:      "PAYMENT_RECEIVED",
		AsaasPaymentID: "pay_002",
		Outcome:        "payment_not_found",
	})
	clk.Advance(time.Minute)
	svc.Record(ctx, domain.Entry{
		EventType:      "PAYMENT_OVERDUE",
		AsaasPaymentID: "pay_001",
		Outcome:        "processed",
	})

	items, pageInfo, err := svc.List(ctx, domain.ListFilter{})
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.False(t, pageInfo.HasMore)
	// Newest first.
	assert.Equal(t, "PAYMENT_OVERDUE", items[0].EventType)
	assert.True(t, items[0].CreatedAt.After(items[2].CreatedAt))

	items, _, err = svc.List(ctx, domain.ListFilter{EventType: "PAYMENT_RECEIVED"})
	require.NoError(t, err)
	assert.Len(t, items, 2)

	items, _, err = svc.List(ctx, domain.ListFilter{AsaasPaymentID: "pay_001"})
	require.NoError(t, err)
	assert.Len(t, items, 2)

	items, _, err = svc.List(ctx, domain.ListFilter{Outcome: "payment_not_found"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "pay_002", items[0].AsaasPaymentID)
	// Missing payloads are stored as an empty object.
	assert.Equal(t, `{}`, string(items[0].Payload))
}

func TestRecordSwallowsRepositoryFailure(t *testing.T) {
	svc, db, _ := newTestService(t)
	require.NoError(t, db.Exec(`DROP TABLE webhook_logs`).Error)

	// Must not panic or surface the failure.
	svc.Record(context.Background(), domain.Entry{
		EventType: "PAYMENT_RECEIVED",
		Outcome:   "processed",
	})
}

func TestListPagination(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		svc.Record(ctx, domain.Entry{
			EventType:      "PAYMENT_CREATED",
			AsaasPaymentID: fmt.Sprintf("pay_%03d", i),
			Outcome:        "processed",
		})
	}

	first, pageInfo, err := svc.List(ctx, domain.ListFilter{
		Pagination: pagination.Pagination{PageSize: 10},
	})
	require.NoError(t, err)
	assert.Len(t, first, 10)
	require.True(t, pageInfo.HasMore)
	require.NotEmpty(t, pageInfo.NextPageToken)

	second, pageInfo, err := svc.List(ctx, domain.ListFilter{
		Pagination: pagination.Pagination{PageSize: 10, PageToken: pageInfo.NextPageToken},
	})
	require.NoError(t, err)
	assert.Len(t, second, 5)
	assert.False(t, pageInfo.HasMore)

	seen := map[string]bool{}
	for _, item := range append(first, second...) {
		assert.False(t, seen[item.AsaasPaymentID], "duplicate %s across pages", item.AsaasPaymentID)
		seen[item.AsaasPaymentID] = true
	}
}
