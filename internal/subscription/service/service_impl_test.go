package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/turmapay/turmapay/internal/asaas"
	"github.com/turmapay/turmapay/internal/clock"
	"github.com/turmapay/turmapay/internal/config"
	enrollmentrepository "github.com/turmapay/turmapay/internal/enrollment/repository"
	schoolclassrepository "github.com/turmapay/turmapay/internal/schoolclass/repository"
	"github.com/turmapay/turmapay/internal/studentctx"
	"github.com/turmapay/turmapay/internal/subscription/domain"
	"github.com/turmapay/turmapay/internal/subscription/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

type fakeProvider struct {
	createCalls int
	statusCalls []string
	deleteCalls int
	nextID      int
	lastReq     asaas.SubscriptionRequest
}

func (p *fakeProvider) CreateSubscription(_ context.Context, req asaas.SubscriptionRequest) (asaas.Subscription, error) {
	p.createCalls++
	p.nextID++
	p.lastReq = req
	return asaas.Subscription{ID: fmt.Sprintf("sub_%03d", p.nextID), Status: "ACTIVE"}, nil
}

func (p *fakeProvider) UpdateSubscriptionStatus(_ context.Context, subscriptionID, status string) (asaas.Subscription, error) {
	p.statusCalls = append(p.statusCalls, status)
	return asaas.Subscription{ID: subscriptionID, Status: status}, nil
}

func (p *fakeProvider) DeleteSubscription(_ context.Context, _ string) error {
	p.deleteCalls++
	return nil
}

type fakeBilling struct {
	customerID string
}

func (b *fakeBilling) EnsureCustomer(_ context.Context, _ string) (string, error) {
	return b.customerID, nil
}

type lifecycleFixture struct {
	svc          *Service
	db           *gorm.DB
	provider     *fakeProvider
	node         *snowflake.Node
	studentID    snowflake.ID
	classID      snowflake.ID
	enrollmentID snowflake.ID
}

func newLifecycleFixture(t *testing.T) *lifecycleFixture {
	t.Helper()

	dsn := fmt.Sprintf("file:memdb_sub_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	for _, stmt := range []string{
		`CREATE TABLE classes (
			id BIGINT PRIMARY KEY,
			name TEXT NOT NULL,
			monthly_value BIGINT NOT NULL,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE enrollments (
			id BIGINT PRIMARY KEY,
			student_id BIGINT NOT NULL,
			class_id BIGINT NOT NULL,
			active BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE subscriptions (
			id BIGINT PRIMARY KEY,
			enrollment_id BIGINT NOT NULL,
			student_id BIGINT NOT NULL,
			asaas_subscription_id TEXT NOT NULL UNIQUE,
			asaas_customer_id TEXT NOT NULL,
			billing_type TEXT NOT NULL,
			value BIGINT NOT NULL,
			next_due_date DATE,
			status TEXT NOT NULL,
			paused_at TIMESTAMP,
			cancelled_at TIMESTAMP,
			reactivated_at TIMESTAMP,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
	} {
		require.NoError(t, db.Exec(stmt).Error)
	}

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	provider := &fakeProvider{}

	svc := &Service{
		db:             db,
		log:            zaptest.NewLogger(t),
		cfg:            config.Config{SiteURL: "https://app.turmapay.dev"},
		genID:          node,
		clock:          clock.NewSystemClock(),
		repo:           repository.Provide(),
		enrollmentRepo: enrollmentrepository.Provide(),
		classRepo:      schoolclassrepository.Provide(),
		provider:       provider,
		billing:        &fakeBilling{customerID: "cus_001"},
	}

	f := &lifecycleFixture{
		svc:          svc,
		db:           db,
		provider:     provider,
		node:         node,
		studentID:    node.Generate(),
		classID:      node.Generate(),
		enrollmentID: node.Generate(),
	}

	now := time.Now().UTC()
	require.NoError(t, db.Exec(
		`INSERT INTO classes (id, name, monthly_value, created_at, updated_at)
		 VALUES (?, 'Turma A', 14990, ?, ?)`,
		f.classID, now, now,
	).Error)
	require.NoError(t, db.Exec(
		`INSERT INTO enrollments (id, student_id, class_id, active, created_at, updated_at)
		 VALUES (?, ?, ?, TRUE, ?, ?)`,
		f.enrollmentID, f.studentID, f.classID, now, now,
	).Error)

	return f
}

func (f *lifecycleFixture) ctx() context.Context {
	return studentctx.WithStudentID(context.Background(), int64(f.studentID))
}

func (f *lifecycleFixture) subscribe(t *testing.T) domain.Subscription {
	t.Helper()
	sub, err := f.svc.Subscribe(f.ctx(), domain.SubscribeRequest{EnrollmentID: f.enrollmentID.String()})
	require.NoError(t, err)
	return sub
}

func (f *lifecycleFixture) enrollmentActive(t *testing.T) bool {
	t.Helper()
	var active bool
	require.NoError(t, f.db.Raw(
		`SELECT active FROM enrollments WHERE id = ?`, f.enrollmentID,
	).Scan(&active).Error)
	return active
}

func TestSubscribe(t *testing.T) {
	f := newLifecycleFixture(t)

	sub := f.subscribe(t)
	assert.Equal(t, domain.SubscriptionStatusActive, sub.Status)
	assert.Equal(t, "sub_001", sub.AsaasSubscriptionID)
	assert.Equal(t, "cus_001", sub.AsaasCustomerID)
	assert.Equal(t, "BOLETO", sub.BillingType)
	assert.Equal(t, int64(14990), sub.Value)
	assert.Equal(t, 1, f.provider.createCalls)
	require.NotNil(t, f.provider.lastReq.Callback)
	assert.Equal(t, "https://app.turmapay.dev/billing/return", f.provider.lastReq.Callback.SuccessURL)
	assert.True(t, f.provider.lastReq.Callback.AutoRedirect)

	var count int64
	require.NoError(t, f.db.Raw(`SELECT COUNT(*) FROM subscriptions`).Scan(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSubscribeMissingStudentContext(t *testing.T) {
	f := newLifecycleFixture(t)

	_, err := f.svc.Subscribe(context.Background(), domain.SubscribeRequest{EnrollmentID: f.enrollmentID.String()})
	assert.ErrorIs(t, err, domain.ErrMissingStudent)
	assert.Equal(t, 0, f.provider.createCalls)
}

func TestSubscribeNotOwner(t *testing.T) {
	f := newLifecycleFixture(t)

	other := studentctx.WithStudentID(context.Background(), int64(f.node.Generate()))
	_, err := f.svc.Subscribe(other, domain.SubscribeRequest{EnrollmentID: f.enrollmentID.String()})
	assert.ErrorIs(t, err, domain.ErrNotOwner)
	assert.Equal(t, 0, f.provider.createCalls)
}

func TestSubscribeTwice(t *testing.T) {
	f := newLifecycleFixture(t)

	f.subscribe(t)
	_, err := f.svc.Subscribe(f.ctx(), domain.SubscribeRequest{EnrollmentID: f.enrollmentID.String()})
	assert.ErrorIs(t, err, domain.ErrAlreadySubscribed)
	assert.Equal(t, 1, f.provider.createCalls)
}

func TestSubscribeRejectsBillingType(t *testing.T) {
	f := newLifecycleFixture(t)

	_, err := f.svc.Subscribe(f.ctx(), domain.SubscribeRequest{
		EnrollmentID: f.enrollmentID.String(),
		BillingType:  "BARTER",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidBillingType)
}

func TestPause(t *testing.T) {
	f := newLifecycleFixture(t)
	sub := f.subscribe(t)

	paused, err := f.svc.Pause(f.ctx(), sub.ID.String())
	require.NoError(t, err)
	assert.Equal(t, domain.SubscriptionStatusPaused, paused.Status)
	assert.NotNil(t, paused.PausedAt)
	assert.Equal(t, []string{"INACTIVE"}, f.provider.statusCalls)

	// Pausing a paused subscription is rejected.
	_, err = f.svc.Pause(f.ctx(), sub.ID.String())
	assert.ErrorIs(t, err, domain.ErrTransitionNotAllowed)
}

func TestCancelDeactivatesEnrollment(t *testing.T) {
	f := newLifecycleFixture(t)
	sub := f.subscribe(t)
	assert.True(t, f.enrollmentActive(t))

	cancelled, err := f.svc.Cancel(f.ctx(), sub.ID.String())
	require.NoError(t, err)
	assert.Equal(t, domain.SubscriptionStatusCancelled, cancelled.Status)
	assert.NotNil(t, cancelled.CancelledAt)
	assert.Equal(t, 1, f.provider.deleteCalls)
	assert.False(t, f.enrollmentActive(t))
}

func TestReactivateFromPaused(t *testing.T) {
	f := newLifecycleFixture(t)
	sub := f.subscribe(t)

	_, err := f.svc.Pause(f.ctx(), sub.ID.String())
	require.NoError(t, err)

	reactivated, err := f.svc.Reactivate(f.ctx(), sub.ID.String())
	require.NoError(t, err)
	assert.Equal(t, domain.SubscriptionStatusActive, reactivated.Status)
	assert.Equal(t, sub.AsaasSubscriptionID, reactivated.AsaasSubscriptionID)
	assert.Equal(t, []string{"INACTIVE", "ACTIVE"}, f.provider.statusCalls)
	assert.True(t, f.enrollmentActive(t))
}

func TestReactivateFromCancelled(t *testing.T) {
	f := newLifecycleFixture(t)
	sub := f.subscribe(t)

	_, err := f.svc.Cancel(f.ctx(), sub.ID.String())
	require.NoError(t, err)
	assert.False(t, f.enrollmentActive(t))

	reactivated, err := f.svc.Reactivate(f.ctx(), sub.ID.String())
	require.NoError(t, err)
	assert.Equal(t, domain.SubscriptionStatusActive, reactivated.Status)
	// Cancel deleted the provider record, so reactivation made a new one.
	assert.NotEqual(t, sub.AsaasSubscriptionID, reactivated.AsaasSubscriptionID)
	assert.Equal(t, 2, f.provider.createCalls)
	require.NotNil(t, f.provider.lastReq.Callback)
	assert.True(t, f.enrollmentActive(t))
}

func TestTransitionNotOwner(t *testing.T) {
	f := newLifecycleFixture(t)
	sub := f.subscribe(t)

	other := studentctx.WithStudentID(context.Background(), int64(f.node.Generate()))
	_, err := f.svc.Pause(other, sub.ID.String())
	assert.ErrorIs(t, err, domain.ErrNotOwner)
}

func TestGetByIDUnknown(t *testing.T) {
	f := newLifecycleFixture(t)

	_, err := f.svc.GetByID(f.ctx(), f.node.Generate().String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
