package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/turmapay/turmapay/internal/asaas"
	"github.com/turmapay/turmapay/internal/billingcustomer/domain"
	"github.com/turmapay/turmapay/internal/brdoc"
	"github.com/turmapay/turmapay/internal/cache"
	"github.com/turmapay/turmapay/internal/clock"
	studentdomain "github.com/turmapay/turmapay/internal/student/domain"
	studentrepository "github.com/turmapay/turmapay/internal/student/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

type stubProvider struct {
	createCalls int
	findCalls   int
	createErr   error
	created     asaas.Customer
	found       *asaas.Customer
	lastReq     asaas.CustomerRequest
}

func (p *stubProvider) CreateCustomer(_ context.Context, req asaas.CustomerRequest) (asaas.Customer, error) {
	p.createCalls++
	p.lastReq = req
	if p.createErr != nil {
		return asaas.Customer{}, p.createErr
	}
	return p.created, nil
}

func (p *stubProvider) FindCustomerByCpf(_ context.Context, _ string) (*asaas.Customer, error) {
	p.findCalls++
	return p.found, nil
}

func newTestService(t *testing.T, provider domain.CustomerProvider) (*Service, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:memdb_bc_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Exec(`CREATE TABLE students (
		id BIGINT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		cpf TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		postal_code TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		address_number TEXT NOT NULL DEFAULT '',
		asaas_customer_id TEXT,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`).Error)

	svc := &Service{
		db:          db,
		log:         zaptest.NewLogger(t),
		studentRepo: studentrepository.Provide(),
		provider:    provider,
		validations: cache.NewProfileValidationCache(clock.NewSystemClock()),
	}
	return svc, db
}

func seedStudent(t *testing.T, db *gorm.DB, cpf string, customerID *string) snowflake.ID {
	t.Helper()

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	id := node.Generate()
	now := time.Now().UTC()
	require.NoError(t, db.Exec(
		`INSERT INTO students (id, name, email, cpf, phone, asaas_customer_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, "Joana Lima", "joana@example.com", cpf, "11987654321", customerID, now, now,
	).Error)
	return id
}

func TestEnsureCustomerCached(t *testing.T) {
	provider := &stubProvider{}
	svc, db := newTestService(t, provider)

	cached := "cus_cached"
	id := seedStudent(t, db, "52998224725", &cached)

	got, err := svc.EnsureCustomer(context.Background(), id.String())
	require.NoError(t, err)
	assert.Equal(t, "cus_cached", got)
	assert.Equal(t, 0, provider.createCalls)
}

func TestEnsureCustomerInvalidProfile(t *testing.T) {
	provider := &stubProvider{}
	svc, db := newTestService(t, provider)

	id := seedStudent(t, db, "11111111111", nil)

	_, err := svc.EnsureCustomer(context.Background(), id.String())
	require.Error(t, err)

	var validationErr *brdoc.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, 0, provider.createCalls)
}

func TestEnsureCustomerCreatesAndPersists(t *testing.T) {
	provider := &stubProvider{created: asaas.Customer{ID: "cus_new"}}
	svc, db := newTestService(t, provider)

	id := seedStudent(t, db, "52998224725", nil)

	got, err := svc.EnsureCustomer(context.Background(), id.String())
	require.NoError(t, err)
	assert.Equal(t, "cus_new", got)
	assert.Equal(t, 1, provider.createCalls)
	// No CEP on file, so the placeholder goes out.
	assert.Equal(t, "01310-100", provider.lastReq.PostalCode)

	var persisted string
	require.NoError(t, db.Raw(
		`SELECT asaas_customer_id FROM students WHERE id = ?`, id,
	).Scan(&persisted).Error)
	assert.Equal(t, "cus_new", persisted)

	// The persisted id short-circuits the next call.
	got, err = svc.EnsureCustomer(context.Background(), id.String())
	require.NoError(t, err)
	assert.Equal(t, "cus_new", got)
	assert.Equal(t, 1, provider.createCalls)
}

func TestEnsureCustomerKeepsStudentPostalCode(t *testing.T) {
	provider := &stubProvider{created: asaas.Customer{ID: "cus_new"}}
	svc, db := newTestService(t, provider)

	id := seedStudent(t, db, "52998224725", nil)
	require.NoError(t, db.Exec(
		`UPDATE students SET postal_code = '04567-000' WHERE id = ?`, id,
	).Error)

	_, err := svc.EnsureCustomer(context.Background(), id.String())
	require.NoError(t, err)
	assert.Equal(t, "04567-000", provider.lastReq.PostalCode)
}

func TestEnsureCustomerDuplicateFallsBackToLookup(t *testing.T) {
	provider := &stubProvider{
		createErr: &asaas.Error{
			StatusCode: 400,
			Items:      []asaas.ErrorItem{{Code: "invalid_cpfCnpj", Description: "CPF already in use"}},
		},
		found: &asaas.Customer{ID: "cus_existing"},
	}
	svc, db := newTestService(t, provider)

	id := seedStudent(t, db, "52998224725", nil)

	got, err := svc.EnsureCustomer(context.Background(), id.String())
	require.NoError(t, err)
	assert.Equal(t, "cus_existing", got)
	assert.Equal(t, 1, provider.createCalls)
	assert.Equal(t, 1, provider.findCalls)

	var persisted string
	require.NoError(t, db.Raw(
		`SELECT asaas_customer_id FROM students WHERE id = ?`, id,
	).Scan(&persisted).Error)
	assert.Equal(t, "cus_existing", persisted)
}

func TestEnsureCustomerBadStudentID(t *testing.T) {
	svc, _ := newTestService(t, &stubProvider{})

	_, err := svc.EnsureCustomer(context.Background(), "not-a-snowflake")
	assert.ErrorIs(t, err, domain.ErrInvalidStudentID)
}

func TestEnsureCustomerUnknownStudent(t *testing.T) {
	svc, _ := newTestService(t, &stubProvider{})

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	_, err = svc.EnsureCustomer(context.Background(), node.Generate().String())
	assert.ErrorIs(t, err, studentdomain.ErrNotFound)
}
