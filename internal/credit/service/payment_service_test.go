package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"crediario/internal/credit/repository"
	customerrepo "crediario/internal/customer/repository"
	customersvc "crediario/internal/customer/service"
	"crediario/internal/domain"
	apperrors "crediario/internal/errors"
	"crediario/internal/store"
	"crediario/internal/testutil"
)

var testNow = time.Date(2026, 5, 20, 12, 0, 0, 0, time.UTC)

type creditFixture struct {
	store *store.Store
	insts *repository.KVInstallmentRepository
	custs *customerrepo.KVRepository
}

func newCreditFixture(t *testing.T) *creditFixture {
	f := &creditFixture{
		store: testutil.NewStore(t),
		insts: repository.NewKVInstallmentRepository(),
		custs: customerrepo.NewKVRepository(),
	}
	testutil.WithTx(t, f.store, func(ctx context.Context, tx *store.Tx) {
		require.NoError(t, f.custs.Insert(ctx, tx, domain.Customer{
			ID:          "c1",
			Name:        "Joana",
			CreatedAt:   testNow,
			TotalBought: decimal.RequireFromString("300.00"),
			TotalPaid:   decimal.Zero,
		}))
		require.NoError(t, f.insts.InsertMany(ctx, tx, []domain.Installment{
			{ID: "i1", SaleID: "s1", CustomerID: "c1", Number: 1, Value: decimal.RequireFromString("100.00"), DueDate: testNow.AddDate(0, -1, 0), Status: domain.InstallmentPending},
			{ID: "i2", SaleID: "s1", CustomerID: "c1", Number: 2, Value: decimal.RequireFromString("100.00"), DueDate: testNow.AddDate(0, 0, 10), Status: domain.InstallmentPending},
			{ID: "i3", SaleID: "s1", CustomerID: "c1", Number: 3, Value: decimal.RequireFromString("100.00"), DueDate: testNow.AddDate(0, 1, 10), Status: domain.InstallmentPending},
		}))
	})
	return f
}

func (f *creditFixture) paymentService() *PaymentService {
	return NewPaymentService(f.store, f.insts, customersvc.NewAggregateUpdater(f.custs), zap.NewNop(), testutil.FixedClock(testNow), 5*time.Second)
}

func (f *creditFixture) installment(t *testing.T, id string) *domain.Installment {
	tx, err := f.store.BeginRead(context.Background())
	require.NoError(t, err)
	defer tx.Rollback()

	inst, err := f.insts.FindByID(context.Background(), tx, id)
	require.NoError(t, err)
	return inst
}

func (f *creditFixture) customer(t *testing.T, id string) *domain.Customer {
	tx, err := f.store.BeginRead(context.Background())
	require.NoError(t, err)
	defer tx.Rollback()

	c, err := f.custs.FindByID(context.Background(), tx, id)
	require.NoError(t, err)
	return c
}

func TestPayInstallment(t *testing.T) {
	f := newCreditFixture(t)
	svc := f.paymentService()

	paid, err := svc.PayInstallment(context.Background(), "i1", decimal.RequireFromString("100.00"))
	require.NoError(t, err)
	assert.Equal(t, domain.InstallmentPaid, paid.Status)

	stored := f.installment(t, "i1")
	assert.Equal(t, domain.InstallmentPaid, stored.Status)
	require.NotNil(t, stored.PaidAt)
	assert.True(t, testNow.Equal(*stored.PaidAt))
	require.NotNil(t, stored.PaidAmount)
	assert.True(t, decimal.RequireFromString("100.00").Equal(*stored.PaidAmount))

	assert.True(t, decimal.RequireFromString("100.00").Equal(f.customer(t, "c1").TotalPaid))
}

func TestPayInstallment_CallerAmountIsTrusted(t *testing.T) {
	f := newCreditFixture(t)
	svc := f.paymentService()

	_, err := svc.PayInstallment(context.Background(), "i2", decimal.RequireFromString("60.00"))
	require.NoError(t, err)
	_, err = svc.PayInstallment(context.Background(), "i3", decimal.RequireFromString("140.00"))
	require.NoError(t, err)

	assert.True(t, decimal.RequireFromString("200.00").Equal(f.customer(t, "c1").TotalPaid))
}

func TestPayInstallment_NotFound(t *testing.T) {
	f := newCreditFixture(t)

	_, err := f.paymentService().PayInstallment(context.Background(), "missing", decimal.NewFromInt(10))

	_, ok := apperrors.IsNotFoundError(err)
	require.True(t, ok)
	assert.True(t, f.customer(t, "c1").TotalPaid.IsZero())
}

func TestPayInstallment_NonPositiveAmount(t *testing.T) {
	f := newCreditFixture(t)
	svc := f.paymentService()

	for _, amount := range []string{"0", "-5.00"} {
		_, err := svc.PayInstallment(context.Background(), "i1", decimal.RequireFromString(amount))

		_, ok := apperrors.IsValidationError(err)
		assert.True(t, ok, amount)
	}
	assert.Equal(t, domain.InstallmentPending, f.installment(t, "i1").Status)
}

func TestPayInstallment_AlreadyPaid(t *testing.T) {
	f := newCreditFixture(t)
	svc := f.paymentService()

	_, err := svc.PayInstallment(context.Background(), "i1", decimal.RequireFromString("100.00"))
	require.NoError(t, err)

	_, err = svc.PayInstallment(context.Background(), "i1", decimal.RequireFromString("100.00"))
	_, ok := apperrors.IsConflictError(err)
	require.True(t, ok)

	assert.True(t, decimal.RequireFromString("100.00").Equal(f.customer(t, "c1").TotalPaid))
}

type mockCustomerAggregates struct {
	AddToPaidFunc func(ctx context.Context, tx *store.Tx, customerID string, amount decimal.Decimal) (*domain.Customer, error)
}

func (m *mockCustomerAggregates) AddToPaid(ctx context.Context, tx *store.Tx, customerID string, amount decimal.Decimal) (*domain.Customer, error) {
	return m.AddToPaidFunc(ctx, tx, customerID, amount)
}

func TestPayInstallment_AggregateFailureLeavesInstallmentPending(t *testing.T) {
	f := newCreditFixture(t)
	boom := errors.New("customer update failed")
	svc := NewPaymentService(f.store, f.insts, &mockCustomerAggregates{
		AddToPaidFunc: func(ctx context.Context, tx *store.Tx, customerID string, amount decimal.Decimal) (*domain.Customer, error) {
			return nil, boom
		},
	}, zap.NewNop(), testutil.FixedClock(testNow), 5*time.Second)

	_, err := svc.PayInstallment(context.Background(), "i1", decimal.RequireFromString("100.00"))
	require.ErrorIs(t, err, boom)

	stored := f.installment(t, "i1")
	assert.Equal(t, domain.InstallmentPending, stored.Status)
	assert.Nil(t, stored.PaidAt)
	assert.Nil(t, stored.PaidAmount)
}
