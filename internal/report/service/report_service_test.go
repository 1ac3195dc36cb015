package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	creditrepo "crediario/internal/credit/repository"
	"crediario/internal/domain"
	expenserepo "crediario/internal/expense/repository"
	productrepo "crediario/internal/product/repository"
	salerepo "crediario/internal/sale/repository"
	"crediario/internal/store"
	"crediario/internal/testutil"
)

var testNow = time.Date(2026, 3, 15, 14, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newTestReportService(t *testing.T, seed func(ctx context.Context, tx *store.Tx)) *ReportService {
	s := testutil.NewStore(t)
	if seed != nil {
		testutil.WithTx(t, s, seed)
	}
	return NewReportService(
		s,
		salerepo.NewKVSaleRepository(),
		expenserepo.NewKVRepository(),
		creditrepo.NewKVInstallmentRepository(),
		productrepo.NewKVRepository(),
		testutil.FixedClock(testNow),
	)
}

func sale(id string, at time.Time, total string) domain.Sale {
	return domain.Sale{ID: id, Date: at, TotalValue: dec(total), PaymentMethod: domain.PaymentCash}
}

func expense(id string, at time.Time, value string) domain.Expense {
	return domain.Expense{ID: id, Description: id, Date: at, Value: dec(value)}
}

func seedLedger(t *testing.T) func(ctx context.Context, tx *store.Tx) {
	return func(ctx context.Context, tx *store.Tx) {
		sales := salerepo.NewKVSaleRepository()
		for _, s := range []domain.Sale{
			sale("today", testNow.Add(-2*time.Hour), "120.00"),
			sale("this-month", time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC), "80.00"),
			sale("last-month", time.Date(2026, 2, 27, 10, 0, 0, 0, time.UTC), "100.00"),
			sale("last-year", time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC), "999.00"),
		} {
			require.NoError(t, sales.Insert(ctx, tx, s))
		}

		expenses := expenserepo.NewKVRepository()
		for _, e := range []domain.Expense{
			expense("today", testNow.Add(-time.Hour), "30.00"),
			expense("this-month", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), "20.00"),
			expense("last-month", time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC), "40.00"),
		} {
			require.NoError(t, expenses.Insert(ctx, tx, e))
		}

		require.NoError(t, creditrepo.NewKVInstallmentRepository().InsertMany(ctx, tx, []domain.Installment{
			{ID: "i1", CustomerID: "c1", Number: 1, Value: dec("50.00"), DueDate: testNow.AddDate(0, -1, 0), Status: domain.InstallmentPending},
			{ID: "i2", CustomerID: "c1", Number: 2, Value: dec("50.00"), DueDate: testNow.AddDate(0, 1, 0), Status: domain.InstallmentPending},
			{ID: "i3", CustomerID: "c2", Number: 1, Value: dec("70.00"), DueDate: testNow.AddDate(0, 1, 0), Status: domain.InstallmentPending},
			{ID: "i4", CustomerID: "c3", Number: 1, Value: dec("90.00"), DueDate: testNow.AddDate(0, -1, 0), Status: domain.InstallmentPaid},
		}))

		require.NoError(t, productrepo.NewKVRepository().Insert(ctx, tx,
			domain.Product{ID: "p1", Name: "Blusa", CostPrice: dec("25.00"), SalePrice: dec("49.90"), Stock: 10},
			domain.Product{ID: "p2", Name: "Cinto", CostPrice: dec("12.00"), SalePrice: dec("29.90"), Stock: -2},
		))
	}
}

func TestReportService_Dashboard(t *testing.T) {
	svc := newTestReportService(t, seedLedger(t))

	d, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.True(t, dec("120.00").Equal(d.TodayIncome), d.TodayIncome.String())
	assert.True(t, dec("30.00").Equal(d.TodayExpenses), d.TodayExpenses.String())
	assert.True(t, dec("200.00").Equal(d.MonthlyIncome), d.MonthlyIncome.String())
	assert.True(t, dec("50.00").Equal(d.MonthlyExpenses), d.MonthlyExpenses.String())
	assert.True(t, dec("150.00").Equal(d.MonthlyBalance), d.MonthlyBalance.String())
	assert.True(t, dec("170.00").Equal(d.PendingCredit), d.PendingCredit.String())
	assert.Equal(t, 2, d.PendingClients)
	assert.True(t, dec("100").Equal(d.Growth), d.Growth.String())
	assert.True(t, dec("439.20").Equal(d.TotalStockValue), d.TotalStockValue.String())
}

func TestReportService_DashboardGrowthWithoutLastMonth(t *testing.T) {
	svc := newTestReportService(t, nil)

	d, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.True(t, d.MonthlyIncome.IsZero())
	assert.True(t, dec("100").Equal(d.Growth))
	assert.Equal(t, 0, d.PendingClients)
}

func TestReportService_Monthly(t *testing.T) {
	svc := newTestReportService(t, seedLedger(t))

	r, err := svc.Monthly(context.Background())
	require.NoError(t, err)

	assert.True(t, dec("200.00").Equal(r.ThisMonth.Revenue))
	assert.True(t, dec("50.00").Equal(r.ThisMonth.Expenses))
	assert.True(t, dec("150.00").Equal(r.ThisMonth.Profit))

	assert.True(t, dec("100.00").Equal(r.LastMonth.Revenue))
	assert.True(t, dec("40.00").Equal(r.LastMonth.Expenses))
	assert.True(t, dec("60.00").Equal(r.LastMonth.Profit))

	assert.True(t, dec("100").Equal(r.Growth.Revenue), r.Growth.Revenue.String())
	assert.True(t, dec("25").Equal(r.Growth.Expenses), r.Growth.Expenses.String())
	assert.True(t, dec("150").Equal(r.Growth.Profit), r.Growth.Profit.String())
}

func TestGrowth(t *testing.T) {
	tests := []struct {
		name     string
		current  string
		last     string
		expected string
	}{
		{"no baseline with activity", "10", "0", "100"},
		{"no baseline without activity", "0", "0", "0"},
		{"no baseline with loss", "-10", "0", "0"},
		{"decline", "50", "200", "-75"},
		{"rounded", "10", "3", "233.33"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := growth(dec(tt.current), dec(tt.last))
			assert.True(t, dec(tt.expected).Equal(got), got.String())
		})
	}
}

func TestMonthRange_January(t *testing.T) {
	r := monthRange(time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC))
	prev := r.previous()

	assert.Equal(t, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), prev.from)
	assert.True(t, prev.contains(time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC)))
	assert.False(t, prev.contains(r.from))
}
