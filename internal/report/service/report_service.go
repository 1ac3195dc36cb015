package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"crediario/internal/domain"
	"crediario/internal/dto"
	"crediario/internal/store"
)

type TransactionManager interface {
	BeginRead(ctx context.Context) (*store.Tx, error)
}

type SaleLister interface {
	List(ctx context.Context, tx *store.Tx) ([]domain.Sale, error)
}

type ExpenseLister interface {
	List(ctx context.Context, tx *store.Tx) ([]domain.Expense, error)
}

type InstallmentLister interface {
	List(ctx context.Context, tx *store.Tx) ([]domain.Installment, error)
}

type ProductLister interface {
	List(ctx context.Context, tx *store.Tx) ([]domain.Product, error)
}

type ReportService struct {
	db           TransactionManager
	sales        SaleLister
	expenses     ExpenseLister
	installments InstallmentLister
	products     ProductLister
	now          func() time.Time
}

func NewReportService(db TransactionManager, sales SaleLister, expenses ExpenseLister, installments InstallmentLister, products ProductLister, now func() time.Time) *ReportService {
	return &ReportService{
		db:           db,
		sales:        sales,
		expenses:     expenses,
		installments: installments,
		products:     products,
		now:          now,
	}
}

var hundred = decimal.NewFromInt(100)

type snapshot struct {
	sales        []domain.Sale
	expenses     []domain.Expense
	installments []domain.Installment
	products     []domain.Product
}

// load reads every collection the reports need in one consistent view.
func (s *ReportService) load(ctx context.Context, full bool) (*snapshot, error) {
	tx, err := s.db.BeginRead(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	snap := &snapshot{}
	if snap.sales, err = s.sales.List(ctx, tx); err != nil {
		return nil, err
	}
	if snap.expenses, err = s.expenses.List(ctx, tx); err != nil {
		return nil, err
	}
	if !full {
		return snap, nil
	}
	if snap.installments, err = s.installments.List(ctx, tx); err != nil {
		return nil, err
	}
	if snap.products, err = s.products.List(ctx, tx); err != nil {
		return nil, err
	}
	return snap, nil
}

// Dashboard summarizes the day and the current calendar month in UTC.
func (s *ReportService) Dashboard(ctx context.Context) (*dto.Dashboard, error) {
	snap, err := s.load(ctx, true)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	today := dayRange(now)
	month := monthRange(now)
	last := month.previous()

	d := &dto.Dashboard{
		TodayIncome:     sumSales(snap.sales, today),
		TodayExpenses:   sumExpenses(snap.expenses, today),
		MonthlyIncome:   sumSales(snap.sales, month),
		MonthlyExpenses: sumExpenses(snap.expenses, month),
		PendingCredit:   decimal.Zero,
		TotalStockValue: decimal.Zero,
	}
	d.MonthlyBalance = d.MonthlyIncome.Sub(d.MonthlyExpenses)

	lastIncome := sumSales(snap.sales, last)
	if lastIncome.IsZero() {
		d.Growth = hundred
	} else {
		d.Growth = percentChange(d.MonthlyIncome, lastIncome)
	}

	clients := make(map[string]struct{})
	for _, inst := range snap.installments {
		inst = inst.Resolve(now)
		if !inst.IsOpen() {
			continue
		}
		d.PendingCredit = d.PendingCredit.Add(inst.Value)
		clients[inst.CustomerID] = struct{}{}
	}
	d.PendingClients = len(clients)

	for _, p := range snap.products {
		d.TotalStockValue = d.TotalStockValue.Add(p.StockValue())
	}

	return d, nil
}

// Monthly compares the current calendar month with the previous one.
func (s *ReportService) Monthly(ctx context.Context) (*dto.MonthlyReport, error) {
	snap, err := s.load(ctx, false)
	if err != nil {
		return nil, err
	}

	month := monthRange(s.now().UTC())
	this := figures(snap, month)
	last := figures(snap, month.previous())

	return &dto.MonthlyReport{
		ThisMonth: this,
		LastMonth: last,
		Growth: dto.PeriodFigures{
			Revenue:  growth(this.Revenue, last.Revenue),
			Expenses: growth(this.Expenses, last.Expenses),
			Profit:   growth(this.Profit, last.Profit),
		},
	}, nil
}

func figures(snap *snapshot, r period) dto.PeriodFigures {
	revenue := sumSales(snap.sales, r)
	expenses := sumExpenses(snap.expenses, r)
	return dto.PeriodFigures{
		Revenue:  revenue,
		Expenses: expenses,
		Profit:   revenue.Sub(expenses),
	}
}

// growth is the percent change from last to current. With no baseline it is
// 100 when anything happened this period and 0 otherwise.
func growth(current, last decimal.Decimal) decimal.Decimal {
	if last.IsZero() {
		if current.IsPositive() {
			return hundred
		}
		return decimal.Zero
	}
	return percentChange(current, last)
}

func percentChange(current, last decimal.Decimal) decimal.Decimal {
	return current.Sub(last).Div(last).Mul(hundred).Round(2)
}

// period is the half-open interval [from, to).
type period struct {
	from, to time.Time
}

func (p period) contains(t time.Time) bool {
	return !t.Before(p.from) && t.Before(p.to)
}

func (p period) previous() period {
	return period{from: p.from.AddDate(0, -1, 0), to: p.from}
}

func dayRange(now time.Time) period {
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return period{from: from, to: from.AddDate(0, 0, 1)}
}

func monthRange(now time.Time) period {
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return period{from: from, to: from.AddDate(0, 1, 0)}
}

func sumSales(sales []domain.Sale, r period) decimal.Decimal {
	total := decimal.Zero
	for _, sale := range sales {
		if r.contains(sale.Date) {
			total = total.Add(sale.TotalValue)
		}
	}
	return total
}

func sumExpenses(expenses []domain.Expense, r period) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		if r.contains(e.Date) {
			total = total.Add(e.Value)
		}
	}
	return total
}
