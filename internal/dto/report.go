package dto

import "github.com/shopspring/decimal"

type Dashboard struct {
	TodayIncome     decimal.Decimal `json:"today_income"`
	TodayExpenses   decimal.Decimal `json:"today_expenses"`
	MonthlyIncome   decimal.Decimal `json:"monthly_income"`
	MonthlyExpenses decimal.Decimal `json:"monthly_expenses"`
	MonthlyBalance  decimal.Decimal `json:"monthly_balance"`
	PendingCredit   decimal.Decimal `json:"pending_credit"`
	PendingClients  int             `json:"pending_clients"`
	Growth          decimal.Decimal `json:"growth"`
	TotalStockValue decimal.Decimal `json:"total_stock_value"`
}

type PeriodFigures struct {
	Revenue  decimal.Decimal `json:"revenue"`
	Expenses decimal.Decimal `json:"expenses"`
	Profit   decimal.Decimal `json:"profit"`
}

type MonthlyReport struct {
	ThisMonth PeriodFigures `json:"this_month"`
	LastMonth PeriodFigures `json:"last_month"`
	Growth    PeriodFigures `json:"growth"`
}
