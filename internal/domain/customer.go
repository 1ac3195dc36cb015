package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer totals are accumulated incrementally by sales and installment
// payments; they are never recomputed from the sale history.
type Customer struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Phone       string          `json:"phone"`
	CreatedAt   time.Time       `json:"created_at"`
	TotalBought decimal.Decimal `json:"total_bought"`
	TotalPaid   decimal.Decimal `json:"total_paid"`
}

// Balance is what the customer still owes across all purchases.
func (c Customer) Balance() decimal.Decimal {
	return c.TotalBought.Sub(c.TotalPaid)
}
