package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AddExpenseRequest leaves Date nil to record the expense at the current time.
type AddExpenseRequest struct {
	Description   string          `json:"description"`
	Value         decimal.Decimal `json:"value"`
	Category      string          `json:"category"`
	Date          *time.Time      `json:"date,omitempty"`
	PaymentMethod string          `json:"payment_method"`
}
