package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Expense struct {
	ID            string          `json:"id"`
	Description   string          `json:"description"`
	Value         decimal.Decimal `json:"value"`
	Category      string          `json:"category"`
	Date          time.Time       `json:"date"`
	PaymentMethod string          `json:"payment_method"`
}
