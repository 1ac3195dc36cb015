package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentPix         PaymentMethod = "PIX"
	PaymentCash        PaymentMethod = "CASH"
	PaymentCard        PaymentMethod = "CARD"
	PaymentInstallment PaymentMethod = "INSTALLMENT"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentPix, PaymentCash, PaymentCard, PaymentInstallment:
		return true
	}
	return false
}

// Sale is immutable once created. InstallmentsCount is set only for
// INSTALLMENT sales.
type Sale struct {
	ID                string          `json:"id"`
	CustomerID        *string         `json:"customer_id,omitempty"`
	Date              time.Time       `json:"date"`
	TotalValue        decimal.Decimal `json:"total_value"`
	PaymentMethod     PaymentMethod   `json:"payment_method"`
	InstallmentsCount *int            `json:"installments_count,omitempty"`
}

// SaleItem snapshots the unit price charged at sale time.
type SaleItem struct {
	ID        string          `json:"id"`
	SaleID    string          `json:"sale_id"`
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

func (i SaleItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
