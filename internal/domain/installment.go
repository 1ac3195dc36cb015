package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type InstallmentStatus string

const (
	InstallmentPending InstallmentStatus = "pending"
	InstallmentOverdue InstallmentStatus = "overdue"
	InstallmentPaid    InstallmentStatus = "paid"
)

func (s InstallmentStatus) Valid() bool {
	switch s {
	case InstallmentPending, InstallmentOverdue, InstallmentPaid:
		return true
	}
	return false
}

// Installment is one monthly slice of an INSTALLMENT sale. Only pending and
// paid are ever stored; overdue is derived when reading.
type Installment struct {
	ID         string            `json:"id"`
	SaleID     string            `json:"sale_id"`
	CustomerID string            `json:"customer_id"`
	Number     int               `json:"number"`
	Value      decimal.Decimal   `json:"value"`
	DueDate    time.Time         `json:"due_date"`
	Status     InstallmentStatus `json:"status"`
	PaidAt     *time.Time        `json:"paid_at,omitempty"`
	PaidAmount *decimal.Decimal  `json:"paid_amount,omitempty"`
}

// Resolve returns the installment as it should be presented at now: a
// pending installment whose due date has passed reads as overdue. The
// receiver is not modified, so resolving is idempotent.
func (i Installment) Resolve(now time.Time) Installment {
	if i.Status == InstallmentPending && i.DueDate.Before(now) {
		i.Status = InstallmentOverdue
	}
	return i
}

// IsOpen reports whether the installment still awaits payment.
func (i Installment) IsOpen() bool {
	return i.Status != InstallmentPaid
}
