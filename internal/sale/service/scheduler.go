package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"crediario/internal/domain"
	apperrors "crediario/internal/errors"
)

const centsPlaces = 2

// DefaultMaxInstallments is the longest schedule the shop offers.
const DefaultMaxInstallments = 6

// Scheduler splits a credit sale into at most max monthly installments.
type Scheduler struct {
	now func() time.Time
	max int
}

func NewScheduler(now func() time.Time, max int) *Scheduler {
	if max < 1 {
		max = DefaultMaxInstallments
	}
	return &Scheduler{now: now, max: max}
}

func (s *Scheduler) MaxInstallments() int {
	return s.max
}

// Schedule splits total into count installments starting from the current
// time.
func (s *Scheduler) Schedule(saleID, customerID string, total decimal.Decimal, count int) ([]domain.Installment, error) {
	return s.ScheduleFrom(saleID, customerID, total, count, s.now())
}

// ScheduleFrom splits total into count installments. Installment k is due k
// calendar months after from, with Go's month overflow normalization
// (Jan 31 + 1 month = Mar 3). Every installment is worth total/count
// truncated to cents; the last one absorbs the remainder so the schedule
// sums exactly to total.
func (s *Scheduler) ScheduleFrom(saleID, customerID string, total decimal.Decimal, count int, from time.Time) ([]domain.Installment, error) {
	if count < 1 || count > s.max {
		return nil, apperrors.NewValidationError("validation failed", apperrors.ValidationDetail{
			Field:   "installments_count",
			Message: fmt.Sprintf("installments_count must be between 1 and %d", s.max),
		})
	}
	if total.IsNegative() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("cannot schedule a negative total %s", total))
	}

	n := decimal.NewFromInt(int64(count))
	base := total.Div(n).Truncate(centsPlaces)
	last := total.Sub(base.Mul(decimal.NewFromInt(int64(count - 1))))

	installments := make([]domain.Installment, 0, count)
	for k := 1; k <= count; k++ {
		value := base
		if k == count {
			value = last
		}
		installments = append(installments, domain.Installment{
			ID:         uuid.NewString(),
			SaleID:     saleID,
			CustomerID: customerID,
			Number:     k,
			Value:      value,
			DueDate:    from.AddDate(0, k, 0),
			Status:     domain.InstallmentPending,
		})
	}

	return installments, nil
}
