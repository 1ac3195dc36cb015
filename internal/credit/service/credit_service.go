package service

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"crediario/internal/domain"
	"crediario/internal/dto"
	apperrors "crediario/internal/errors"
)

// CreditService reads installments through the overdue evaluator.
type CreditService struct {
	db           TransactionManager
	installments InstallmentRepository
	now          func() time.Time
}

func NewCreditService(db TransactionManager, installments InstallmentRepository, now func() time.Time) *CreditService {
	return &CreditService{
		db:           db,
		installments: installments,
		now:          now,
	}
}

// ListInstallments returns the installments matching filter, resolved at the
// current time and ordered by due date.
func (s *CreditService) ListInstallments(ctx context.Context, filter dto.InstallmentFilter) ([]domain.Installment, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, apperrors.NewValidationError("validation failed", apperrors.ValidationDetail{
			Field:   "status",
			Message: "status must be one of pending, overdue, paid",
		})
	}

	all, err := s.resolved(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]domain.Installment, 0, len(all))
	for _, inst := range all {
		if filter.Status != "" && inst.Status != filter.Status {
			continue
		}
		if filter.CustomerID != "" && inst.CustomerID != filter.CustomerID {
			continue
		}
		result = append(result, inst)
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].DueDate.Equal(result[j].DueDate) {
			return result[i].Number < result[j].Number
		}
		return result[i].DueDate.Before(result[j].DueDate)
	})
	return result, nil
}

// Summary totals the open credit. Pending covers every unpaid installment,
// overdue ones included.
func (s *CreditService) Summary(ctx context.Context) (*dto.CreditSummary, error) {
	all, err := s.resolved(ctx)
	if err != nil {
		return nil, err
	}

	summary := &dto.CreditSummary{
		TotalPending: decimal.Zero,
		TotalOverdue: decimal.Zero,
	}
	for _, inst := range all {
		if !inst.IsOpen() {
			continue
		}
		summary.TotalPending = summary.TotalPending.Add(inst.Value)
		if inst.Status == domain.InstallmentOverdue {
			summary.TotalOverdue = summary.TotalOverdue.Add(inst.Value)
			summary.OverdueCount++
		}
	}
	return summary, nil
}

func (s *CreditService) resolved(ctx context.Context) ([]domain.Installment, error) {
	tx, err := s.db.BeginRead(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	all, err := s.installments.List(ctx, tx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	for i := range all {
		all[i] = all[i].Resolve(now)
	}
	return all, nil
}
