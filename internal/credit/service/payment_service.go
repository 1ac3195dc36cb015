package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"crediario/internal/domain"
	apperrors "crediario/internal/errors"
	"crediario/internal/store"
)

type TransactionManager interface {
	Begin(ctx context.Context) (*store.Tx, error)
	BeginRead(ctx context.Context) (*store.Tx, error)
}

type InstallmentRepository interface {
	List(ctx context.Context, tx *store.Tx) ([]domain.Installment, error)
	FindByID(ctx context.Context, tx *store.Tx, id string) (*domain.Installment, error)
	Update(ctx context.Context, tx *store.Tx, i domain.Installment) error
}

type CustomerAggregates interface {
	AddToPaid(ctx context.Context, tx *store.Tx, customerID string, amount decimal.Decimal) (*domain.Customer, error)
}

type PaymentService struct {
	db           TransactionManager
	installments InstallmentRepository
	customers    CustomerAggregates
	logger       *zap.Logger
	now          func() time.Time
	txTimeout    time.Duration
}

func NewPaymentService(db TransactionManager, installments InstallmentRepository, customers CustomerAggregates, logger *zap.Logger, now func() time.Time, txTimeout time.Duration) *PaymentService {
	return &PaymentService{
		db:           db,
		installments: installments,
		customers:    customers,
		logger:       logger,
		now:          now,
		txTimeout:    txTimeout,
	}
}

// PayInstallment settles an installment and credits amount to its
// customer's paid total in one transaction. The amount is taken as given,
// it is not checked against the installment value.
func (s *PaymentService) PayInstallment(ctx context.Context, id string, amount decimal.Decimal) (*domain.Installment, error) {
	if !amount.IsPositive() {
		return nil, apperrors.NewValidationError("validation failed", apperrors.ValidationDetail{
			Field:   "amount",
			Message: "amount must be greater than zero",
		})
	}

	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	inst, err := s.installments.FindByID(txCtx, tx, id)
	if err != nil {
		return nil, err
	}

	if inst.Status == domain.InstallmentPaid {
		return nil, apperrors.NewConflictError(fmt.Sprintf("installment %s is already paid", id))
	}

	paidAt := s.now().UTC()
	inst.Status = domain.InstallmentPaid
	inst.PaidAt = &paidAt
	inst.PaidAmount = &amount

	if err := s.installments.Update(txCtx, tx, *inst); err != nil {
		return nil, err
	}

	if _, err := s.customers.AddToPaid(txCtx, tx, inst.CustomerID, amount); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		s.logger.Error("failed to commit payment", zap.String("installmentId", id), zap.Error(err))
		return nil, err
	}

	if !amount.Equal(inst.Value) {
		s.logger.Warn("installment paid with a different amount",
			zap.String("installmentId", id),
			zap.String("value", inst.Value.StringFixed(2)),
			zap.String("amount", amount.StringFixed(2)),
		)
	}
	s.logger.Info("installment paid", zap.String("installmentId", id), zap.String("customerId", inst.CustomerID))

	return inst, nil
}
