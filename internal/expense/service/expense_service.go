package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"crediario/internal/domain"
	"crediario/internal/dto"
	apperrors "crediario/internal/errors"
	"crediario/internal/store"
)

type TransactionManager interface {
	Begin(ctx context.Context) (*store.Tx, error)
	BeginRead(ctx context.Context) (*store.Tx, error)
}

type ExpenseRepository interface {
	List(ctx context.Context, tx *store.Tx) ([]domain.Expense, error)
	Insert(ctx context.Context, tx *store.Tx, e domain.Expense) error
}

type ExpenseService struct {
	db        TransactionManager
	repo      ExpenseRepository
	logger    *zap.Logger
	now       func() time.Time
	txTimeout time.Duration
}

func NewExpenseService(db TransactionManager, repo ExpenseRepository, logger *zap.Logger, now func() time.Time, txTimeout time.Duration) *ExpenseService {
	return &ExpenseService{
		db:        db,
		repo:      repo,
		logger:    logger,
		now:       now,
		txTimeout: txTimeout,
	}
}

// List returns every expense, most recent first.
func (s *ExpenseService) List(ctx context.Context) ([]domain.Expense, error) {
	tx, err := s.db.BeginRead(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	expenses, err := s.repo.List(ctx, tx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(expenses, func(i, j int) bool { return expenses[i].Date.After(expenses[j].Date) })
	return expenses, nil
}

func (s *ExpenseService) Add(ctx context.Context, req dto.AddExpenseRequest) (*domain.Expense, error) {
	var details []apperrors.ValidationDetail
	description := strings.TrimSpace(req.Description)
	if description == "" {
		details = append(details, apperrors.ValidationDetail{Field: "description", Message: "description is required"})
	}
	if !req.Value.IsPositive() {
		details = append(details, apperrors.ValidationDetail{Field: "value", Message: "value must be greater than zero"})
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("validation failed", details...)
	}

	date := s.now().UTC()
	if req.Date != nil {
		date = req.Date.UTC()
	}

	expense := domain.Expense{
		ID:            uuid.NewString(),
		Description:   description,
		Value:         req.Value,
		Category:      strings.TrimSpace(req.Category),
		Date:          date,
		PaymentMethod: strings.TrimSpace(req.PaymentMethod),
	}

	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if err := s.repo.Insert(txCtx, tx, expense); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		s.logger.Error("failed to commit expense", zap.String("expenseId", expense.ID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("expense added", zap.String("expenseId", expense.ID), zap.String("value", expense.Value.StringFixed(2)))
	return &expense, nil
}
