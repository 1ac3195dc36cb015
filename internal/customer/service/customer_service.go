package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
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

type CustomerRepository interface {
	List(ctx context.Context, tx *store.Tx) ([]domain.Customer, error)
	FindByID(ctx context.Context, tx *store.Tx, id string) (*domain.Customer, error)
	Insert(ctx context.Context, tx *store.Tx, c domain.Customer) error
}

type CustomerService struct {
	db        TransactionManager
	repo      CustomerRepository
	logger    *zap.Logger
	now       func() time.Time
	txTimeout time.Duration
}

func NewCustomerService(db TransactionManager, repo CustomerRepository, logger *zap.Logger, now func() time.Time, txTimeout time.Duration) *CustomerService {
	return &CustomerService{
		db:        db,
		repo:      repo,
		logger:    logger,
		now:       now,
		txTimeout: txTimeout,
	}
}

func (s *CustomerService) List(ctx context.Context) ([]domain.Customer, error) {
	tx, err := s.db.BeginRead(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	return s.repo.List(ctx, tx)
}

func (s *CustomerService) Get(ctx context.Context, id string) (*domain.Customer, error) {
	tx, err := s.db.BeginRead(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	return s.repo.FindByID(ctx, tx, id)
}

func (s *CustomerService) Add(ctx context.Context, req dto.AddCustomerRequest) (*domain.Customer, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("validation failed", apperrors.ValidationDetail{
			Field:   "name",
			Message: "name is required",
		})
	}

	customer := domain.Customer{
		ID:          uuid.NewString(),
		Name:        name,
		Phone:       strings.TrimSpace(req.Phone),
		CreatedAt:   s.now().UTC(),
		TotalBought: decimal.Zero,
		TotalPaid:   decimal.Zero,
	}

	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if err := s.repo.Insert(txCtx, tx, customer); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		s.logger.Error("failed to commit customer", zap.String("customerId", customer.ID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("customer added", zap.String("customerId", customer.ID))
	return &customer, nil
}
