package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"crediario/internal/domain"
	"crediario/internal/store"
)

type AggregateRepository interface {
	FindByID(ctx context.Context, tx *store.Tx, id string) (*domain.Customer, error)
	Update(ctx context.Context, tx *store.Tx, c domain.Customer) error
}

// AggregateUpdater accumulates purchase and payment totals onto customers.
// Totals only ever grow by the amounts passed in.
type AggregateUpdater struct {
	repo AggregateRepository
}

func NewAggregateUpdater(repo AggregateRepository) *AggregateUpdater {
	return &AggregateUpdater{repo: repo}
}

func (u *AggregateUpdater) AddToBought(ctx context.Context, tx *store.Tx, customerID string, amount decimal.Decimal) (*domain.Customer, error) {
	return u.accumulate(ctx, tx, customerID, func(c *domain.Customer) {
		c.TotalBought = c.TotalBought.Add(amount)
	})
}

func (u *AggregateUpdater) AddToPaid(ctx context.Context, tx *store.Tx, customerID string, amount decimal.Decimal) (*domain.Customer, error) {
	return u.accumulate(ctx, tx, customerID, func(c *domain.Customer) {
		c.TotalPaid = c.TotalPaid.Add(amount)
	})
}

func (u *AggregateUpdater) accumulate(ctx context.Context, tx *store.Tx, customerID string, apply func(c *domain.Customer)) (*domain.Customer, error) {
	customer, err := u.repo.FindByID(ctx, tx, customerID)
	if err != nil {
		return nil, err
	}

	apply(customer)

	if err := u.repo.Update(ctx, tx, *customer); err != nil {
		return nil, fmt.Errorf("updating totals of customer %s: %w", customerID, err)
	}

	return customer, nil
}
