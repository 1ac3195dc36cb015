package service

import (
	"context"
	"fmt"

	"crediario/internal/domain"
	"crediario/internal/store"
)

type StockRepository interface {
	FindByID(ctx context.Context, tx *store.Tx, id string) (*domain.Product, error)
	Update(ctx context.Context, tx *store.Tx, p domain.Product) error
}

// StockAdjuster applies signed stock deltas. It never clamps: a sale larger
// than the stock on hand leaves the product negative.
type StockAdjuster struct {
	repo StockRepository
}

func NewStockAdjuster(repo StockRepository) *StockAdjuster {
	return &StockAdjuster{repo: repo}
}

func (a *StockAdjuster) AdjustStock(ctx context.Context, tx *store.Tx, productID string, delta int) (*domain.Product, error) {
	product, err := a.repo.FindByID(ctx, tx, productID)
	if err != nil {
		return nil, err
	}

	product.Stock += delta

	if err := a.repo.Update(ctx, tx, *product); err != nil {
		return nil, fmt.Errorf("adjusting stock of product %s: %w", productID, err)
	}

	return product, nil
}
