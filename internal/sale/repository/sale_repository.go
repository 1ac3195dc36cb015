package repository

import (
	"context"

	"crediario/internal/domain"
	"crediario/internal/kv"
	"crediario/internal/store"
)

var sales = store.Collection[domain.Sale]{
	Name:   kv.CollectionSales,
	Entity: "sale",
	ID:     func(s domain.Sale) string { return s.ID },
}

// KVSaleRepository has no update or delete: sales are immutable.
type KVSaleRepository struct{}

func NewKVSaleRepository() *KVSaleRepository {
	return &KVSaleRepository{}
}

func (r *KVSaleRepository) List(ctx context.Context, tx *store.Tx) ([]domain.Sale, error) {
	return sales.All(ctx, tx)
}

func (r *KVSaleRepository) FindByID(ctx context.Context, tx *store.Tx, id string) (*domain.Sale, error) {
	return sales.Find(ctx, tx, id)
}

func (r *KVSaleRepository) FindByCustomerID(ctx context.Context, tx *store.Tx, customerID string) ([]domain.Sale, error) {
	return sales.Filter(ctx, tx, func(s domain.Sale) bool {
		return s.CustomerID != nil && *s.CustomerID == customerID
	})
}

func (r *KVSaleRepository) Insert(ctx context.Context, tx *store.Tx, s domain.Sale) error {
	return sales.Insert(ctx, tx, s)
}
