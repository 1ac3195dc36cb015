package repository

import (
	"context"

	"crediario/internal/domain"
	"crediario/internal/kv"
	"crediario/internal/store"
)

var customers = store.Collection[domain.Customer]{
	Name:   kv.CollectionCustomers,
	Entity: "customer",
	ID:     func(c domain.Customer) string { return c.ID },
}

type KVRepository struct{}

func NewKVRepository() *KVRepository {
	return &KVRepository{}
}

func (r *KVRepository) List(ctx context.Context, tx *store.Tx) ([]domain.Customer, error) {
	return customers.All(ctx, tx)
}

func (r *KVRepository) FindByID(ctx context.Context, tx *store.Tx, id string) (*domain.Customer, error) {
	return customers.Find(ctx, tx, id)
}

func (r *KVRepository) Insert(ctx context.Context, tx *store.Tx, c domain.Customer) error {
	return customers.Insert(ctx, tx, c)
}

func (r *KVRepository) Update(ctx context.Context, tx *store.Tx, c domain.Customer) error {
	return customers.Replace(ctx, tx, c)
}
