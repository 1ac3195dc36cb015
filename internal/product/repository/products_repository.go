package repository

import (
	"context"

	"crediario/internal/domain"
	"crediario/internal/kv"
	"crediario/internal/store"
)

var products = store.Collection[domain.Product]{
	Name:   kv.CollectionProducts,
	Entity: "product",
	ID:     func(p domain.Product) string { return p.ID },
}

type KVRepository struct{}

func NewKVRepository() *KVRepository {
	return &KVRepository{}
}

func (r *KVRepository) List(ctx context.Context, tx *store.Tx) ([]domain.Product, error) {
	return products.All(ctx, tx)
}

func (r *KVRepository) FindByID(ctx context.Context, tx *store.Tx, id string) (*domain.Product, error) {
	return products.Find(ctx, tx, id)
}

func (r *KVRepository) Insert(ctx context.Context, tx *store.Tx, items ...domain.Product) error {
	return products.Insert(ctx, tx, items...)
}

func (r *KVRepository) Update(ctx context.Context, tx *store.Tx, p domain.Product) error {
	return products.Replace(ctx, tx, p)
}

func (r *KVRepository) Delete(ctx context.Context, tx *store.Tx, id string) error {
	return products.Delete(ctx, tx, id)
}
