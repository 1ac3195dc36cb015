package repository

import (
	"context"

	"crediario/internal/domain"
	"crediario/internal/kv"
	"crediario/internal/store"
)

var expenses = store.Collection[domain.Expense]{
	Name:   kv.CollectionExpenses,
	Entity: "expense",
	ID:     func(e domain.Expense) string { return e.ID },
}

type KVRepository struct{}

func NewKVRepository() *KVRepository {
	return &KVRepository{}
}

func (r *KVRepository) List(ctx context.Context, tx *store.Tx) ([]domain.Expense, error) {
	return expenses.All(ctx, tx)
}

func (r *KVRepository) Insert(ctx context.Context, tx *store.Tx, e domain.Expense) error {
	return expenses.Insert(ctx, tx, e)
}
