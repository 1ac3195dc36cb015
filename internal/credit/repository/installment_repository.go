package repository

import (
	"context"

	"crediario/internal/domain"
	"crediario/internal/kv"
	"crediario/internal/store"
)

var installments = store.Collection[domain.Installment]{
	Name:   kv.CollectionInstallments,
	Entity: "installment",
	ID:     func(i domain.Installment) string { return i.ID },
}

// KVInstallmentRepository returns installments as stored. Callers resolve
// the overdue status themselves.
type KVInstallmentRepository struct{}

func NewKVInstallmentRepository() *KVInstallmentRepository {
	return &KVInstallmentRepository{}
}

func (r *KVInstallmentRepository) List(ctx context.Context, tx *store.Tx) ([]domain.Installment, error) {
	return installments.All(ctx, tx)
}

func (r *KVInstallmentRepository) FindByID(ctx context.Context, tx *store.Tx, id string) (*domain.Installment, error) {
	return installments.Find(ctx, tx, id)
}

func (r *KVInstallmentRepository) FindBySaleID(ctx context.Context, tx *store.Tx, saleID string) ([]domain.Installment, error) {
	return installments.Filter(ctx, tx, func(i domain.Installment) bool { return i.SaleID == saleID })
}

func (r *KVInstallmentRepository) FindByCustomerID(ctx context.Context, tx *store.Tx, customerID string) ([]domain.Installment, error) {
	return installments.Filter(ctx, tx, func(i domain.Installment) bool { return i.CustomerID == customerID })
}

func (r *KVInstallmentRepository) InsertMany(ctx context.Context, tx *store.Tx, items []domain.Installment) error {
	return installments.Insert(ctx, tx, items...)
}

func (r *KVInstallmentRepository) Update(ctx context.Context, tx *store.Tx, i domain.Installment) error {
	return installments.Replace(ctx, tx, i)
}
