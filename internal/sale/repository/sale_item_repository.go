package repository

import (
	"context"

	"crediario/internal/domain"
	"crediario/internal/kv"
	"crediario/internal/store"
)

var saleItems = store.Collection[domain.SaleItem]{
	Name:   kv.CollectionSaleItems,
	Entity: "sale item",
	ID:     func(i domain.SaleItem) string { return i.ID },
}

type KVSaleItemRepository struct{}

func NewKVSaleItemRepository() *KVSaleItemRepository {
	return &KVSaleItemRepository{}
}

func (r *KVSaleItemRepository) FindBySaleID(ctx context.Context, tx *store.Tx, saleID string) ([]domain.SaleItem, error) {
	return saleItems.Filter(ctx, tx, func(i domain.SaleItem) bool { return i.SaleID == saleID })
}

func (r *KVSaleItemRepository) InsertMany(ctx context.Context, tx *store.Tx, items []domain.SaleItem) error {
	return saleItems.Insert(ctx, tx, items...)
}
