package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crediario/internal/domain"
	apperrors "crediario/internal/errors"
	"crediario/internal/product/repository"
	"crediario/internal/store"
	"crediario/internal/testutil"
)

func TestStockAdjuster_AdjustStock(t *testing.T) {
	tests := []struct {
		name     string
		stock    int
		delta    int
		expected int
	}{
		{"sale decreases stock", 10, -2, 8},
		{"restock increases stock", 3, 5, 8},
		{"oversell goes negative without clamping", 1, -4, -3},
		{"zero delta", 7, 0, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testutil.NewStore(t)
			repo := repository.NewKVRepository()
			adjuster := NewStockAdjuster(repo)

			testutil.WithTx(t, s, func(ctx context.Context, tx *store.Tx) {
				require.NoError(t, repo.Insert(ctx, tx, domain.Product{ID: "p1", SalePrice: decimal.NewFromInt(10), Stock: tt.stock}))
			})

			testutil.WithTx(t, s, func(ctx context.Context, tx *store.Tx) {
				p, err := adjuster.AdjustStock(ctx, tx, "p1", tt.delta)
				require.NoError(t, err)
				assert.Equal(t, tt.expected, p.Stock)
			})

			testutil.WithTx(t, s, func(ctx context.Context, tx *store.Tx) {
				p, err := repo.FindByID(ctx, tx, "p1")
				require.NoError(t, err)
				assert.Equal(t, tt.expected, p.Stock)
			})
		})
	}
}

func TestStockAdjuster_UnknownProduct(t *testing.T) {
	s := testutil.NewStore(t)
	adjuster := NewStockAdjuster(repository.NewKVRepository())

	testutil.WithTx(t, s, func(ctx context.Context, tx *store.Tx) {
		_, err := adjuster.AdjustStock(ctx, tx, "missing", -1)
		_, ok := apperrors.IsNotFoundError(err)
		assert.True(t, ok)
	})
}
