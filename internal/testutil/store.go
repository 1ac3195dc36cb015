package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"crediario/internal/infrastructure/memory"
	"crediario/internal/store"
)

// NewStore returns an opened store over a fresh in-memory substrate.
func NewStore(t *testing.T) *store.Store {
	t.Helper()

	s := store.New(memory.NewStore(), zap.NewNop())
	require.NoError(t, s.Open(context.Background()))
	return s
}

// WithTx runs fn in a read-write transaction and commits it.
func WithTx(t *testing.T, s *store.Store, fn func(ctx context.Context, tx *store.Tx)) {
	t.Helper()

	ctx := context.Background()
	tx, err := s.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback()

	fn(ctx, tx)
	require.NoError(t, tx.Commit(ctx))
}

// FixedClock returns a clock that always reports now.
func FixedClock(now time.Time) func() time.Time {
	return func() time.Time { return now }
}
