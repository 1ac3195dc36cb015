package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crediario/internal/kv"
	"crediario/internal/testutil"
)

// Unit Tests

func TestNewCollectionStore(t *testing.T) {
	db := &sql.DB{}
	s := NewCollectionStore(db)

	assert.NotNil(t, s)
	assert.Equal(t, db, s.db)
}

// Integration Tests

func setupStore(t *testing.T) (*CollectionStore, *sql.DB) {
	db := testutil.SetupTestDB(t)
	s := NewCollectionStore(db)
	require.NoError(t, s.Migrate(context.Background()))
	return s, db
}

func TestCollectionStore_GetMissing(t *testing.T) {
	s, db := setupStore(t)
	defer testutil.CleanupTestDB(t, db)

	records, err := s.Get(context.Background(), kv.CollectionSales)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestCollectionStore_PutAndGet(t *testing.T) {
	s, db := setupStore(t)
	defer testutil.CleanupTestDB(t, db)

	ctx := context.Background()
	records := []kv.Record{
		json.RawMessage(`{"id":"1","name":"Blusa Gola V"}`),
		json.RawMessage(`{"id":"2","name":"Cinto Couro"}`),
	}

	require.NoError(t, s.Put(ctx, kv.CollectionProducts, records))

	got, err := s.Get(ctx, kv.CollectionProducts)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.JSONEq(t, `{"id":"1","name":"Blusa Gola V"}`, string(got[0]))
	assert.JSONEq(t, `{"id":"2","name":"Cinto Couro"}`, string(got[1]))
}

func TestCollectionStore_PutReplaces(t *testing.T) {
	s, db := setupStore(t)
	defer testutil.CleanupTestDB(t, db)

	ctx := context.Background()
	require.NoError(t, s.Put(ctx, kv.CollectionExpenses, []kv.Record{json.RawMessage(`{"id":"a"}`)}))
	require.NoError(t, s.Put(ctx, kv.CollectionExpenses, nil))

	got, err := s.Get(ctx, kv.CollectionExpenses)
	require.NoError(t, err)
	assert.Empty(t, got)

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM Collections WHERE name = ?`, kv.CollectionExpenses).Scan(&count))
	assert.Equal(t, 1, count)
}
