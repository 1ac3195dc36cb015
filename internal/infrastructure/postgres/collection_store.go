package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"crediario/internal/kv"
)

// CollectionStore keeps each collection as one JSONB array row.
type CollectionStore struct {
	pool *pgxpool.Pool
}

func NewCollectionStore(pool *pgxpool.Pool) *CollectionStore {
	return &CollectionStore{pool: pool}
}

func (s *CollectionStore) Migrate(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS collections (
		name VARCHAR(64) PRIMARY KEY,
		records JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`

	if _, err := s.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("creating collections table: %w", err)
	}
	return nil
}

func (s *CollectionStore) Get(ctx context.Context, collection string) ([]kv.Record, error) {
	var payload []byte
	err := s.pool.QueryRow(ctx, `SELECT records FROM collections WHERE name = $1`, collection).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying collection %s: %w", collection, err)
	}

	return kv.DecodeCollection(payload)
}

func (s *CollectionStore) Put(ctx context.Context, collection string, records []kv.Record) error {
	payload, err := kv.EncodeCollection(records)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO collections (name, records, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE SET records = EXCLUDED.records, updated_at = now()
	`

	if _, err := s.pool.Exec(ctx, query, collection, payload); err != nil {
		return fmt.Errorf("writing collection %s: %w", collection, err)
	}
	return nil
}
