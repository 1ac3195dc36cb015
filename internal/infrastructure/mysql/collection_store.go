package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"crediario/internal/kv"
)

// CollectionStore keeps each collection as one JSON array row.
type CollectionStore struct {
	db *sql.DB
}

func NewCollectionStore(db *sql.DB) *CollectionStore {
	return &CollectionStore{db: db}
}

func (s *CollectionStore) Migrate(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS Collections (
		name VARCHAR(64) NOT NULL PRIMARY KEY,
		records JSON NOT NULL,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`

	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("creating Collections table: %w", err)
	}
	return nil
}

func (s *CollectionStore) Get(ctx context.Context, collection string) ([]kv.Record, error) {
	query := `SELECT records FROM Collections WHERE name = ?`

	var payload []byte
	err := s.db.QueryRowContext(ctx, query, collection).Scan(&payload)
	if err == sql.ErrNoRows {
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
		INSERT INTO Collections (name, records) VALUES (?, ?)
		ON DUPLICATE KEY UPDATE records = VALUES(records)
	`

	if _, err := s.db.ExecContext(ctx, query, collection, payload); err != nil {
		return fmt.Errorf("writing collection %s: %w", collection, err)
	}
	return nil
}
