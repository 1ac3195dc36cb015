// Package kv defines the persistence substrate the domain store runs on: a
// durable map from collection name to an ordered sequence of JSON records,
// read and written whole. Implementations make no transactional promise.
package kv

import (
	"context"
	"encoding/json"
	"fmt"
)

type Record = json.RawMessage

type Store interface {
	// Get returns the records of a collection in stored order. A collection
	// that was never written is empty, not an error.
	Get(ctx context.Context, collection string) ([]Record, error)
	// Put replaces the whole collection.
	Put(ctx context.Context, collection string, records []Record) error
}

const (
	CollectionCustomers    = "customers"
	CollectionProducts     = "products"
	CollectionSales        = "sales"
	CollectionSaleItems    = "sale_items"
	CollectionInstallments = "installments"
	CollectionExpenses     = "expenses"
	CollectionJournal      = "_journal"
)

// EncodeCollection serializes records as a single JSON array, the payload
// format shared by the database-backed stores.
func EncodeCollection(records []Record) ([]byte, error) {
	if records == nil {
		records = []Record{}
	}
	payload, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("encoding collection: %w", err)
	}
	return payload, nil
}

func DecodeCollection(payload []byte) ([]Record, error) {
	if len(payload) == 0 {
		return nil, nil
	}
	var records []Record
	if err := json.Unmarshal(payload, &records); err != nil {
		return nil, fmt.Errorf("decoding collection: %w", err)
	}
	return records, nil
}
