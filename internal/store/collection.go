package store

import (
	"context"
	"fmt"

	apperrors "crediario/internal/errors"
)

// Collection gives id-keyed access to one kv collection of T. Writes
// read-modify-write the whole collection inside the caller's Tx.
type Collection[T any] struct {
	Name   string
	Entity string
	ID     func(T) string
}

func (c Collection[T]) All(ctx context.Context, tx *Tx) ([]T, error) {
	return Load[T](ctx, tx, c.Name)
}

func (c Collection[T]) Find(ctx context.Context, tx *Tx, id string) (*T, error) {
	items, err := c.All(ctx, tx)
	if err != nil {
		return nil, err
	}

	for i := range items {
		if c.ID(items[i]) == id {
			item := items[i]
			return &item, nil
		}
	}
	return nil, c.notFound(id)
}

func (c Collection[T]) Filter(ctx context.Context, tx *Tx, keep func(T) bool) ([]T, error) {
	items, err := c.All(ctx, tx)
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out, nil
}

// Insert appends items in order.
func (c Collection[T]) Insert(ctx context.Context, tx *Tx, items ...T) error {
	existing, err := c.All(ctx, tx)
	if err != nil {
		return err
	}
	return Save(ctx, tx, c.Name, append(existing, items...))
}

func (c Collection[T]) Replace(ctx context.Context, tx *Tx, item T) error {
	items, err := c.All(ctx, tx)
	if err != nil {
		return err
	}

	id := c.ID(item)
	for i := range items {
		if c.ID(items[i]) == id {
			items[i] = item
			return Save(ctx, tx, c.Name, items)
		}
	}
	return c.notFound(id)
}

func (c Collection[T]) Delete(ctx context.Context, tx *Tx, id string) error {
	items, err := c.All(ctx, tx)
	if err != nil {
		return err
	}

	for i := range items {
		if c.ID(items[i]) == id {
			return Save(ctx, tx, c.Name, append(items[:i], items[i+1:]...))
		}
	}
	return c.notFound(id)
}

func (c Collection[T]) notFound(id string) error {
	return apperrors.NewNotFoundError(fmt.Sprintf("%s with id %s not found", c.Entity, id))
}
