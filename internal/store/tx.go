package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "crediario/internal/errors"
	"crediario/internal/kv"
)

var errTxDone = apperrors.NewInternalError("transaction has already been committed or rolled back", nil)

// Tx is a write-ahead staging buffer. Collections are read lazily on first
// use; writes replace the staged copy and reach the substrate only on
// Commit. A Tx is not safe for concurrent use.
type Tx struct {
	store    *Store
	writable bool
	weight   int64
	done     bool

	staged map[string][]kv.Record
	before map[string][]kv.Record
	dirty  []string
}

func newTx(s *Store, writable bool, weight int64) *Tx {
	return &Tx{
		store:    s,
		writable: writable,
		weight:   weight,
		staged:   make(map[string][]kv.Record),
		before:   make(map[string][]kv.Record),
	}
}

func (tx *Tx) records(ctx context.Context, collection string) ([]kv.Record, error) {
	if tx.done {
		return nil, errTxDone
	}
	if records, ok := tx.staged[collection]; ok {
		return records, nil
	}

	records, err := tx.store.get(ctx, collection)
	if err != nil {
		return nil, err
	}

	tx.staged[collection] = records
	tx.before[collection] = records
	return records, nil
}

func (tx *Tx) stage(ctx context.Context, collection string, records []kv.Record) error {
	if tx.done {
		return errTxDone
	}
	if !tx.writable {
		return apperrors.NewInternalError(fmt.Sprintf("write to %s in a read-only transaction", collection), nil)
	}
	if collection == kv.CollectionJournal {
		return apperrors.NewInternalError("the journal collection is reserved", nil)
	}

	// The before image must be captured even for blind writes.
	if _, ok := tx.before[collection]; !ok {
		if _, err := tx.records(ctx, collection); err != nil {
			return err
		}
	}

	if !tx.isDirty(collection) {
		tx.dirty = append(tx.dirty, collection)
	}
	tx.staged[collection] = records
	return nil
}

func (tx *Tx) isDirty(collection string) bool {
	for _, c := range tx.dirty {
		if c == collection {
			return true
		}
	}
	return false
}

// Commit applies every staged write or none of them. A context cancelled
// before the journal is written commits nothing; once the journal is
// written the apply runs to completion regardless of ctx.
func (tx *Tx) Commit(ctx context.Context) error {
	if tx.done {
		return errTxDone
	}
	defer tx.release()

	if len(tx.dirty) == 0 {
		return nil
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("transaction cancelled before commit: %w", err)
	}

	s := tx.store
	entry := &journalEntry{
		ID:          uuid.NewString(),
		State:       journalApply,
		CreatedAt:   time.Now().UTC(),
		Collections: append([]string(nil), tx.dirty...),
		Before:      make(map[string][]kv.Record, len(tx.dirty)),
		After:       make(map[string][]kv.Record, len(tx.dirty)),
	}
	for _, c := range tx.dirty {
		entry.Before[c] = tx.before[c]
		entry.After[c] = tx.staged[c]
	}

	applyCtx := context.WithoutCancel(ctx)

	if err := s.writeJournal(ctx, entry); err != nil {
		s.logger.Error("writing journal failed", zap.String("journalId", entry.ID), zap.Error(err))
		if !s.journalLanded(applyCtx, entry) {
			return err
		}
		s.logger.Warn("journal write reported failure but landed, applying", zap.String("journalId", entry.ID))
	}

	for _, c := range entry.Collections {
		if err := s.put(applyCtx, c, entry.After[c]); err != nil {
			s.logger.Error("apply failed, undoing", zap.String("journalId", entry.ID), zap.String("collection", c), zap.Error(err))
			return tx.abort(applyCtx, entry, err)
		}
	}

	if err := s.clearJournal(applyCtx); err != nil {
		s.logger.Warn("clearing journal failed", zap.String("journalId", entry.ID), zap.Error(err))
	}

	return nil
}

// abort resolves an apply that failed part way. The outcome reported to the
// caller always matches what the durable journal would replay after a
// restart: when the undo marker cannot be persisted the journal still says
// apply, so the transaction is rolled forward and reported as committed.
func (tx *Tx) abort(ctx context.Context, entry *journalEntry, cause error) error {
	s := tx.store

	entry.State = journalUndo
	if !s.markUndo(ctx, entry) {
		entry.State = journalApply
		s.logger.Error("journal still records the commit, rolling forward", zap.String("journalId", entry.ID), zap.NamedError("applyError", cause))
		if err := s.replay(ctx, entry); err != nil {
			s.logger.Error("roll forward failed, deferring to next transaction", zap.String("journalId", entry.ID), zap.Error(err))
			s.setPending(entry)
		}
		return nil
	}

	if err := s.replay(ctx, entry); err != nil {
		s.logger.Error("undo failed, deferring to next transaction", zap.String("journalId", entry.ID), zap.Error(err))
		s.setPending(entry)
	}
	return cause
}

// Rollback discards the staged writes. It is a no-op after Commit.
func (tx *Tx) Rollback() error {
	if tx.done {
		return nil
	}
	tx.release()
	return nil
}

func (tx *Tx) release() {
	tx.done = true
	tx.staged = nil
	tx.before = nil
	tx.store.lock.Release(tx.weight)
}

// Load decodes every record of a collection as seen by tx.
func Load[T any](ctx context.Context, tx *Tx, collection string) ([]T, error) {
	records, err := tx.records(ctx, collection)
	if err != nil {
		return nil, err
	}

	items := make([]T, 0, len(records))
	for i, r := range records {
		var item T
		if err := json.Unmarshal(r, &item); err != nil {
			return nil, apperrors.NewPersistenceError(fmt.Sprintf("decoding %s record %d", collection, i), err)
		}
		items = append(items, item)
	}
	return items, nil
}

// Save stages items as the new contents of a collection.
func Save[T any](ctx context.Context, tx *Tx, collection string, items []T) error {
	records := make([]kv.Record, 0, len(items))
	for _, item := range items {
		raw, err := json.Marshal(item)
		if err != nil {
			return apperrors.NewInternalError(fmt.Sprintf("encoding %s record", collection), err)
		}
		records = append(records, raw)
	}
	return tx.stage(ctx, collection, records)
}
