// Package store is the transactional layer over the kv substrate. Every
// mutating operation runs inside a Tx that stages whole-collection writes
// and applies them under one exclusive lock, journaled so that a failed or
// interrupted apply can be undone or replayed.
package store

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	apperrors "crediario/internal/errors"
	"crediario/internal/kv"
)

// Writers take the full weight, readers one unit.
const lockWeight = 1 << 20

type Store struct {
	kv     kv.Store
	lock   *semaphore.Weighted
	logger *zap.Logger

	recoverMu  sync.Mutex
	pending    *journalEntry
	hasPending atomic.Bool
}

func New(backend kv.Store, logger *zap.Logger) *Store {
	return &Store{
		kv:     backend,
		lock:   semaphore.NewWeighted(lockWeight),
		logger: logger,
	}
}

// Open finishes any transaction a previous process left in the journal.
// It must run before the store serves traffic.
func (s *Store) Open(ctx context.Context) error {
	if err := s.lock.Acquire(ctx, lockWeight); err != nil {
		return fmt.Errorf("acquiring store lock: %w", err)
	}
	defer s.lock.Release(lockWeight)

	entry, err := s.readJournal(ctx)
	if err != nil {
		return err
	}
	if entry == nil {
		return nil
	}

	s.logger.Warn("replaying journal", zap.String("journalId", entry.ID), zap.String("state", string(entry.State)), zap.Strings("collections", entry.Collections))
	return s.replay(ctx, entry)
}

// Begin starts a read-write transaction. It blocks until every other
// transaction has finished or ctx is done.
func (s *Store) Begin(ctx context.Context) (*Tx, error) {
	if err := s.lock.Acquire(ctx, lockWeight); err != nil {
		return nil, fmt.Errorf("acquiring store lock: %w", err)
	}

	if err := s.recoverPending(ctx); err != nil {
		s.lock.Release(lockWeight)
		return nil, err
	}

	return newTx(s, true, lockWeight), nil
}

// BeginRead starts a read-only transaction. Readers run concurrently with
// each other and never observe a partially applied write.
func (s *Store) BeginRead(ctx context.Context) (*Tx, error) {
	if s.hasPending.Load() {
		if err := s.lock.Acquire(ctx, lockWeight); err != nil {
			return nil, fmt.Errorf("acquiring store lock: %w", err)
		}
		err := s.recoverPending(ctx)
		s.lock.Release(lockWeight)
		if err != nil {
			return nil, err
		}
	}

	if err := s.lock.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("acquiring store lock: %w", err)
	}

	return newTx(s, false, 1), nil
}

// recoverPending finishes an undo or roll forward that failed during a
// commit in this process. The entry is journaled first so a restart in the
// middle replays the same outcome. Callers hold the exclusive lock.
func (s *Store) recoverPending(ctx context.Context) error {
	s.recoverMu.Lock()
	defer s.recoverMu.Unlock()

	if s.pending == nil {
		return nil
	}

	if err := s.writeJournal(ctx, s.pending); err != nil {
		return err
	}
	if err := s.replay(ctx, s.pending); err != nil {
		return err
	}

	s.pending = nil
	s.hasPending.Store(false)
	return nil
}

func (s *Store) setPending(entry *journalEntry) {
	s.recoverMu.Lock()
	defer s.recoverMu.Unlock()

	s.pending = entry
	s.hasPending.Store(true)
}

func (s *Store) get(ctx context.Context, collection string) ([]kv.Record, error) {
	records, err := s.kv.Get(ctx, collection)
	if err != nil {
		return nil, apperrors.NewPersistenceError(fmt.Sprintf("reading collection %s", collection), err)
	}
	return records, nil
}

func (s *Store) put(ctx context.Context, collection string, records []kv.Record) error {
	if err := s.kv.Put(ctx, collection, records); err != nil {
		return apperrors.NewPersistenceError(fmt.Sprintf("writing collection %s", collection), err)
	}
	return nil
}
