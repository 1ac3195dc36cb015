package store

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	apperrors "crediario/internal/errors"
	"crediario/internal/kv"
)

type journalState string

const (
	// journalApply means the after images were being written; replay
	// rolls the transaction forward.
	journalApply journalState = "apply"
	// journalUndo means the apply failed; replay restores the before images.
	journalUndo journalState = "undo"
)

// The journal collection holds at most one entry: the latest commit. A
// stale apply entry is harmless to replay because its after images are
// still the current contents of those collections.
type journalEntry struct {
	ID          string                 `json:"id"`
	State       journalState           `json:"state"`
	CreatedAt   time.Time              `json:"created_at"`
	Collections []string               `json:"collections"`
	Before      map[string][]kv.Record `json:"before"`
	After       map[string][]kv.Record `json:"after"`
}

func (e *journalEntry) images() map[string][]kv.Record {
	if e.State == journalUndo {
		return e.Before
	}
	return e.After
}

func (s *Store) readJournal(ctx context.Context) (*journalEntry, error) {
	records, err := s.get(ctx, kv.CollectionJournal)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	var entry journalEntry
	if err := json.Unmarshal(records[0], &entry); err != nil {
		return nil, apperrors.NewPersistenceError("decoding journal entry", err)
	}
	return &entry, nil
}

func (s *Store) writeJournal(ctx context.Context, entry *journalEntry) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return apperrors.NewInternalError("encoding journal entry", err)
	}
	return s.put(ctx, kv.CollectionJournal, []kv.Record{raw})
}

// Writes of the undo marker are retried this many times before the store
// falls back to what the journal already records.
const markerAttempts = 3

// markUndo persists entry in the undo state. It reports whether the journal
// is known to hold the undo marker.
func (s *Store) markUndo(ctx context.Context, entry *journalEntry) bool {
	for attempt := 1; attempt <= markerAttempts; attempt++ {
		err := s.writeJournal(ctx, entry)
		if err == nil {
			return true
		}
		s.logger.Warn("marking journal for undo failed", zap.String("journalId", entry.ID), zap.Int("attempt", attempt), zap.Error(err))
	}

	current, err := s.readJournal(ctx)
	return err == nil && current != nil && current.ID == entry.ID && current.State == journalUndo
}

// journalLanded settles a journal write that reported failure. It returns
// true when the entry is durable anyway and the commit must go ahead.
func (s *Store) journalLanded(ctx context.Context, entry *journalEntry) bool {
	if err := s.clearJournal(ctx); err == nil {
		return false
	}

	current, err := s.readJournal(ctx)
	if err != nil {
		// Unknown outcome. The before images are the current data, so an
		// undo settled by the next transaction changes nothing.
		entry.State = journalUndo
		s.setPending(entry)
		return false
	}
	return current != nil && current.ID == entry.ID
}

func (s *Store) clearJournal(ctx context.Context) error {
	return s.put(ctx, kv.CollectionJournal, nil)
}

// replay writes the images selected by the entry state and clears the
// journal. Whole-collection writes make it idempotent.
func (s *Store) replay(ctx context.Context, entry *journalEntry) error {
	images := entry.images()
	for _, collection := range entry.Collections {
		if err := s.put(ctx, collection, images[collection]); err != nil {
			s.logger.Error("journal replay failed", zap.String("journalId", entry.ID), zap.String("collection", collection), zap.Error(err))
			return err
		}
	}

	if err := s.clearJournal(ctx); err != nil {
		s.logger.Error("clearing journal failed", zap.String("journalId", entry.ID), zap.Error(err))
		return err
	}

	s.logger.Info("journal replayed", zap.String("journalId", entry.ID), zap.String("state", string(entry.State)))
	return nil
}
