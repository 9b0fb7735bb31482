package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/exp/slog"

	"folio/internal/domain/record"
)

// Structured is the primary, schema-aware backend.
type Structured interface {
	Open(ctx context.Context) error
	Append(ctx context.Context, col record.Collection, rec *record.Record) (int64, error)
	ListAll(ctx context.Context, col record.Collection) ([]record.Record, error)
	Clear(ctx context.Context, col record.Collection) error
	Close() error
}

// Mirror is the flat key-value snapshot backend.
type Mirror interface {
	ReadSnapshot(col record.Collection) ([]record.Record, error)
	WriteSnapshot(col record.Collection, records []record.Record) error
	Erase(col record.Collection) error
}

// DualStore implements record.Store over a structured backend mirrored
// into a key-value snapshot. Writes commit to the structured store first
// and only then rewrite the mirror snapshot wholesale from an
// authoritative read, so the two backends cannot silently diverge on a
// half-failed append. When the structured store cannot open at all the
// store degrades to mirror-only reads and best-effort mirror writes.
type DualStore struct {
	structured Structured
	mirror     Mirror
	log        *slog.Logger

	mu       sync.Mutex
	opened   bool
	openErr  error
	degraded bool
}

func NewDualStore(structured Structured, mirror Mirror, log *slog.Logger) *DualStore {
	return &DualStore{
		structured: structured,
		mirror:     mirror,
		log:        log.With("component", "dual_store"),
	}
}

// Open initializes the structured backend. ErrStoreUnavailable is
// returned so the caller can report it, but the store stays usable in
// degraded mode; repeated calls observe the first outcome.
func (s *DualStore) Open(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.opened {
		s.opened = true
		if err := s.structured.Open(ctx); err != nil {
			s.openErr = err
			s.degraded = true
			s.log.Warn("structured store unavailable, degrading to mirror", "error", err)
		}
	}
	return s.openErr
}

// Degraded reports whether the store is running on the mirror alone.
func (s *DualStore) Degraded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.degraded
}

func (s *DualStore) Append(ctx context.Context, col record.Collection, rec *record.Record) (int64, error) {
	if !col.Valid() {
		return 0, record.ErrUnknownCollection
	}
	if s.Degraded() {
		return s.appendMirror(col, rec)
	}

	id, err := s.structured.Append(ctx, col, rec)
	if err != nil {
		return 0, err
	}

	// Snapshot is rebuilt from the authoritative store after every
	// committed append; a mirror failure here is tolerated because the
	// next successful append rewrites the whole snapshot again.
	all, err := s.structured.ListAll(ctx, col)
	if err != nil {
		s.log.Warn("mirror snapshot skipped", "collection", col.String(), "error", err)
		return id, nil
	}
	if err := s.mirror.WriteSnapshot(col, all); err != nil {
		s.log.Warn("mirror snapshot write failed", "collection", col.String(), "error", err)
	}
	return id, nil
}

// appendMirror assigns the next id from the snapshot and rewrites it.
// Ids stay monotonic within the snapshot but reconciliation with a later
// structured store is out of scope.
func (s *DualStore) appendMirror(col record.Collection, rec *record.Record) (int64, error) {
	snapshot, err := s.mirror.ReadSnapshot(col)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", record.ErrWriteFailed, err)
	}
	var maxID int64
	for _, r := range snapshot {
		if r.ID > maxID {
			maxID = r.ID
		}
	}
	rec.ID = maxID + 1
	snapshot = append(snapshot, *rec)
	if err := s.mirror.WriteSnapshot(col, snapshot); err != nil {
		return 0, err
	}
	return rec.ID, nil
}

// ListAll prefers the structured store. A successful read is
// authoritative even when empty; only a failed read consults the mirror.
func (s *DualStore) ListAll(ctx context.Context, col record.Collection) ([]record.Record, error) {
	if !col.Valid() {
		return nil, record.ErrUnknownCollection
	}
	if s.Degraded() {
		return s.mirror.ReadSnapshot(col)
	}

	records, err := s.structured.ListAll(ctx, col)
	if err == nil {
		return records, nil
	}

	s.log.Warn("structured read failed, consulting mirror", "collection", col.String(), "error", err)
	snapshot, merr := s.mirror.ReadSnapshot(col)
	if merr != nil {
		return nil, errors.Join(err, merr)
	}
	return snapshot, nil
}

// Clear empties the collection in the structured store first, then drops
// the mirror key. A failed mirror erase is logged and tolerated: reads
// stay correct because a successful structured read wins over the stale
// snapshot, and the key is rewritten on the next append.
func (s *DualStore) Clear(ctx context.Context, col record.Collection) error {
	if !col.Valid() {
		return record.ErrUnknownCollection
	}
	if s.Degraded() {
		return s.mirror.Erase(col)
	}

	if err := s.structured.Clear(ctx, col); err != nil {
		return err
	}
	if err := s.mirror.Erase(col); err != nil {
		s.log.Warn("mirror erase failed", "collection", col.String(), "error", err)
	}
	return nil
}

func (s *DualStore) Close() error {
	return s.structured.Close()
}
