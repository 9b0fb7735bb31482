package mirror

import (
	"encoding/json"
	"fmt"

	"github.com/peterbourgon/diskv/v3"
	"golang.org/x/exp/slog"

	"folio/internal/domain/record"
)

// Store is the fallback mirror: a flat key-value namespace where each
// collection key holds one JSON array snapshot of all its records,
// rewritten wholesale on every update. It also exposes the raw key-value
// surface for small single-document consumers.
type Store struct {
	d   *diskv.Diskv
	log *slog.Logger
}

func New(basePath string, log *slog.Logger) *Store {
	return &Store{
		d: diskv.New(diskv.Options{
			BasePath:     basePath,
			CacheSizeMax: 1024 * 1024, // 1MB
		}),
		log: log.With("component", "mirror_store"),
	}
}

// ReadSnapshot returns the mirrored record list for a collection.
// A missing key is an empty collection, not an error.
func (s *Store) ReadSnapshot(col record.Collection) ([]record.Record, error) {
	if !s.d.Has(col.String()) {
		return []record.Record{}, nil
	}
	data, err := s.d.Read(col.String())
	if err != nil {
		return nil, fmt.Errorf("read mirror snapshot %s: %w", col, err)
	}
	var records []record.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse mirror snapshot %s: %w", col, err)
	}
	if records == nil {
		records = []record.Record{}
	}
	return records, nil
}

// WriteSnapshot replaces the collection snapshot wholesale.
func (s *Store) WriteSnapshot(col record.Collection, records []record.Record) error {
	if records == nil {
		records = []record.Record{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshal mirror snapshot %s: %w", col, err)
	}
	if err := s.d.Write(col.String(), data); err != nil {
		return fmt.Errorf("%w: mirror %s: %v", record.ErrWriteFailed, col, err)
	}
	return nil
}

// Erase drops the collection snapshot. Erasing an absent key is a no-op.
func (s *Store) Erase(col record.Collection) error {
	if !s.d.Has(col.String()) {
		return nil
	}
	if err := s.d.Erase(col.String()); err != nil {
		return fmt.Errorf("%w: erase mirror %s: %v", record.ErrWriteFailed, col, err)
	}
	return nil
}

// Read returns the raw value under key.
func (s *Store) Read(key string) ([]byte, error) {
	return s.d.Read(key)
}

// Write stores the raw value under key.
func (s *Store) Write(key string, data []byte) error {
	return s.d.Write(key, data)
}

// Has reports whether key is present.
func (s *Store) Has(key string) bool {
	return s.d.Has(key)
}
