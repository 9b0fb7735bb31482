package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/exp/slog"

	"folio/internal/domain/record"
	"folio/internal/infrastructure/migration"
)

// Store is the structured backend: one table per collection, ids assigned
// by AUTOINCREMENT so they stay monotonic and are never reused after a
// clear, created_at indexed for range queries.
type Store struct {
	path   string
	log    *slog.Logger
	engine migration.Engine

	once    sync.Once
	openErr error
	db      *sql.DB
}

func New(path string, log *slog.Logger) *Store {
	return &Store{
		path:   path,
		log:    log.With("component", "sqlite_store"),
		engine: migration.DefaultEngine,
	}
}

// Open initializes the database and applies the schema. The first call
// decides the outcome; every later or concurrent call observes it.
func (s *Store) Open(ctx context.Context) error {
	s.once.Do(func() {
		s.openErr = s.open(ctx)
	})
	if s.openErr != nil {
		return fmt.Errorf("%w: %v", record.ErrStoreUnavailable, s.openErr)
	}
	return nil
}

func (s *Store) open(ctx context.Context) error {
	db, err := sql.Open("sqlite3", s.path+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("ping database: %w", err)
	}
	if err := migration.New("sqlite3://"+s.path, s.engine).Up(); err != nil {
		db.Close()
		return fmt.Errorf("apply schema: %w", err)
	}
	s.db = db
	return nil
}

func table(col record.Collection) (string, error) {
	// Table names cannot be bound parameters; map from the known set only.
	switch col {
	case record.Journals:
		return "journals", nil
	case record.Projects:
		return "projects", nil
	}
	return "", record.ErrUnknownCollection
}

func (s *Store) Append(ctx context.Context, col record.Collection, rec *record.Record) (int64, error) {
	if err := s.Open(ctx); err != nil {
		return 0, err
	}
	tbl, err := table(col)
	if err != nil {
		return 0, err
	}

	attachments := rec.Attachments
	if attachments == nil {
		attachments = []record.Attachment{}
	}
	attachmentsJSON, err := json.Marshal(attachments)
	if err != nil {
		return 0, fmt.Errorf("%w: marshal attachments: %v", record.ErrWriteFailed, err)
	}

	res, err := s.db.ExecContext(ctx,
		fmt.Sprintf(`INSERT INTO %s (title, body, attachments, created_at) VALUES (?, ?, ?, ?)`, tbl),
		rec.Title, rec.Body, string(attachmentsJSON), rec.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		s.log.Error("failed to insert record", "collection", col.String(), "error", err)
		return 0, fmt.Errorf("%w: %v", record.ErrWriteFailed, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: last insert id: %v", record.ErrWriteFailed, err)
	}
	rec.ID = id
	return id, nil
}

func (s *Store) ListAll(ctx context.Context, col record.Collection) ([]record.Record, error) {
	if err := s.Open(ctx); err != nil {
		return nil, err
	}
	tbl, err := table(col)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		fmt.Sprintf(`SELECT id, title, body, attachments, created_at FROM %s`, tbl))
	if err != nil {
		s.log.Error("failed to list records", "collection", col.String(), "error", err)
		return nil, fmt.Errorf("list %s: %w", col, err)
	}
	defer rows.Close()

	records := make([]record.Record, 0)
	for rows.Next() {
		var rec record.Record
		var attachmentsJSON, createdAt string

		if err := rows.Scan(&rec.ID, &rec.Title, &rec.Body, &attachmentsJSON, &createdAt); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		if err := json.Unmarshal([]byte(attachmentsJSON), &rec.Attachments); err != nil {
			return nil, fmt.Errorf("parse attachments: %w", err)
		}
		if len(rec.Attachments) == 0 {
			rec.Attachments = nil
		}
		rec.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}

		records = append(records, rec)
	}

	return records, rows.Err()
}

func (s *Store) Clear(ctx context.Context, col record.Collection) error {
	if err := s.Open(ctx); err != nil {
		return err
	}
	tbl, err := table(col)
	if err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s`, tbl)); err != nil {
		s.log.Error("failed to clear collection", "collection", col.String(), "error", err)
		return fmt.Errorf("%w: %v", record.ErrWriteFailed, err)
	}
	return nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
