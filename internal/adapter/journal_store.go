package adapter

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	m "github.com/mouse-blink/treesync/internal/model"
)

const journalSchema = `
CREATE TABLE IF NOT EXISTS saves (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	path       TEXT    NOT NULL,
	hash       TEXT    NOT NULL,
	size       INTEGER NOT NULL,
	saved_at   INTEGER NOT NULL,
	session_id TEXT    NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS saves_path ON saves(path, saved_at);
`

// JournalStore persists and retrieves the record of saved revisions.
type JournalStore interface {
	Record(ctx context.Context, entry m.JournalEntry) error
	List(ctx context.Context, path m.Path) ([]m.JournalEntry, error)
	Close() error
}

type sqliteJournalStore struct {
	db *sql.DB
}

// NewSQLiteJournalStore opens (and creates when needed) the journal database
// at dsn. Use ":memory:" for a throwaway journal.
func NewSQLiteJournalStore(ctx context.Context, dsn string) (JournalStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open journal %s: %w", dsn, err)
	}

	// a single connection keeps ":memory:" databases alive and serialises writers
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, journalSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create journal schema: %w", err)
	}

	return &sqliteJournalStore{db: db}, nil
}

func (s *sqliteJournalStore) Record(ctx context.Context, entry m.JournalEntry) error {
	savedAt := entry.SavedAt
	if savedAt.IsZero() {
		savedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO saves (path, hash, size, saved_at, session_id) VALUES (?, ?, ?, ?, ?)`,
		string(entry.Path), entry.Hash, entry.Size, savedAt.UnixNano(), entry.SessionID,
	)
	if err != nil {
		return fmt.Errorf("record save of %s: %w", entry.Path, err)
	}

	return nil
}

// List returns the saves of path, oldest first.
func (s *sqliteJournalStore) List(ctx context.Context, path m.Path) ([]m.JournalEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT path, hash, size, saved_at, session_id FROM saves WHERE path = ? ORDER BY saved_at, id`,
		string(path),
	)
	if err != nil {
		return nil, fmt.Errorf("list saves of %s: %w", path, err)
	}

	defer func() {
		_ = rows.Close()
	}()

	var entries []m.JournalEntry

	for rows.Next() {
		var (
			entry   m.JournalEntry
			p       string
			savedAt int64
		)

		if err := rows.Scan(&p, &entry.Hash, &entry.Size, &savedAt, &entry.SessionID); err != nil {
			return nil, err
		}

		entry.Path = m.Path(p)
		entry.SavedAt = time.Unix(0, savedAt)
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func (s *sqliteJournalStore) Close() error {
	return s.db.Close()
}

type nopJournalStore struct{}

// NewNopJournalStore returns a JournalStore that keeps nothing, used when
// journaling is disabled.
func NewNopJournalStore() JournalStore {
	return nopJournalStore{}
}

func (nopJournalStore) Record(context.Context, m.JournalEntry) error { return nil }

func (nopJournalStore) List(context.Context, m.Path) ([]m.JournalEntry, error) { return nil, nil }

func (nopJournalStore) Close() error { return nil }
