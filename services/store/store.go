// services/store/store.go
//
// Capture journal. Image files under the captures directory accumulate
// forever (nothing here cleans them up); the journal keeps each one
// attributable: when it was taken, what text was read, where it was uploaded.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS captures (
	id          TEXT PRIMARY KEY,
	photo_path  TEXT NOT NULL,
	text        TEXT NOT NULL DEFAULT '',
	upload_url  TEXT NOT NULL DEFAULT '',
	created_at  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_captures_created_at ON captures(created_at);
`

// Capture is one journal row.
type Capture struct {
	ID        string
	PhotoPath string
	Text      string
	UploadURL string
	CreatedAt time.Time
}

// Store provides durable storage for the capture journal.
type Store struct {
	db *sql.DB
}

// Open creates or opens the SQLite journal at path. SQLite only supports one
// writer at a time, so the pool is pinned to a single connection.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect journal: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(`PRAGMA journal_mode=WAL; PRAGMA busy_timeout=5000;`); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// WriteCapture inserts a journal row. Duplicate IDs are silently ignored so a
// replayed pipeline run stays idempotent.
func (s *Store) WriteCapture(ctx context.Context, c Capture) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO captures (id, photo_path, text, upload_url, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, c.ID, c.PhotoPath, c.Text, c.UploadURL, c.CreatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("write capture: %w", err)
	}
	return nil
}

// SetUploadURL records where a capture ended up after upload.
func (s *Store) SetUploadURL(ctx context.Context, id, url string) error {
	_, err := s.db.ExecContext(ctx, `UPDATE captures SET upload_url = ? WHERE id = ?`, url, id)
	if err != nil {
		return fmt.Errorf("set upload url: %w", err)
	}
	return nil
}

// RecentCaptures returns up to limit rows, newest first.
func (s *Store) RecentCaptures(ctx context.Context, limit int) ([]Capture, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, photo_path, text, upload_url, created_at
		FROM captures ORDER BY created_at DESC, id LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent captures: %w", err)
	}
	defer rows.Close()

	var out []Capture
	for rows.Next() {
		var c Capture
		var ms int64
		if err := rows.Scan(&c.ID, &c.PhotoPath, &c.Text, &c.UploadURL, &ms); err != nil {
			return nil, fmt.Errorf("scan capture: %w", err)
		}
		c.CreatedAt = time.UnixMilli(ms)
		out = append(out, c)
	}
	return out, rows.Err()
}
