package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/skeetstorm/skeetstorm/internal/domain"
	_ "modernc.org/sqlite"
)

// Store implements domain.ThreadStore using SQLite. Reconstructed threads
// are stored as JSON blobs keyed by the raw request URL.
type Store struct {
	db *sql.DB
}

// NewStore opens (creating if necessary) the SQLite database at the given
// path, verifies the connection, and ensures the schema exists. The caller
// should call Close when the store is no longer needed.
func NewStore(path string) (*Store, error) {
	dsn := path + "?_journal_mode=WAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	schema := `
		CREATE TABLE IF NOT EXISTS threads (
			post_url   TEXT PRIMARY KEY,
			result     TEXT NOT NULL,
			created_at INTEGER NOT NULL
		)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// GetThread retrieves a stored result by URL. Returns (nil, nil) when the
// URL has never been stored.
func (s *Store) GetThread(ctx context.Context, postURL string) (*domain.ThreadResult, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT result FROM threads WHERE post_url = ?`, postURL,
	).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query thread: %w", err)
	}

	var result domain.ThreadResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("unmarshal stored thread: %w", err)
	}
	return &result, nil
}

// PutThread stores a result. The insert is write-once: a concurrent or
// repeated put for the same URL leaves the first stored row untouched.
func (s *Store) PutThread(ctx context.Context, postURL string, result *domain.ThreadResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal thread: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO threads (post_url, result, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT (post_url) DO NOTHING`,
		postURL, payload, time.Now().UTC().UnixMilli(),
	)
	return err
}
