package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"github.com/msto63/mRechner/pkg/core/version"
)

// SQLiteStore implements Store using SQLite
type SQLiteStore struct {
	db    *sql.DB
	mu    sync.RWMutex
	limit int
}

// SQLiteConfig holds configuration for the SQLite store
type SQLiteConfig struct {
	Path  string
	Limit int
}

// DefaultSQLiteConfig returns default configuration
func DefaultSQLiteConfig() SQLiteConfig {
	return SQLiteConfig{
		Path:  "./data/history.db",
		Limit: DefaultLimit,
	}
}

// NewSQLiteStore creates a new SQLite-based history store
func NewSQLiteStore(cfg SQLiteConfig) (*SQLiteStore, error) {
	if cfg.Path == "" {
		cfg.Path = DefaultSQLiteConfig().Path
	}
	if cfg.Limit <= 0 {
		cfg.Limit = DefaultLimit
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	// Open database with WAL mode
	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One writer; keeps :memory: databases on a single connection
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db, limit: cfg.Limit}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates the history table
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS history (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		expression TEXT NOT NULL,
		result TEXT NOT NULL,
		timestamp DATETIME NOT NULL
	);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return err
	}

	_, err := s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", version.HistorySchema))
	return err
}

// Add appends an entry and evicts the oldest entries beyond the limit
func (s *SQLiteStore) Add(ctx context.Context, entry Entry) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry = prepare(entry)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Entry{}, storageError("add", fmt.Errorf("failed to begin transaction: %w", err))
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO history (id, expression, result, timestamp)
		VALUES (?, ?, ?, ?)
	`, entry.ID, entry.Expression, entry.Result, entry.Timestamp)
	if err != nil {
		return Entry{}, storageError("add", fmt.Errorf("failed to insert entry: %w", err))
	}

	_, err = tx.ExecContext(ctx, `
		DELETE FROM history WHERE seq NOT IN (
			SELECT seq FROM history ORDER BY seq DESC LIMIT ?
		)
	`, s.limit)
	if err != nil {
		return Entry{}, storageError("add", fmt.Errorf("failed to evict entries: %w", err))
	}

	if err := tx.Commit(); err != nil {
		return Entry{}, storageError("add", fmt.Errorf("failed to commit: %w", err))
	}
	return entry, nil
}

// List returns all entries, oldest first
func (s *SQLiteStore) List(ctx context.Context) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, expression, result, timestamp
		FROM history
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, storageError("list", fmt.Errorf("failed to query entries: %w", err))
	}
	defer rows.Close()

	entries := make([]Entry, 0)
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Expression, &e.Result, &e.Timestamp); err != nil {
			return nil, storageError("list", fmt.Errorf("failed to scan entry: %w", err))
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("list", err)
	}
	return entries, nil
}

// Clear removes all entries
func (s *SQLiteStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, `DELETE FROM history`); err != nil {
		return storageError("clear", fmt.Errorf("failed to delete entries: %w", err))
	}
	return nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
