package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// timestampLayout is the timestamp format of the history file
const timestampLayout = "2006-01-02 15:04:05"

// JSONStore keeps the history in a single JSON file holding an
// oldest-first list of {expression, result, timestamp} objects.
// The whole file is rewritten on every change.
type JSONStore struct {
	mu      sync.RWMutex
	path    string
	limit   int
	entries []Entry
}

// fileEntry is the on-disk form of an entry
type fileEntry struct {
	ID         string `json:"id,omitempty"`
	Expression string `json:"expression"`
	Result     string `json:"result"`
	Timestamp  string `json:"timestamp"`
}

// NewJSONStore opens or creates the history file at path
func NewJSONStore(path string, limit int) (*JSONStore, error) {
	if path == "" {
		path = "./data/history.json"
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	s := &JSONStore{path: path, limit: limit}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *JSONStore) load() error {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		s.entries = make([]Entry, 0)
		return nil
	}
	if err != nil {
		return storageError("load", fmt.Errorf("failed to read history file: %w", err))
	}

	var raw []fileEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return storageError("load", fmt.Errorf("failed to parse history file: %w", err))
	}

	entries := make([]Entry, 0, len(raw))
	for _, r := range raw {
		ts, err := time.ParseInLocation(timestampLayout, r.Timestamp, time.Local)
		if err != nil {
			ts = time.Time{}
		}
		entries = append(entries, prepare(Entry{
			ID:         r.ID,
			Expression: r.Expression,
			Result:     r.Result,
			Timestamp:  ts,
		}))
	}
	s.entries = trim(entries, s.limit)
	return nil
}

// save writes the entries through a temporary file and rename
func (s *JSONStore) save() error {
	raw := make([]fileEntry, 0, len(s.entries))
	for _, e := range s.entries {
		raw = append(raw, fileEntry{
			ID:         e.ID,
			Expression: e.Expression,
			Result:     e.Result,
			Timestamp:  e.Timestamp.Format(timestampLayout),
		})
	}

	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write history file: %w", err)
	}
	return os.Rename(tmp, s.path)
}

// Add appends an entry and rewrites the file
func (s *JSONStore) Add(ctx context.Context, entry Entry) (Entry, error) {
	if err := ctx.Err(); err != nil {
		return Entry{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry = prepare(entry)
	previous := s.entries
	s.entries = trim(append(append([]Entry(nil), s.entries...), entry), s.limit)
	if err := s.save(); err != nil {
		s.entries = previous
		return Entry{}, storageError("add", err)
	}
	return entry, nil
}

// List returns all entries, oldest first
func (s *JSONStore) List(ctx context.Context) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]Entry(nil), s.entries...), nil
}

// Clear removes all entries and rewrites the file
func (s *JSONStore) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.entries
	s.entries = make([]Entry, 0)
	if err := s.save(); err != nil {
		s.entries = previous
		return storageError("clear", err)
	}
	return nil
}

// Close is a no-op; every change is already on disk
func (s *JSONStore) Close() error {
	return nil
}
