package history

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory implementation for tests and --no-history runs
type MemoryStore struct {
	mu      sync.RWMutex
	entries []Entry
	limit   int
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore(limit int) *MemoryStore {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &MemoryStore{
		entries: make([]Entry, 0),
		limit:   limit,
	}
}

// Add appends an entry
func (s *MemoryStore) Add(ctx context.Context, entry Entry) (Entry, error) {
	if err := ctx.Err(); err != nil {
		return Entry{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry = prepare(entry)
	s.entries = trim(append(s.entries, entry), s.limit)
	return entry, nil
}

// List returns all entries, oldest first
func (s *MemoryStore) List(ctx context.Context) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]Entry(nil), s.entries...), nil
}

// Clear removes all entries
func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = s.entries[:0]
	return nil
}

// Close is a no-op
func (s *MemoryStore) Close() error {
	return nil
}
