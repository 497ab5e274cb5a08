// ============================================================================
// meinRECHNER (mRE) - Tischrechner mit Verlauf
// ============================================================================
//
// Package:     history
// Description: Persisted calculation history with capped capacity
// Author:      Mike Stoffels
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package history

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	mreerror "github.com/msto63/mRechner/foundation/core/error"
)

// DefaultLimit is the number of entries kept when no limit is configured
const DefaultLimit = 100

// Entry is one committed calculation
type Entry struct {
	ID         string    `json:"id"`
	Expression string    `json:"expression"`
	Result     string    `json:"result"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewEntry creates an entry with a fresh ID and the current time
func NewEntry(expression, result string) Entry {
	return Entry{
		ID:         uuid.NewString(),
		Expression: expression,
		Result:     result,
		Timestamp:  time.Now(),
	}
}

// Store defines the interface for history persistence.
// Stores are append-only and keep at most their limit of entries,
// evicting the oldest first.
type Store interface {
	// Add appends an entry. Missing ID and timestamp are filled in.
	Add(ctx context.Context, entry Entry) (Entry, error)
	// List returns all entries, oldest first
	List(ctx context.Context) ([]Entry, error)
	// Clear removes all entries
	Clear(ctx context.Context) error
	Close() error
}

// Options selects and configures a store backend
type Options struct {
	Backend string // sqlite, json or memory
	Path    string
	Limit   int
}

// Open creates the store for the configured backend
func Open(opts Options) (Store, error) {
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}

	switch opts.Backend {
	case "", "sqlite":
		store, err := NewSQLiteStore(SQLiteConfig{Path: opts.Path, Limit: opts.Limit})
		if err != nil {
			return nil, storageError("open", err)
		}
		return store, nil
	case "json":
		store, err := NewJSONStore(opts.Path, opts.Limit)
		if err != nil {
			return nil, err
		}
		return store, nil
	case "memory":
		return NewMemoryStore(opts.Limit), nil
	default:
		return nil, mreerror.Newf("unknown history backend %q", opts.Backend).
			WithCode(mreerror.CodeConfigError).
			WithOperation("history.open")
	}
}

// prepare fills in defaults for a new entry
func prepare(entry Entry) Entry {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	return entry
}

// trim keeps the newest limit entries of an oldest-first slice
func trim(entries []Entry, limit int) []Entry {
	if limit <= 0 || len(entries) <= limit {
		return entries
	}
	return append([]Entry(nil), entries[len(entries)-limit:]...)
}

func storageError(operation string, err error) error {
	return mreerror.Wrap(err, fmt.Sprintf("history %s failed", operation)).
		WithCode(mreerror.CodeStorageError).
		WithOperation("history." + operation)
}
