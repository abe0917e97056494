// Package store provides the timing archive: persisted results for levels
// that were computed before.
//
// This package defines the Store interface with implementations for
// different backends:
//   - memory: In-memory storage for development/testing
//   - mongo: MongoDB-backed storage for API deployments
//
// # Architecture
//
// An Entry is one archived result: the level summary, the per-tile hit
// times, and bookkeeping fields (name, source, content hash). Entries are
// addressed by caller-assigned IDs; the API uses UUIDs. The Store interface
// supports:
//   - Put/Get/Delete operations
//   - Newest-first listing with a limit
//
// # Usage
//
// Create a store:
//
//	// Development
//	st := store.NewMemoryStore()
//
//	// Production
//	st, err := store.NewMongoStore(ctx, "mongodb://localhost:27017", "tilebeat", "entries")
//
// Archive a result:
//
//	entry := store.NewEntry(id, "My Level", result)
//	if err := st.Put(ctx, entry); err != nil {
//	    return err
//	}
package store

import (
	"context"
	"errors"
	"time"

	"github.com/adofai-tools/tilebeat/pkg/pipeline"
	"github.com/adofai-tools/tilebeat/pkg/timing"
)

// ErrNotFound is returned when an entry does not exist.
var ErrNotFound = errors.New("entry not found")

// DefaultListLimit bounds List results when the caller passes no limit.
const DefaultListLimit = 50

// Entry is one archived timing result.
type Entry struct {
	ID          string      `json:"id" bson:"_id"`
	Name        string      `json:"name" bson:"name"`
	Source      string      `json:"source,omitempty" bson:"source,omitempty"`
	ContentHash string      `json:"content_hash,omitempty" bson:"content_hash,omitempty"`
	Info        timing.Info `json:"info" bson:"info"`
	AutoOffset  float64     `json:"auto_offset_ms" bson:"auto_offset_ms"`
	Times       []float64   `json:"times_ms" bson:"times_ms"`
	CreatedAt   time.Time   `json:"created_at" bson:"created_at"`
}

// NewEntry builds an entry from a pipeline result. The caller assigns the
// ID. An empty name defaults to the level's song title.
func NewEntry(id, name string, result *pipeline.Result) *Entry {
	if name == "" {
		name = result.Info.Song
	}
	return &Entry{
		ID:          id,
		Name:        name,
		ContentHash: result.ContentHash,
		Info:        result.Info,
		AutoOffset:  result.AutoOffset,
		Times:       result.Times,
		CreatedAt:   time.Now().UTC(),
	}
}

// Store is the interface for archive storage backends.
type Store interface {
	// Put stores an entry, replacing any existing entry with the same ID.
	Put(ctx context.Context, e *Entry) error

	// Get retrieves an entry by ID.
	// Returns ErrNotFound if no entry exists.
	Get(ctx context.Context, id string) (*Entry, error)

	// List returns up to limit entries, newest first.
	// A limit of 0 uses DefaultListLimit.
	List(ctx context.Context, limit int) ([]*Entry, error)

	// Delete removes an entry.
	// Returns ErrNotFound if no entry exists.
	Delete(ctx context.Context, id string) error

	// Close releases resources held by the store.
	Close() error
}
