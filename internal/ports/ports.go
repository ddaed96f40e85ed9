// Package ports defines the interfaces (contracts) that adapters must implement.
// These are the boundaries of the hexagonal architecture. Domain logic depends
// only on these interfaces, never on concrete implementations.
package ports

import (
	"context"
	"time"
)

// KVStore is a minimal key/value blob store used to persist the query history.
// The backing store (bbolt) is shared by every typeahead instance on the
// machine; writes are read-modify-write with last-write-wins semantics, which
// is acceptable because history entries are additive and deduplicated by
// query string.
type KVStore interface {
	// Get retrieves the value for a key.
	// Returns nil, nil if the key does not exist.
	Get(key string) ([]byte, error)

	// Set stores the value for a key, overwriting any prior value.
	Set(key string, value []byte) error

	// Close releases the underlying store.
	Close() error
}

// Source fetches raw suggestion strings for a query. The only implementation
// that crosses a process boundary is the remote HTTP adapter; tests inject
// in-process fakes.
//
// A Source must honor ctx cancellation. An empty result with a nil error
// means "no suggestions", not failure.
type Source interface {
	Fetch(ctx context.Context, query string) ([]string, error)
}

// Clock abstracts time.Now so history expiry is testable.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock.
type SystemClock struct{}

// Now returns the current wall-clock time.
func (SystemClock) Now() time.Time { return time.Now() }

// Provenance tags where a suggestion row came from.
type Provenance string

const (
	// FromHistory marks rows matched from the local query history.
	FromHistory Provenance = "cache"
	// FromRemote marks rows returned by the remote source.
	FromRemote Provenance = "remote"
	// FromError marks the single synthetic row shown when a fetch fails.
	FromError Provenance = "error"
)

// Suggestion is one row handed to a renderer. Lists are always deduplicated
// case-insensitively, ordered history-first then remote, and capped before
// they leave the merge policy.
type Suggestion struct {
	Value  string     `json:"value"`
	Source Provenance `json:"source"`
}
