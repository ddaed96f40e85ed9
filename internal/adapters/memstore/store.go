// Package memstore implements ports.KVStore in memory. It backs tests and
// cache-less one-shot runs where opening the bbolt file is not worth it.
package memstore

import "sync"

// Store is a map-backed KVStore. Safe for concurrent use.
type Store struct {
	mu   sync.Mutex
	data map[string][]byte

	// FailGet and FailSet, when non-nil, are returned by Get/Set. Tests use
	// them to exercise the storage-error fallback path.
	FailGet error
	FailSet error
}

// New returns an empty in-memory store.
func New() *Store {
	return &Store{data: make(map[string][]byte)}
}

// Get returns a copy of the stored value, or nil, nil when absent.
func (s *Store) Get(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailGet != nil {
		return nil, s.FailGet
	}
	v, ok := s.data[key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

// Set stores a copy of value under key.
func (s *Store) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailSet != nil {
		return s.FailSet
	}
	v := make([]byte, len(value))
	copy(v, value)
	s.data[key] = v
	return nil
}

// Close is a no-op.
func (s *Store) Close() error { return nil }
