// Package bbolt implements the ports.KVStore interface using bbolt (embedded
// B+ tree). One top-level bucket holds every key. Writes are transactional —
// a crash mid-write cannot corrupt previously committed data — which is what
// lets multiple typeahead instances share the same history file with plain
// last-write-wins semantics.
package bbolt

import (
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

var bucketName = []byte("typeahead")

// Store implements ports.KVStore backed by bbolt.
type Store struct {
	db *bolt.DB
}

// NewStore opens (or creates) a bbolt database at the given path. The 1s
// timeout keeps a second instance from hanging forever when a daemon already
// holds the file lock.
func NewStore(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}
	return &Store{db: db}, nil
}

// Get retrieves the value for a key. Returns nil, nil if the key (or the
// bucket, on a fresh database) does not exist.
func (s *Store) Get(key string) ([]byte, error) {
	var out []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)
		if b == nil {
			return nil
		}
		// Copy bytes out of the transaction (bbolt slices are only valid within tx)
		if v := b.Get([]byte(key)); v != nil {
			out = make([]byte, len(v))
			copy(out, v)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("bbolt get: %w", err)
	}
	return out, nil
}

// Set stores the value for a key, overwriting any prior value.
func (s *Store) Set(key string, value []byte) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketName)
		if err != nil {
			return err
		}
		return b.Put([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("bbolt set: %w", err)
	}
	return nil
}

// Close closes the underlying bbolt database.
func (s *Store) Close() error {
	return s.db.Close()
}
