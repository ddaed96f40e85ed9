// Package history implements the query-history cache policy: a capped,
// time-expiring list of past committed searches, newest first.
//
// Expiry is lazy. Reads filter out entries older than the retention window
// without touching the store; stale entries are physically pruned on the next
// write cycle. The persisted form is a single versioned JSON blob so the
// backing store only needs Get/Set on one key.
package history

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/corey/typeahead/internal/ports"
)

// Retention is how long an entry stays visible after it was recorded.
const Retention = 24 * time.Hour

// StoreKey is the fixed key the serialized history lives under.
const StoreKey = "history"

// schemaVersion guards the persisted blob. An unknown version is treated the
// same as a corrupt payload: the history degrades to empty.
const schemaVersion = 1

// Entry is one recorded search.
type Entry struct {
	Query     string `json:"query"`     // normalized: trimmed + lowercased
	Timestamp int64  `json:"timestamp"` // unix seconds, used for expiry
}

// blob is the persisted envelope.
type blob struct {
	Version int     `json:"version"`
	Entries []Entry `json:"entries"`
}

// Normalize canonicalizes a query for storage and matching.
func Normalize(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

// fresh reports whether e is still inside the retention window at now.
func fresh(e Entry, now time.Time) bool {
	return now.Unix()-e.Timestamp < int64(Retention/time.Second)
}

// Match returns the fresh entries whose query contains the normalized needle,
// preserving stored order (newest first). The match is substring, not prefix:
// distinct past queries sharing a fragment each surface as their own row.
func Match(entries []Entry, query string, now time.Time) []Entry {
	needle := Normalize(query)
	if needle == "" {
		return nil
	}
	var out []Entry
	for _, e := range entries {
		if !fresh(e, now) {
			continue
		}
		if strings.Contains(e.Query, needle) {
			out = append(out, e)
		}
	}
	return out
}

// Put records a committed search. The query is normalized; if an equal entry
// already exists the list is returned unchanged. Otherwise the new entry is
// prepended, expired entries are pruned, and the result is truncated to max
// (newest first). max <= 0 disables the history entirely.
func Put(entries []Entry, query string, now time.Time, max int) []Entry {
	q := Normalize(query)
	if q == "" || max <= 0 {
		return prune(entries, now, max)
	}
	for _, e := range entries {
		if e.Query == q {
			return entries
		}
	}
	out := make([]Entry, 0, len(entries)+1)
	out = append(out, Entry{Query: q, Timestamp: now.Unix()})
	out = append(out, entries...)
	return prune(out, now, max)
}

// prune drops expired entries and truncates to max. This is the write-cycle
// sweep; reads never mutate.
func prune(entries []Entry, now time.Time, max int) []Entry {
	if max < 0 {
		max = 0
	}
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if fresh(e, now) {
			out = append(out, e)
		}
	}
	if len(out) > max {
		out = out[:max]
	}
	return out
}

// Store is the read-modify-write gateway between the pure policy above and a
// ports.KVStore blob. Storage failures never propagate to the caller's result:
// the history degrades to empty and the error is returned separately so the
// engine can report it without failing the query.
type Store struct {
	kv    ports.KVStore
	clock ports.Clock
}

// NewStore wraps a KVStore. A nil clock defaults to the system clock.
func NewStore(kv ports.KVStore, clock ports.Clock) *Store {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	return &Store{kv: kv, clock: clock}
}

// load reads and decodes the persisted blob. A missing key is an empty
// history. A read error, corrupt payload, or unknown schema version degrades
// to empty with the error returned for logging.
func (s *Store) load() ([]Entry, error) {
	data, err := s.kv.Get(StoreKey)
	if err != nil {
		return nil, fmt.Errorf("history read: %w", err)
	}
	if data == nil {
		return nil, nil
	}
	var b blob
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("history decode: %w", err)
	}
	if b.Version != schemaVersion {
		return nil, fmt.Errorf("history schema version %d unsupported", b.Version)
	}
	return b.Entries, nil
}

// save encodes and writes the blob.
func (s *Store) save(entries []Entry) error {
	data, err := json.Marshal(blob{Version: schemaVersion, Entries: entries})
	if err != nil {
		return fmt.Errorf("history encode: %w", err)
	}
	if err := s.kv.Set(StoreKey, data); err != nil {
		return fmt.Errorf("history write: %w", err)
	}
	return nil
}

// Match returns fresh entries matching query. On storage failure the result
// is empty and the error is returned alongside for the caller to log.
func (s *Store) Match(query string) ([]Entry, error) {
	entries, err := s.load()
	return Match(entries, query, s.clock.Now()), err
}

// Record persists a committed search, pruning expired entries and keeping the
// max most recent.
func (s *Store) Record(query string, max int) error {
	entries, err := s.load()
	if err != nil {
		// Corrupt or unreadable history: start over rather than fail the write.
		entries = nil
	}
	return s.save(Put(entries, query, s.clock.Now(), max))
}

// All returns every fresh entry, newest first.
func (s *Store) All() ([]Entry, error) {
	entries, err := s.load()
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	var out []Entry
	for _, e := range entries {
		if fresh(e, now) {
			out = append(out, e)
		}
	}
	return out, nil
}

// Clear removes all entries.
func (s *Store) Clear() error {
	return s.save(nil)
}

// Len returns the number of fresh entries, ignoring storage errors (a broken
// store counts as empty).
func (s *Store) Len() int {
	entries, _ := s.All()
	return len(entries)
}
