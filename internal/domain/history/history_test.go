package history

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corey/typeahead/internal/adapters/memstore"
)

// fixedClock returns a constant time.
type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

var base = time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)

func entry(q string, age time.Duration) Entry {
	return Entry{Query: q, Timestamp: base.Add(-age).Unix()}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "cat", Normalize("  Cat "))
	assert.Equal(t, "", Normalize("   "))
}

func TestMatchSubstringNotPrefix(t *testing.T) {
	entries := []Entry{
		entry("concatenate", time.Hour),
		entry("catalog", time.Hour),
		entry("dog", time.Hour),
	}

	got := Match(entries, "cat", base)
	require.Len(t, got, 2)
	assert.Equal(t, "concatenate", got[0].Query)
	assert.Equal(t, "catalog", got[1].Query)
}

func TestMatchFiltersExpired(t *testing.T) {
	entries := []Entry{
		entry("cat videos", 25*time.Hour), // past the retention window
		entry("cat food", time.Hour),
	}

	got := Match(entries, "cat", base)
	require.Len(t, got, 1)
	assert.Equal(t, "cat food", got[0].Query)
}

func TestMatchEmptyQuery(t *testing.T) {
	entries := []Entry{entry("cat", time.Hour)}
	assert.Empty(t, Match(entries, "  ", base))
}

func TestPutPrependsNewestFirst(t *testing.T) {
	var entries []Entry
	entries = Put(entries, "first", base.Add(-2*time.Minute), 20)
	entries = Put(entries, "second", base.Add(-time.Minute), 20)
	entries = Put(entries, "Third", base, 20)

	require.Len(t, entries, 3)
	assert.Equal(t, "third", entries[0].Query)
	assert.Equal(t, "second", entries[1].Query)
	assert.Equal(t, "first", entries[2].Query)
}

func TestPutSkipsCaseInsensitiveDuplicate(t *testing.T) {
	entries := Put(nil, "cat", base.Add(-time.Minute), 20)
	entries = Put(entries, "  CAT ", base, 20)

	require.Len(t, entries, 1)
	assert.Equal(t, base.Add(-time.Minute).Unix(), entries[0].Timestamp)
}

func TestPutEnforcesCap(t *testing.T) {
	var entries []Entry
	for i, q := range []string{"a", "b", "c", "d", "e"} {
		entries = Put(entries, q, base.Add(time.Duration(i)*time.Second), 3)
	}

	require.Len(t, entries, 3)
	assert.Equal(t, "e", entries[0].Query)
	assert.Equal(t, "d", entries[1].Query)
	assert.Equal(t, "c", entries[2].Query)
}

func TestPutPrunesExpiredOnWrite(t *testing.T) {
	entries := []Entry{entry("old", 25 * time.Hour)}
	entries = Put(entries, "new", base, 20)

	require.Len(t, entries, 1)
	assert.Equal(t, "new", entries[0].Query)
}

func TestPutZeroCapDisablesHistory(t *testing.T) {
	assert.Empty(t, Put(nil, "cat", base, 0))
}

func TestStoreRoundTrip(t *testing.T) {
	store := NewStore(memstore.New(), fixedClock{base})

	require.NoError(t, store.Record("cat videos", 20))
	require.NoError(t, store.Record("dog parks", 20))

	matches, err := store.Match("cat")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "cat videos", matches[0].Query)

	all, err := store.All()
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, 2, store.Len())

	require.NoError(t, store.Clear())
	assert.Equal(t, 0, store.Len())
}

func TestStoreReadErrorDegradesToEmpty(t *testing.T) {
	kv := memstore.New()
	kv.FailGet = errors.New("quota exceeded")
	store := NewStore(kv, fixedClock{base})

	matches, err := store.Match("cat")
	assert.Error(t, err)
	assert.Empty(t, matches)
}

func TestStoreCorruptBlobDegradesToEmpty(t *testing.T) {
	kv := memstore.New()
	require.NoError(t, kv.Set(StoreKey, []byte("{not json")))
	store := NewStore(kv, fixedClock{base})

	matches, err := store.Match("cat")
	assert.Error(t, err)
	assert.Empty(t, matches)

	// The next write starts a fresh history rather than failing.
	require.NoError(t, store.Record("cat", 20))
	assert.Equal(t, 1, store.Len())
}

func TestStoreUnknownSchemaVersion(t *testing.T) {
	kv := memstore.New()
	require.NoError(t, kv.Set(StoreKey, []byte(`{"version":99,"entries":[{"query":"cat","timestamp":1}]}`)))
	store := NewStore(kv, fixedClock{base})

	matches, err := store.Match("cat")
	assert.Error(t, err)
	assert.Empty(t, matches)
}
