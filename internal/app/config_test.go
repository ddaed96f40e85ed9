package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileYieldsDefaults(t *testing.T) {
	opts, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultOptions(), opts)
}

func TestLoadConfigMalformedIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":\n  - not yaml"), 0644))

	opts, err := LoadConfig(path)
	assert.Error(t, err)
	assert.Equal(t, DefaultOptions(), opts, "a bad config falls back to defaults")
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	want := Options{
		Endpoint:        "http://localhost:8089/suggest?q=",
		MinQueryLength:  2,
		MaxResults:      5,
		DebounceDelayMs: 150,
		CacheSize:       50,
		Required:        true,
	}
	require.NoError(t, SaveConfig(path, want))

	got, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadConfigClampsOutOfRangeValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_results: 0\nmin_query_length: -3\ndebounce_delay_ms: -1\ncache_size: -1\n"), 0644))

	opts, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxResults, opts.MaxResults)
	assert.Equal(t, DefaultMinQueryLength, opts.MinQueryLength)
	assert.Equal(t, DefaultDebounceMs, opts.DebounceDelayMs)
	assert.Equal(t, DefaultCacheSize, opts.CacheSize)
}

func TestDebounceDelay(t *testing.T) {
	opts := Options{DebounceDelayMs: 150}
	assert.Equal(t, 150*time.Millisecond, opts.DebounceDelay())
}

func TestDefaultHomeHonorsEnv(t *testing.T) {
	t.Setenv("TYPEAHEAD_HOME", "/tmp/custom-home")
	assert.Equal(t, "/tmp/custom-home", DefaultHome())

	paths := NewPaths(DefaultHome())
	assert.Equal(t, "/tmp/custom-home/config.yaml", paths.Config)
	assert.Equal(t, "/tmp/custom-home/history.db", paths.DB)
}
