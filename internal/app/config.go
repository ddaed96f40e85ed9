package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Default option values.
const (
	DefaultMinQueryLength = 1
	DefaultMaxResults     = 10
	DefaultDebounceMs     = 300
	DefaultCacheSize      = 20
)

// Options is the recognized configuration surface of the engine.
type Options struct {
	// Endpoint is the remote source URL prefix; the URL-encoded query is
	// appended verbatim. Empty disables the remote source (history-only mode).
	Endpoint string `yaml:"endpoint"`

	// MinQueryLength suppresses fetching below this many characters.
	MinQueryLength int `yaml:"min_query_length"`

	// MaxResults caps the merged suggestion list.
	MaxResults int `yaml:"max_results"`

	// DebounceDelayMs is the quiet interval before a settled input fires.
	DebounceDelayMs int `yaml:"debounce_delay_ms"`

	// CacheSize caps the persisted query history. 0 disables the history.
	CacheSize int `yaml:"cache_size"`

	// Required makes an empty committed value a valueMissing validity state.
	Required bool `yaml:"required"`
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		MinQueryLength:  DefaultMinQueryLength,
		MaxResults:      DefaultMaxResults,
		DebounceDelayMs: DefaultDebounceMs,
		CacheSize:       DefaultCacheSize,
	}
}

// Clamp pulls out-of-range values back to their defaults. Unknown or negative
// settings never make the engine misbehave; they are treated as unset.
func (o *Options) Clamp() {
	if o.MinQueryLength < 0 {
		o.MinQueryLength = DefaultMinQueryLength
	}
	if o.MaxResults < 1 {
		o.MaxResults = DefaultMaxResults
	}
	if o.DebounceDelayMs < 0 {
		o.DebounceDelayMs = DefaultDebounceMs
	}
	if o.CacheSize < 0 {
		o.CacheSize = DefaultCacheSize
	}
}

// DebounceDelay returns the debounce interval as a duration.
func (o Options) DebounceDelay() time.Duration {
	return time.Duration(o.DebounceDelayMs) * time.Millisecond
}

// LoadConfig reads options from a YAML file. A missing file yields defaults;
// a malformed file is an error (unlike history corruption, a bad config is
// the operator's to fix, not something to silently paper over).
func LoadConfig(path string) (Options, error) {
	opts := DefaultOptions()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return opts, nil
		}
		return opts, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return DefaultOptions(), fmt.Errorf("parse config: %w", err)
	}
	opts.Clamp()
	return opts, nil
}

// SaveConfig writes options to a YAML file, creating parent directories.
func SaveConfig(path string, opts Options) error {
	data, err := yaml.Marshal(opts)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
