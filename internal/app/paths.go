package app

import (
	"os"
	"path/filepath"
)

// Paths holds all resolved filesystem paths under the typeahead home
// directory. All fields are pre-computed strings.
type Paths struct {
	Root   string // ~/.typeahead/
	Config string // ~/.typeahead/config.yaml
	DB     string // ~/.typeahead/history.db
}

// NewPaths constructs all resolved paths from a home directory.
func NewPaths(home string) *Paths {
	return &Paths{
		Root:   home,
		Config: filepath.Join(home, "config.yaml"),
		DB:     filepath.Join(home, "history.db"),
	}
}

// DefaultHome returns $TYPEAHEAD_HOME when set, else ~/.typeahead. The
// history database living in one fixed place is what makes every instance
// share the same cache.
func DefaultHome() string {
	if env := os.Getenv("TYPEAHEAD_HOME"); env != "" {
		return env
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".typeahead"
	}
	return filepath.Join(home, ".typeahead")
}
