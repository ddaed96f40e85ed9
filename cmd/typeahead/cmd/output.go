package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/corey/typeahead/internal/adapters/bbolt"
	"github.com/corey/typeahead/internal/adapters/memstore"
	"github.com/corey/typeahead/internal/adapters/web"
	"github.com/corey/typeahead/internal/app"
	"github.com/corey/typeahead/internal/domain/history"
	"github.com/corey/typeahead/internal/ports"
)

// ANSI color codes for terminal output.
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorCyan   = "\033[36m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
)

// formatSuggestions formats a row list for terminal display.
//
//	⚡ 4 suggestions │ Xms
//	  ⟲ past query        (history rows, cyan)
//	    remote suggestion
func formatSuggestions(items []ports.Suggestion, elapsed string) string {
	if len(items) == 0 {
		return fmt.Sprintf("%s⚡ no results%s", colorGray, colorReset)
	}
	var b strings.Builder
	noun := "suggestions"
	if len(items) == 1 {
		noun = "suggestion"
	}
	fmt.Fprintf(&b, "%s⚡ %d %s%s │ %s\n", colorBold, len(items), noun, colorReset, elapsed)
	for _, item := range items {
		switch item.Source {
		case ports.FromHistory:
			fmt.Fprintf(&b, "  %s⟲ %s%s\n", colorCyan, item.Value, colorReset)
		case ports.FromError:
			fmt.Fprintf(&b, "  %s✗ %s%s\n", colorYellow, item.Value, colorReset)
		default:
			fmt.Fprintf(&b, "    %s\n", item.Value)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// warnf prints a warning to stderr.
func warnf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, colorYellow+"warning: "+format+colorReset+"\n", args...)
}

// openResolver wires a resolver against the shared history database and the
// configured endpoint. A failure to open the store degrades to an in-memory
// history (logged, never fatal), per the storage-error policy.
func openResolver(paths *app.Paths, opts app.Options) (*app.Resolver, func()) {
	var kv ports.KVStore
	if err := os.MkdirAll(filepath.Dir(paths.DB), 0755); err != nil {
		warnf("create %s: %v; history disabled for this run", filepath.Dir(paths.DB), err)
		kv = memstore.New()
	} else if store, err := bbolt.NewStore(paths.DB); err != nil {
		warnf("open history db: %v; history disabled for this run", err)
		kv = memstore.New()
	} else {
		kv = store
	}

	hist := history.NewStore(kv, nil)

	var src ports.Source
	if opts.Endpoint != "" {
		src = web.NewSource(opts.Endpoint, nil, nil)
	}

	r := app.NewResolver(opts, hist, src)
	r.OnError = func(err error) { warnf("%v", err) }
	return r, func() { kv.Close() }
}
