package app

import (
	"context"
	"sync"

	"github.com/corey/typeahead/internal/domain/history"
	"github.com/corey/typeahead/internal/domain/merge"
	"github.com/corey/typeahead/internal/ports"
)

// Outcome is the result of resolving one query: the ranked row list and,
// when the remote fetch failed, the underlying error. On failure Items holds
// the single error row (history matches are replaced, not supplemented).
type Outcome struct {
	Items    []ports.Suggestion
	FetchErr error
}

// Resolver performs one query resolution: history match + remote fetch +
// merge. It is shared by the engine's debounced pipeline, the daemon's
// request handlers, and the one-shot CLI path.
//
// History and Source may each be nil: a nil history means no local cache,
// a nil source means history-only mode.
type Resolver struct {
	History *history.Store
	Source  ports.Source

	// OnError receives storage errors, which degrade to empty-history
	// behavior and are never user-visible. May be nil.
	OnError func(error)

	mu   sync.Mutex
	opts Options
}

// NewResolver builds a resolver with clamped options.
func NewResolver(opts Options, hist *history.Store, src ports.Source) *Resolver {
	opts.Clamp()
	return &Resolver{History: hist, Source: src, opts: opts}
}

// Options returns the current option set.
func (r *Resolver) Options() Options {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.opts
}

// SetOptions swaps the option set (config reload).
func (r *Resolver) SetOptions(opts Options) {
	opts.Clamp()
	r.mu.Lock()
	r.opts = opts
	r.mu.Unlock()
}

func (r *Resolver) reportError(err error) {
	if err != nil && r.OnError != nil {
		r.OnError(err)
	}
}

// Resolve runs the full pipeline for query. Storage failures fall back to an
// empty history; only a remote fetch failure surfaces, as the error row.
func (r *Resolver) Resolve(ctx context.Context, query string) Outcome {
	opts := r.Options()

	var historyValues []string
	if r.History != nil {
		matches, err := r.History.Match(query)
		r.reportError(err)
		for _, m := range matches {
			historyValues = append(historyValues, m.Query)
		}
	}

	var remote []string
	if r.Source != nil {
		values, err := r.Source.Fetch(ctx, query)
		if err != nil {
			return Outcome{Items: merge.ErrorRow("unable to fetch suggestions"), FetchErr: err}
		}
		remote = values
	}

	return Outcome{Items: merge.Rank(historyValues, remote, opts.MaxResults)}
}

// Record persists a committed search into the history. Storage errors are
// reported, never returned: a broken cache must not fail a commit.
func (r *Resolver) Record(query string) {
	if r.History == nil {
		return
	}
	r.reportError(r.History.Record(query, r.Options().CacheSize))
}
