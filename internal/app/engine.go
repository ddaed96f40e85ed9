// Package app wires the suggestion pipeline together: the debounce scheduler,
// the versioned fetch pipeline with stale-response discard, the interaction
// state machine, and the configuration surface.
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/corey/typeahead/internal/domain/history"
	"github.com/corey/typeahead/internal/domain/interact"
	"github.com/corey/typeahead/internal/ports"
)

// Snapshot is the render-facing view of the engine after a transition.
// Renderers draw from this and nothing else.
type Snapshot struct {
	Query       string // latest normalized input
	Value       string // committed value (form association)
	Items       []ports.Suggestion
	ActiveIndex int
	Open        bool
	Loading     bool
	Validity    interact.Validity
	Announce    string // live-region text for assistive surfaces
}

// EngineConfig configures a new Engine. History and Source may be nil (no
// local cache / history-only mode respectively). The hooks are optional and
// are invoked outside the engine lock, so they may call back into the engine.
type EngineConfig struct {
	Options  Options
	History  *history.Store
	Source   ports.Source
	OnUpdate func(Snapshot) // fired after every state transition
	OnSearch func(string)   // fired with each committed value
	OnError  func(error)    // storage errors (never user-visible)
}

// Engine owns one typeahead instance's state: the current query, the
// suggestion list, the highlight, and the debounce timer. All entry points
// serialize behind one mutex; the only asynchronous hop is the remote fetch,
// which carries a version token captured at dispatch so a slow earlier query
// can never overwrite a faster later one.
type Engine struct {
	mu       sync.Mutex
	resolver *Resolver
	machine  *interact.Machine

	typed    string // raw input text as the user typed it
	query    string // normalized form of typed
	value    string // committed value
	loading  bool
	failed   bool // last cycle ended in fetch failure
	announce string

	timer   *time.Timer
	version uint64
	closed  bool

	onUpdate func(Snapshot)
	onSearch func(string)
}

// NewEngine builds an engine from cfg.
func NewEngine(cfg EngineConfig) *Engine {
	r := NewResolver(cfg.Options, cfg.History, cfg.Source)
	r.OnError = cfg.OnError
	return &Engine{
		resolver: r,
		machine:  interact.New(),
		onUpdate: cfg.OnUpdate,
		onSearch: cfg.OnSearch,
	}
}

// Resolver exposes the engine's resolver so a daemon can serve the same
// pipeline without a second wiring.
func (e *Engine) Resolver() *Resolver { return e.resolver }

// SetOptions applies a new option set (config reload). Signature matches
// ReloadBus.Subscribe.
func (e *Engine) SetOptions(opts Options) { e.resolver.SetOptions(opts) }

// Input feeds a changed input value into the debounce scheduler. Below the
// minimum query length the list closes immediately and nothing is fetched;
// otherwise a timer is (re)armed and only the last call within the window
// survives. Any in-flight fetch for a prior query is invalidated either way.
func (e *Engine) Input(text string) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.typed = text
	e.query = history.Normalize(text)
	e.version++ // supersede any in-flight fetch
	e.stopTimerLocked()

	opts := e.resolver.Options()
	if len([]rune(e.query)) < opts.MinQueryLength {
		e.loading = false
		e.failed = false
		e.machine.SetResults(nil)
		e.announce = ""
		snap := e.snapshotLocked()
		e.mu.Unlock()
		e.emit(snap)
		return
	}

	q := e.query
	e.timer = time.AfterFunc(opts.DebounceDelay(), func() { e.fire(q) })
	e.mu.Unlock()
}

// fire runs when the debounce window elapses. The query is re-checked under
// the lock because AfterFunc can race a concurrent Input or Close.
func (e *Engine) fire(q string) {
	e.mu.Lock()
	if e.closed || e.query != q {
		e.mu.Unlock()
		return
	}
	e.loading = true
	e.version++
	token := e.version
	snap := e.snapshotLocked()
	e.mu.Unlock()
	e.emit(snap)

	go func() {
		out := e.resolver.Resolve(context.Background(), q)
		e.apply(token, out)
	}()
}

// apply installs a fetch outcome. When the token no longer matches the
// current version, a newer dispatch, commit, reset, or teardown has
// superseded this response and it is silently dropped.
func (e *Engine) apply(token uint64, out Outcome) {
	e.mu.Lock()
	if e.closed || token != e.version {
		e.mu.Unlock()
		return
	}
	e.loading = false
	e.failed = out.FetchErr != nil
	e.machine.SetResults(out.Items)
	switch {
	case out.FetchErr != nil:
		e.announce = out.Items[0].Value
	case len(out.Items) == 0:
		e.announce = "no results"
	case len(out.Items) == 1:
		e.announce = "1 result"
	default:
		e.announce = fmt.Sprintf("%d results", len(out.Items))
	}
	snap := e.snapshotLocked()
	e.mu.Unlock()
	e.emit(snap)
}

// MoveDown advances the highlight, wrapping past the last row.
func (e *Engine) MoveDown() { e.navigate(func(m *interact.Machine) { m.Move(1) }) }

// MoveUp retreats the highlight, wrapping past the first row.
func (e *Engine) MoveUp() { e.navigate(func(m *interact.Machine) { m.Move(-1) }) }

// Home jumps the highlight to the first row.
func (e *Engine) Home() { e.navigate((*interact.Machine).First) }

// End jumps the highlight to the last row.
func (e *Engine) End() { e.navigate((*interact.Machine).Last) }

func (e *Engine) navigate(move func(*interact.Machine)) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	move(e.machine)
	snap := e.snapshotLocked()
	e.mu.Unlock()
	e.emit(snap)
}

// Enter commits the highlighted row as a selection, or the raw typed value
// as a plain search when nothing is highlighted.
func (e *Engine) Enter() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	c, ok := e.machine.Submit(e.typed)
	e.finishCommit(c, ok)
}

// Tab commits like Enter when a row is highlighted and reports true. With no
// highlight it reports false and the caller lets default focus-out behavior
// proceed.
func (e *Engine) Tab() bool {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return false
	}
	c, ok := e.machine.Complete(e.typed)
	if !ok {
		e.mu.Unlock()
		return false
	}
	e.finishCommit(c, true)
	return true
}

// ClickRow commits the row at index i (pointer selection).
func (e *Engine) ClickRow(i int) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	c, ok := e.machine.Select(i)
	e.finishCommit(c, ok)
}

// finishCommit runs with e.mu held and releases it.
func (e *Engine) finishCommit(c interact.Commit, ok bool) {
	var committed string
	if ok {
		e.version++ // a commit supersedes any in-flight fetch
		e.stopTimerLocked()
		e.loading = false
		e.failed = false
		e.value = c.Value
		e.typed = c.Value
		e.query = history.Normalize(c.Value)
		e.announce = c.Value
		e.resolver.Record(c.Value)
		committed = c.Value
	}
	snap := e.snapshotLocked()
	e.mu.Unlock()
	if ok && e.onSearch != nil {
		e.onSearch(committed)
	}
	e.emit(snap)
}

// Escape closes the list unconditionally and clears the highlight. A pending
// debounce timer is cancelled so the list cannot pop back open.
func (e *Engine) Escape() { e.dismiss() }

// ClickOutside closes the list exactly like Escape.
func (e *Engine) ClickOutside() { e.dismiss() }

func (e *Engine) dismiss() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.version++
	e.stopTimerLocked()
	e.loading = false
	e.machine.Close()
	snap := e.snapshotLocked()
	e.mu.Unlock()
	e.emit(snap)
}

// Reset handles a form reset: clears the value and query, closes the list,
// and restores validity to its initial state.
func (e *Engine) Reset() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.version++
	e.stopTimerLocked()
	e.typed = ""
	e.query = ""
	e.value = ""
	e.loading = false
	e.failed = false
	e.machine.SetResults(nil)
	e.announce = ""
	snap := e.snapshotLocked()
	e.mu.Unlock()
	e.emit(snap)
}

// Close tears the engine down: the debounce timer is cancelled and any
// in-flight fetch is marked stale so its resolution is a no-op. Idempotent.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.closed = true
	e.version++
	e.stopTimerLocked()
}

// Value returns the committed value.
func (e *Engine) Value() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.value
}

// Snapshot returns the current render state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

func (e *Engine) snapshotLocked() Snapshot {
	opts := e.resolver.Options()
	return Snapshot{
		Query:       e.query,
		Value:       e.value,
		Items:       e.machine.Items(),
		ActiveIndex: e.machine.ActiveIndex(),
		Open:        e.machine.IsOpen(),
		Loading:     e.loading,
		Validity:    interact.ComputeValidity(opts.Required, e.value, e.failed),
		Announce:    e.announce,
	}
}

func (e *Engine) stopTimerLocked() {
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
}

func (e *Engine) emit(snap Snapshot) {
	if e.onUpdate != nil {
		e.onUpdate(snap)
	}
}
