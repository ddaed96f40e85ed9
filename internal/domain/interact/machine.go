// Package interact implements the keyboard interaction state machine for the
// suggestion list: open/closed visibility, highlight navigation with
// wrap-around, and selection commit. It is pure state — no rendering, no
// timers, no I/O — so every transition is testable in isolation. Renderers
// (the tcell picker, a future GUI) translate their native events into calls
// on Machine and read back the resulting view state.
package interact

import "github.com/corey/typeahead/internal/ports"

// NoHighlight is the ActiveIndex value meaning no row is highlighted.
const NoHighlight = -1

// Commit is the outcome of a selection or submit.
type Commit struct {
	Value    string
	Selected bool // true when a highlighted row was chosen, false for a raw submit
}

// Machine holds the suggestion list interaction state. The zero value is a
// closed list with no rows. Machine is not safe for concurrent use; the
// engine serializes access behind its own lock.
type Machine struct {
	items  []ports.Suggestion
	active int
	open   bool
}

// New returns a closed machine.
func New() *Machine {
	return &Machine{active: NoHighlight}
}

// SetResults replaces the suggestion set. The list opens when rows are
// present and closes when empty; the highlight always resets because the old
// index is meaningless against new rows.
func (m *Machine) SetResults(items []ports.Suggestion) {
	m.items = items
	m.active = NoHighlight
	m.open = len(items) > 0
}

// Close hides the list and clears the highlight. Escape and outside clicks
// land here.
func (m *Machine) Close() {
	m.open = false
	m.active = NoHighlight
}

// IsOpen reports whether the list is visible.
func (m *Machine) IsOpen() bool { return m.open }

// ActiveIndex returns the highlighted row, or NoHighlight.
func (m *Machine) ActiveIndex() int { return m.active }

// Items returns the current rows.
func (m *Machine) Items() []ports.Suggestion { return m.items }

// Move shifts the highlight by delta with wrap-around in both directions.
// From no-highlight, moving down lands on the first row and moving up lands
// on the last. No-op while closed or empty.
func (m *Machine) Move(delta int) {
	n := len(m.items)
	if !m.open || n == 0 {
		return
	}
	if m.active == NoHighlight {
		if delta >= 0 {
			m.active = 0
		} else {
			m.active = n - 1
		}
		return
	}
	m.active = ((m.active+delta)%n + n) % n
}

// First jumps the highlight to the first row (Home).
func (m *Machine) First() {
	if m.open && len(m.items) > 0 {
		m.active = 0
	}
}

// Last jumps the highlight to the last row (End).
func (m *Machine) Last() {
	if m.open && len(m.items) > 0 {
		m.active = len(m.items) - 1
	}
}

// Submit handles Enter. With a highlighted, committable row the row's value
// is committed as a selection. With no highlight (or an error row under the
// highlight) the raw typed value is committed as a plain search. Either way
// the list closes. ok is false only when there is nothing to commit (empty
// typed value and no selection).
func (m *Machine) Submit(typed string) (c Commit, ok bool) {
	if m.open && m.active != NoHighlight {
		row := m.items[m.active]
		m.Close()
		if row.Source != ports.FromError {
			return Commit{Value: row.Value, Selected: true}, true
		}
		// Error rows are not selectable; fall through to a raw submit.
		if typed != "" {
			return Commit{Value: typed}, true
		}
		return Commit{}, false
	}
	m.Close()
	if typed == "" {
		return Commit{}, false
	}
	return Commit{Value: typed}, true
}

// Complete handles Tab. A highlighted row commits exactly like Submit; with
// no highlight the key is not intercepted (ok is false) so default focus-out
// behavior proceeds.
func (m *Machine) Complete(typed string) (c Commit, ok bool) {
	if !m.open || m.active == NoHighlight {
		return Commit{}, false
	}
	return m.Submit(typed)
}

// Select commits the row at index i (pointer click on a row). Out-of-range
// indexes and error rows are ignored.
func (m *Machine) Select(i int) (c Commit, ok bool) {
	if !m.open || i < 0 || i >= len(m.items) {
		return Commit{}, false
	}
	row := m.items[i]
	if row.Source == ports.FromError {
		return Commit{}, false
	}
	m.Close()
	return Commit{Value: row.Value, Selected: true}, true
}
