package interact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corey/typeahead/internal/ports"
)

func rows(values ...string) []ports.Suggestion {
	out := make([]ports.Suggestion, len(values))
	for i, v := range values {
		out[i] = ports.Suggestion{Value: v, Source: ports.FromRemote}
	}
	return out
}

func openMachine(t *testing.T, values ...string) *Machine {
	t.Helper()
	m := New()
	m.SetResults(rows(values...))
	require.True(t, m.IsOpen())
	return m
}

func TestSetResultsOpensAndResetsHighlight(t *testing.T) {
	m := openMachine(t, "a", "b")
	m.Move(1)
	assert.Equal(t, 0, m.ActiveIndex())

	// New result set: highlight must reset even though the list stays open.
	m.SetResults(rows("c", "d", "e"))
	assert.True(t, m.IsOpen())
	assert.Equal(t, NoHighlight, m.ActiveIndex())
}

func TestSetResultsEmptyCloses(t *testing.T) {
	m := openMachine(t, "a")
	m.SetResults(nil)
	assert.False(t, m.IsOpen())
	assert.Equal(t, NoHighlight, m.ActiveIndex())
}

func TestMoveFromNoHighlight(t *testing.T) {
	m := openMachine(t, "a", "b", "c")
	m.Move(1)
	assert.Equal(t, 0, m.ActiveIndex(), "down from no-highlight lands on first")

	m.SetResults(rows("a", "b", "c"))
	m.Move(-1)
	assert.Equal(t, 2, m.ActiveIndex(), "up from no-highlight lands on last")
}

func TestMoveWrapsBothDirections(t *testing.T) {
	m := openMachine(t, "a", "b", "c")

	m.Move(-1) // last
	m.Move(1)  // wraps to first
	assert.Equal(t, 0, m.ActiveIndex())

	m.Move(-1) // wraps back to last
	assert.Equal(t, 2, m.ActiveIndex())
}

func TestFirstLast(t *testing.T) {
	m := openMachine(t, "a", "b", "c")
	m.Last()
	assert.Equal(t, 2, m.ActiveIndex())
	m.First()
	assert.Equal(t, 0, m.ActiveIndex())
}

func TestMoveWhileClosedIsNoOp(t *testing.T) {
	m := New()
	m.Move(1)
	assert.Equal(t, NoHighlight, m.ActiveIndex())
	assert.False(t, m.IsOpen())
}

func TestSubmitHighlightedRow(t *testing.T) {
	m := openMachine(t, "cat", "catalog")
	m.Move(1)
	m.Move(1)

	c, ok := m.Submit("ca")
	require.True(t, ok)
	assert.Equal(t, Commit{Value: "catalog", Selected: true}, c)
	assert.False(t, m.IsOpen())
}

func TestSubmitNoHighlightCommitsTypedValue(t *testing.T) {
	m := openMachine(t, "cat")

	c, ok := m.Submit("ca")
	require.True(t, ok)
	assert.Equal(t, Commit{Value: "ca", Selected: false}, c)
	assert.False(t, m.IsOpen())
}

func TestSubmitEmptyTypedNothingToCommit(t *testing.T) {
	m := New()
	_, ok := m.Submit("")
	assert.False(t, ok)
}

func TestSubmitErrorRowFallsBackToTyped(t *testing.T) {
	m := New()
	m.SetResults([]ports.Suggestion{{Value: "unable to fetch suggestions", Source: ports.FromError}})
	m.Move(1)

	c, ok := m.Submit("ca")
	require.True(t, ok)
	assert.Equal(t, Commit{Value: "ca", Selected: false}, c)
}

func TestCompleteRequiresHighlight(t *testing.T) {
	m := openMachine(t, "cat")

	_, ok := m.Complete("ca")
	assert.False(t, ok, "Tab with no highlight is not intercepted")
	assert.True(t, m.IsOpen())

	m.Move(1)
	c, ok := m.Complete("ca")
	require.True(t, ok)
	assert.Equal(t, Commit{Value: "cat", Selected: true}, c)
}

func TestSelectRow(t *testing.T) {
	m := openMachine(t, "cat", "catalog")

	c, ok := m.Select(1)
	require.True(t, ok)
	assert.Equal(t, Commit{Value: "catalog", Selected: true}, c)
	assert.False(t, m.IsOpen())
}

func TestSelectOutOfRange(t *testing.T) {
	m := openMachine(t, "cat")
	_, ok := m.Select(5)
	assert.False(t, ok)
	assert.True(t, m.IsOpen())
}

func TestSelectErrorRowIgnored(t *testing.T) {
	m := New()
	m.SetResults([]ports.Suggestion{{Value: "boom", Source: ports.FromError}})
	_, ok := m.Select(0)
	assert.False(t, ok)
}

func TestCloseClearsHighlight(t *testing.T) {
	m := openMachine(t, "a", "b")
	m.Move(1)
	m.Close()
	assert.False(t, m.IsOpen())
	assert.Equal(t, NoHighlight, m.ActiveIndex())
}
