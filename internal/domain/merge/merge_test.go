package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corey/typeahead/internal/ports"
)

func TestRankHistoryFirstThenRemote(t *testing.T) {
	got := Rank([]string{"cat videos"}, []string{"cat", "catalog"}, 10)

	require.Len(t, got, 3)
	assert.Equal(t, ports.Suggestion{Value: "cat videos", Source: ports.FromHistory}, got[0])
	assert.Equal(t, ports.Suggestion{Value: "cat", Source: ports.FromRemote}, got[1])
	assert.Equal(t, ports.Suggestion{Value: "catalog", Source: ports.FromRemote}, got[2])
}

func TestRankDropsCaseInsensitiveRemoteDuplicates(t *testing.T) {
	got := Rank([]string{"abc"}, []string{"ABC", "abd"}, 10)

	require.Len(t, got, 2)
	assert.Equal(t, ports.Suggestion{Value: "abc", Source: ports.FromHistory}, got[0])
	assert.Equal(t, ports.Suggestion{Value: "abd", Source: ports.FromRemote}, got[1])
}

func TestRankDedupsWithinRemote(t *testing.T) {
	got := Rank(nil, []string{"cat", "Cat", "cat"}, 10)
	require.Len(t, got, 1)
	assert.Equal(t, "cat", got[0].Value)
}

func TestRankCapsResults(t *testing.T) {
	got := Rank([]string{"a", "b"}, []string{"c", "d", "e"}, 3)

	require.Len(t, got, 3)
	assert.Equal(t, "a", got[0].Value)
	assert.Equal(t, "b", got[1].Value)
	assert.Equal(t, "c", got[2].Value)
}

func TestRankZeroMax(t *testing.T) {
	assert.Empty(t, Rank([]string{"a"}, []string{"b"}, 0))
}

func TestErrorRowReplacesList(t *testing.T) {
	got := ErrorRow("unable to fetch suggestions")

	require.Len(t, got, 1)
	assert.Equal(t, ports.FromError, got[0].Source)
	assert.Equal(t, "unable to fetch suggestions", got[0].Value)
}

func TestErrorRowDefaultMessage(t *testing.T) {
	got := ErrorRow("")
	require.Len(t, got, 1)
	assert.NotEmpty(t, got[0].Value)
}
