// Package merge combines history matches and remote results into the ranked
// row list handed to renderers.
package merge

import (
	"strings"

	"github.com/corey/typeahead/internal/ports"
)

// Rank merges history matches and remote results: history rows first, then
// remote rows, deduplicated case-insensitively by value, truncated to max.
// A remote row that is string-identical to a history row is dropped so the
// same text never renders twice.
func Rank(historyMatches, remote []string, max int) []ports.Suggestion {
	if max <= 0 {
		return nil
	}
	seen := make(map[string]bool, len(historyMatches)+len(remote))
	out := make([]ports.Suggestion, 0, max)

	add := func(value string, src ports.Provenance) bool {
		key := strings.ToLower(value)
		if key == "" || seen[key] {
			return len(out) < max
		}
		seen[key] = true
		out = append(out, ports.Suggestion{Value: value, Source: src})
		return len(out) < max
	}

	for _, v := range historyMatches {
		if !add(v, ports.FromHistory) {
			return out
		}
	}
	for _, v := range remote {
		if !add(v, ports.FromRemote) {
			return out
		}
	}
	return out
}

// ErrorRow is the single row shown when the remote fetch fails. It replaces
// the whole list — history matches are not shown alongside an error — and the
// condition is retryable: the user recovers by continuing to type.
func ErrorRow(msg string) []ports.Suggestion {
	if msg == "" {
		msg = "unable to fetch suggestions"
	}
	return []ports.Suggestion{{Value: msg, Source: ports.FromError}}
}
