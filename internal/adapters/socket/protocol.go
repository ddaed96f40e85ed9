// Package socket implements a JSON-over-Unix-socket protocol for the
// typeahead daemon. The protocol uses newline-delimited JSON: each message is
// one JSON object + \n. The daemon exists so every CLI invocation shares one
// open history store instead of racing over the bbolt file lock.
package socket

import (
	"crypto/sha256"
	"fmt"
	"path/filepath"

	"github.com/corey/typeahead/internal/domain/history"
	"github.com/corey/typeahead/internal/ports"
)

// SocketPath returns the Unix socket path for a given history database path.
// Format: /tmp/typeahead-{12hex}.sock
func SocketPath(dbPath string) string {
	abs, err := filepath.Abs(dbPath)
	if err != nil {
		abs = dbPath
	}
	h := sha256.Sum256([]byte(abs))
	return fmt.Sprintf("/tmp/typeahead-%x.sock", h[:6])
}

// Method names for the protocol.
const (
	MethodSuggest  = "suggest"
	MethodRecord   = "record"
	MethodHistory  = "history"
	MethodClear    = "clear"
	MethodHealth   = "health"
	MethodShutdown = "shutdown"
)

// Request is the wire format for client-to-server messages.
type Request struct {
	ID     string      `json:"id"`
	Method string      `json:"method"`
	Params interface{} `json:"params,omitempty"`
}

// Response is the wire format for server-to-client messages.
type Response struct {
	ID     string      `json:"id"`
	Result interface{} `json:"result,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// SuggestParams is the params for a suggest request.
type SuggestParams struct {
	Query string `json:"query"`
}

// SuggestResult is the result of a suggest request. A failed remote fetch is
// not a protocol error: Items then holds the single error-tagged row.
type SuggestResult struct {
	Items   []ports.Suggestion `json:"items"`
	Elapsed string             `json:"elapsed"`
}

// RecordParams is the params for a record request (explicit commit).
type RecordParams struct {
	Query string `json:"query"`
}

// HistoryResult is the result of a history request, newest first.
type HistoryResult struct {
	Entries []history.Entry `json:"entries"`
}

// HealthResult is the result of a health request.
type HealthResult struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime"`
	Entries int    `json:"entries"`
}
