// Package web is the HTTP boundary: the remote suggestion source the engine
// queries, and a small local suggest server for development and tests.
package web

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// FetchError is the typed failure for a non-2xx response or transport error.
// The engine converts it into a single error row plus a recoverable custom
// validity — never a fatal state; the user retries by typing again.
type FetchError struct {
	Status int // HTTP status, 0 for transport failures
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch failed: HTTP %d", e.Status)
	}
	return fmt.Sprintf("fetch failed: %v", e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Mapper extracts suggestion strings from an arbitrary response body. It is
// consulted only after the two built-in shapes fail to match; returning
// ok=false means the shape was not recognized.
type Mapper func(body []byte) (values []string, ok bool)

// Source implements ports.Source against a remote endpoint. The query is
// URL-encoded and appended to the endpoint prefix:
//
//	GET {endpoint}{urlEncodedQuery}
//
// Three response shapes are recognized, first match wins: a bare JSON array
// of strings, an object with a "results" array, or the caller-supplied
// Mapper. An unrecognized shape yields an empty result, not an error.
type Source struct {
	endpoint string
	client   *http.Client
	mapper   Mapper
}

// NewSource creates a remote source. A nil client gets a 10s-timeout default;
// mapper may be nil when the endpoint speaks one of the built-in shapes.
func NewSource(endpoint string, client *http.Client, mapper Mapper) *Source {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Source{endpoint: endpoint, client: client, mapper: mapper}
}

// resultsShape is the {"results": [...]} envelope.
type resultsShape struct {
	Results []string `json:"results"`
}

// Fetch retrieves suggestions for query. Non-2xx status or transport failure
// returns a *FetchError.
func (s *Source) Fetch(ctx context.Context, query string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint+url.QueryEscape(query), nil)
	if err != nil {
		return nil, &FetchError{Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &FetchError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))
		return nil, &FetchError{Status: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, &FetchError{Err: err}
	}
	return s.normalize(body), nil
}

// normalize tries the known response shapes in priority order.
func (s *Source) normalize(body []byte) []string {
	var bare []string
	if err := json.Unmarshal(body, &bare); err == nil {
		return bare
	}
	var envelope resultsShape
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Results != nil {
		return envelope.Results
	}
	if s.mapper != nil {
		if values, ok := s.mapper(body); ok {
			return values
		}
	}
	return nil
}
