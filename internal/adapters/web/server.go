package web

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"
)

// maxServed caps how many matches the demo server returns per query.
const maxServed = 25

// Server is a local suggest endpoint over a fixed word list. It exists so
// `typeahead serve` gives the engine something real to talk to during
// development, and it speaks the {"results": [...]} response shape.
type Server struct {
	words    []string
	listener net.Listener
	httpSrv  *http.Server
	started  time.Time
	stopOnce sync.Once
}

// NewServer creates a suggest server over the given word list.
func NewServer(words []string) *Server {
	sorted := make([]string, len(words))
	copy(sorted, words)
	sort.Strings(sorted)
	return &Server{words: sorted}
}

// Start binds the listener and begins serving. addr may be ":0" to let the
// OS pick a port; Addr reports the bound address.
func (s *Server) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	s.listener = ln
	s.started = time.Now()

	mux := http.NewServeMux()
	mux.HandleFunc("/suggest", s.handleSuggest)
	mux.HandleFunc("/healthz", s.handleHealth)
	s.httpSrv = &http.Server{Handler: mux}

	go s.httpSrv.Serve(ln)
	return nil
}

// Addr returns the bound listen address.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Stop closes the listener. Idempotent.
func (s *Server) Stop() error {
	s.stopOnce.Do(func() {
		if s.httpSrv != nil {
			s.httpSrv.Close()
		}
	})
	return nil
}

// handleSuggest serves GET /suggest?q=. Prefix matches rank before substring
// matches; comparison is case-insensitive.
func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	q := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("q")))

	var prefix, sub []string
	if q != "" {
		for _, word := range s.words {
			lower := strings.ToLower(word)
			switch {
			case strings.HasPrefix(lower, q):
				prefix = append(prefix, word)
			case strings.Contains(lower, q):
				sub = append(sub, word)
			}
			if len(prefix) >= maxServed {
				break
			}
		}
	}
	results := prefix
	if len(results) < maxServed {
		room := maxServed - len(results)
		if room > len(sub) {
			room = len(sub)
		}
		results = append(results, sub[:room]...)
	}
	if results == nil {
		results = []string{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resultsShape{Results: results})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status": "ok",
		"uptime": time.Since(s.started).Round(time.Second).String(),
		"words":  len(s.words),
	})
}
