package app

import (
	"context"

	"github.com/corey/typeahead/internal/adapters/socket"
	"github.com/corey/typeahead/internal/ports"
)

// Service adapts a Resolver to the daemon's socket.Queries interface.
type Service struct {
	r *Resolver
}

// NewService wraps a resolver for the daemon.
func NewService(r *Resolver) *Service {
	return &Service{r: r}
}

// Suggest resolves one query. A failed fetch is not an error at this
// boundary: the items then hold the single error-tagged row.
func (s *Service) Suggest(query string) []ports.Suggestion {
	return s.r.Resolve(context.Background(), query).Items
}

// Record persists a committed search.
func (s *Service) Record(query string) {
	s.r.Record(query)
}

// HistoryEntries returns all fresh history entries, newest first.
func (s *Service) HistoryEntries() (socket.HistoryResult, error) {
	if s.r.History == nil {
		return socket.HistoryResult{}, nil
	}
	entries, err := s.r.History.All()
	if err != nil {
		return socket.HistoryResult{}, err
	}
	return socket.HistoryResult{Entries: entries}, nil
}

// ClearHistory removes every history entry.
func (s *Service) ClearHistory() error {
	if s.r.History == nil {
		return nil
	}
	return s.r.History.Clear()
}

// HistoryCount returns the number of fresh entries.
func (s *Service) HistoryCount() int {
	if s.r.History == nil {
		return 0
	}
	return s.r.History.Len()
}
