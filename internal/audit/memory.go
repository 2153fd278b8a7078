package audit

import (
	"context"
	"sync"

	"udyam/pkg/domain"
)

// InMemoryStore keeps audit events in process memory, append-only.
type InMemoryStore struct {
	mu     sync.RWMutex
	events []Event
}

// NewInMemoryStore creates an empty in-memory audit store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

// Append records an event.
func (s *InMemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// ListByApplication returns the events for one application in append order.
func (s *InMemoryStore) ListByApplication(_ context.Context, id domain.ApplicationID) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Event
	for _, event := range s.events {
		if event.ApplicationID == id {
			out = append(out, event)
		}
	}
	return out, nil
}
