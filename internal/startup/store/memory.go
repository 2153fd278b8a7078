package store

import (
	"context"
	"sync"

	"udyam/internal/startup/models"
	"udyam/pkg/domain"
	"udyam/pkg/platform/sentinel"
)

// InMemory keeps startups in a mutex-guarded map.
type InMemory struct {
	mu       sync.RWMutex
	startups map[domain.StartupID]models.Startup
}

// NewInMemory creates an empty in-memory startup store.
func NewInMemory() *InMemory {
	return &InMemory{startups: make(map[domain.StartupID]models.Startup)}
}

// Create registers a startup record.
func (s *InMemory) Create(_ context.Context, startup *models.Startup) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.startups[startup.ID]; exists {
		return sentinel.ErrConflict
	}
	s.startups[startup.ID] = *startup
	return nil
}

// FindByID returns the startup, or sentinel.ErrNotFound.
func (s *InMemory) FindByID(_ context.Context, id domain.StartupID) (*models.Startup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	startup, ok := s.startups[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &startup, nil
}
