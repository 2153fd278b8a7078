package store

import (
	"context"
	"sync"

	"udyam/internal/catalog/models"
	"udyam/pkg/platform/sentinel"
)

// InMemory keeps catalog entries in a mutex-guarded map. It is the default
// wiring for development and the substrate for handler and service tests.
type InMemory struct {
	mu      sync.RWMutex
	entries map[string]models.CatalogEntry
}

// NewInMemory creates an empty in-memory catalog store.
func NewInMemory() *InMemory {
	return &InMemory{entries: make(map[string]models.CatalogEntry)}
}

func key(sector, applicationType string) string {
	return sector + "/" + applicationType
}

// Resolve returns the entry for the exact (sector, application_type) pair.
// Returns sentinel.ErrNotFound when no entry exists; callers must treat that
// as "no requirements defined", never as an empty checklist.
func (s *InMemory) Resolve(_ context.Context, sector, applicationType string) (*models.CatalogEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[key(sector, applicationType)]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := entry
	copied.Requirements = append([]models.Requirement(nil), entry.Requirements...)
	return &copied, nil
}

// Upsert publishes or replaces an entry. Administrative use only.
func (s *InMemory) Upsert(_ context.Context, entry *models.CatalogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *entry
	copied.Requirements = append([]models.Requirement(nil), entry.Requirements...)
	s.entries[key(entry.Sector, entry.ApplicationType)] = copied
	return nil
}
