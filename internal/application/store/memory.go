package store

import (
	"context"
	"sort"
	"sync"

	"udyam/internal/application/models"
	"udyam/pkg/domain"
	"udyam/pkg/platform/sentinel"
)

// InMemory keeps applications in a mutex-guarded map. The status-guarded
// update runs under the same mutex, which gives the single-writer guarantee
// the submission transition needs.
type InMemory struct {
	mu   sync.RWMutex
	apps map[domain.ApplicationID]models.Application
}

// NewInMemory creates an empty in-memory application store.
func NewInMemory() *InMemory {
	return &InMemory{apps: make(map[domain.ApplicationID]models.Application)}
}

// Create stores a new application.
func (s *InMemory) Create(_ context.Context, app *models.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.apps[app.ID]; exists {
		return sentinel.ErrConflict
	}
	s.apps[app.ID] = clone(app)
	return nil
}

// FindByID returns the application, or sentinel.ErrNotFound.
func (s *InMemory) FindByID(_ context.Context, id domain.ApplicationID) (*models.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	app, ok := s.apps[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := clone(&app)
	return &copied, nil
}

// UpdateFromStatus persists app only if the stored record still has status
// from — the compare-and-swap that keeps two concurrent transitions from
// both succeeding. The loser gets sentinel.ErrInvalidState.
func (s *InMemory) UpdateFromStatus(_ context.Context, app *models.Application, from models.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.apps[app.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if current.Status != from {
		return sentinel.ErrInvalidState
	}
	s.apps[app.ID] = clone(app)
	return nil
}

// List returns applications matching the filter, newest-created first.
func (s *InMemory) List(_ context.Context, filter Filter) ([]models.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Application
	for _, app := range s.apps {
		a := app
		if filter.Matches(&a) {
			out = append(out, clone(&a))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// clone copies the aggregate deeply enough that callers cannot mutate
// stored state through shared slices or maps.
func clone(app *models.Application) models.Application {
	copied := *app
	copied.ReviewHistory = append([]models.ReviewEntry(nil), app.ReviewHistory...)
	if app.ApplicationData != nil {
		data := make(map[string]any, len(app.ApplicationData))
		for k, v := range app.ApplicationData {
			data[k] = v
		}
		copied.ApplicationData = data
	}
	if app.SubmittedAt != nil {
		t := *app.SubmittedAt
		copied.SubmittedAt = &t
	}
	return copied
}
