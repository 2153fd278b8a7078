package store

import (
	"context"
	"sort"
	"sync"

	"udyam/internal/document/models"
	"udyam/pkg/domain"
	"udyam/pkg/platform/sentinel"
)

// InMemory keeps document records in a mutex-guarded map.
type InMemory struct {
	mu   sync.RWMutex
	docs map[domain.DocumentID]models.Document
}

// NewInMemory creates an empty in-memory document store.
func NewInMemory() *InMemory {
	return &InMemory{docs: make(map[domain.DocumentID]models.Document)}
}

// Create links an uploaded document to its application.
func (s *InMemory) Create(_ context.Context, doc *models.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.docs[doc.ID]; exists {
		return sentinel.ErrConflict
	}
	s.docs[doc.ID] = *doc
	return nil
}

// ListByApplication returns all documents linked to the application, oldest
// first. Documents may keep arriving between application creation and
// submission; every call re-reads current state.
func (s *InMemory) ListByApplication(_ context.Context, applicationID domain.ApplicationID) ([]models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Document
	for _, doc := range s.docs {
		if doc.ApplicationID == applicationID {
			out = append(out, doc)
		}
	}
	// Tie-break on ID so equal timestamps still order deterministically.
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.String() < out[j].ID.String()
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// UpdateVerifiedStatus records the outcome of the external verification
// workflow. Returns sentinel.ErrNotFound for unknown documents.
func (s *InMemory) UpdateVerifiedStatus(_ context.Context, id domain.DocumentID, status models.VerifiedStatus, detectedCategory string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[id]
	if !ok {
		return sentinel.ErrNotFound
	}
	doc.VerifiedStatus = status
	if detectedCategory != "" {
		doc.DocCategoryDetected = detectedCategory
	}
	s.docs[id] = doc
	return nil
}
