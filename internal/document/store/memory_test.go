package store

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"udyam/internal/document/models"
	"udyam/pkg/domain"
)

type DocumentStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
	now   time.Time
}

func (s *DocumentStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
	s.now = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
}

func TestDocumentStoreSuite(t *testing.T) {
	suite.Run(t, new(DocumentStoreSuite))
}

func (s *DocumentStoreSuite) newDocument(appID domain.ApplicationID, category string, createdAt time.Time) models.Document {
	doc := models.Document{
		ID:                  domain.NewDocumentID(),
		ApplicationID:       appID,
		StartupID:           domain.NewStartupID(),
		DocCategoryDeclared: category,
		VerifiedStatus:      models.VerifiedStatusUnverified,
		FileName:            category + ".pdf",
		CreatedAt:           createdAt,
	}
	s.Require().NoError(s.store.Create(s.ctx, &doc))
	return doc
}

func (s *DocumentStoreSuite) TestListOldestFirst() {
	appID := domain.NewApplicationID()
	second := s.newDocument(appID, "pitch_deck", s.now.Add(time.Minute))
	first := s.newDocument(appID, "pan_card", s.now)

	docs, err := s.store.ListByApplication(s.ctx, appID)
	s.Require().NoError(err)
	s.Require().Len(docs, 2)
	s.Equal(first.ID, docs[0].ID)
	s.Equal(second.ID, docs[1].ID)
}

func (s *DocumentStoreSuite) TestEqualTimestampsOrderDeterministically() {
	appID := domain.NewApplicationID()
	for i := 0; i < 8; i++ {
		s.newDocument(appID, "pan_card", s.now)
	}

	reference, err := s.store.ListByApplication(s.ctx, appID)
	s.Require().NoError(err)
	s.Require().Len(reference, 8)
	s.True(sort.SliceIsSorted(reference, func(i, j int) bool {
		return reference[i].ID.String() < reference[j].ID.String()
	}))

	for i := 0; i < 20; i++ {
		docs, err := s.store.ListByApplication(s.ctx, appID)
		s.Require().NoError(err)
		s.Equal(reference, docs)
	}
}

func (s *DocumentStoreSuite) TestScopedByApplication() {
	appID := domain.NewApplicationID()
	s.newDocument(appID, "pan_card", s.now)
	s.newDocument(domain.NewApplicationID(), "license_copy", s.now)

	docs, err := s.store.ListByApplication(s.ctx, appID)
	s.Require().NoError(err)
	s.Require().Len(docs, 1)
	s.Equal("pan_card", docs[0].DocCategoryDeclared)
}
