//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"udyam/internal/document/models"
	"udyam/internal/document/store"
	"udyam/pkg/domain"
	"udyam/pkg/platform/sentinel"
	"udyam/pkg/testutil/containers"
)

type DocumentPostgresSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.Postgres
}

func TestDocumentPostgresSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(DocumentPostgresSuite))
}

func (s *DocumentPostgresSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.store = store.NewPostgres(s.postgres.DB)
}

func (s *DocumentPostgresSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "documents"))
}

func newTestDocument(appID domain.ApplicationID, category string, createdAt time.Time) *models.Document {
	return &models.Document{
		ID:                  domain.NewDocumentID(),
		ApplicationID:       appID,
		StartupID:           domain.NewStartupID(),
		DocCategoryDeclared: category,
		VerifiedStatus:      models.VerifiedStatusUnverified,
		FileName:            category + ".pdf",
		FileURL:             "s3://uploads/" + category + ".pdf",
		PageCount:           3,
		CreatedAt:           createdAt,
	}
}

func (s *DocumentPostgresSuite) TestListByApplicationOldestFirst() {
	ctx := context.Background()
	appID := domain.NewApplicationID()
	base := time.Now().UTC().Truncate(time.Microsecond)

	second := newTestDocument(appID, "license_copy", base.Add(time.Minute))
	first := newTestDocument(appID, "pan_card", base)
	other := newTestDocument(domain.NewApplicationID(), "pan_card", base)

	for _, doc := range []*models.Document{second, first, other} {
		s.Require().NoError(s.store.Create(ctx, doc))
	}

	docs, err := s.store.ListByApplication(ctx, appID)
	s.Require().NoError(err)
	s.Require().Len(docs, 2)
	s.Equal(first.ID, docs[0].ID)
	s.Equal(second.ID, docs[1].ID)
	s.Equal("s3://uploads/pan_card.pdf", docs[0].FileURL)
	s.Equal(3, docs[0].PageCount)
}

func (s *DocumentPostgresSuite) TestUpdateVerifiedStatus() {
	ctx := context.Background()
	appID := domain.NewApplicationID()
	doc := newTestDocument(appID, "pan_card", time.Now().UTC())
	s.Require().NoError(s.store.Create(ctx, doc))

	s.Run("records status and detected category", func() {
		err := s.store.UpdateVerifiedStatus(ctx, doc.ID, models.VerifiedStatusVerified, "pan_card")
		s.Require().NoError(err)

		docs, err := s.store.ListByApplication(ctx, appID)
		s.Require().NoError(err)
		s.Require().Len(docs, 1)
		s.Equal(models.VerifiedStatusVerified, docs[0].VerifiedStatus)
		s.Equal("pan_card", docs[0].DocCategoryDetected)
	})

	s.Run("keeps the detected category when none is supplied", func() {
		err := s.store.UpdateVerifiedStatus(ctx, doc.ID, models.VerifiedStatusRejected, "")
		s.Require().NoError(err)

		docs, err := s.store.ListByApplication(ctx, appID)
		s.Require().NoError(err)
		s.Equal(models.VerifiedStatusRejected, docs[0].VerifiedStatus)
		s.Equal("pan_card", docs[0].DocCategoryDetected)
	})

	s.Run("returns ErrNotFound for unknown documents", func() {
		err := s.store.UpdateVerifiedStatus(ctx, domain.NewDocumentID(), models.VerifiedStatusVerified, "")
		s.ErrorIs(err, sentinel.ErrNotFound)
	})
}
