package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"udyam/internal/catalog/store"
	dErrors "udyam/pkg/domain-errors"
)

type CatalogServiceSuite struct {
	suite.Suite
	store   *store.InMemory
	service *Service
	ctx     context.Context
}

func (s *CatalogServiceSuite) SetupTest() {
	s.store = store.NewInMemory()
	s.service = New(s.store)
	s.ctx = context.Background()
	s.Require().NoError(store.Seed(s.ctx, s.store))
}

func TestCatalogServiceSuite(t *testing.T) {
	suite.Run(t, new(CatalogServiceSuite))
}

func (s *CatalogServiceSuite) TestResolve() {
	s.Run("resolves every seeded pair", func() {
		for _, entry := range store.SeedEntries() {
			resolved, err := s.service.Resolve(s.ctx, entry.Sector, entry.ApplicationType)
			s.Require().NoError(err)
			s.NotEmpty(resolved.Requirements)
		}
	})

	s.Run("clinic checklist carries the sector license", func() {
		entry, err := s.service.Resolve(s.ctx, "ayurveda", "clinic")
		s.Require().NoError(err)
		license, ok := entry.RequirementByCategory("license_copy")
		s.Require().True(ok)
		s.True(license.Required)
		_, ok = entry.RequirementByCategory("practitioner_registration")
		s.True(ok)
	})

	s.Run("registration checklist keeps pitch deck optional", func() {
		entry, err := s.service.Resolve(s.ctx, "yoga", "startup_registration")
		s.Require().NoError(err)
		deck, ok := entry.RequirementByCategory("pitch_deck")
		s.Require().True(ok)
		s.False(deck.Required)
	})

	s.Run("unknown pair names the pair in the error", func() {
		_, err := s.service.Resolve(s.ctx, "ayurveda", "wholesale")
		s.Require().Error(err)
		s.Equal(dErrors.CodeNotFound, dErrors.CodeOf(err))
		s.Equal("no document requirements found for ayurveda (wholesale)", err.Error())
	})
}

func (s *CatalogServiceSuite) TestCommonSubset() {
	s.Run("keeps only cross-sector categories", func() {
		subset, err := s.service.CommonSubset(s.ctx, "homoeopathy", "clinic")
		s.Require().NoError(err)
		s.Require().NotEmpty(subset.Requirements)
		for _, r := range subset.Requirements {
			s.True(store.CommonCategories[r.DocCategory], "unexpected category %s", r.DocCategory)
		}
		_, ok := subset.RequirementByCategory("license_copy")
		s.False(ok)
	})

	s.Run("propagates not found", func() {
		_, err := s.service.CommonSubset(s.ctx, "ayurveda", "wholesale")
		s.Require().Error(err)
		s.Equal(dErrors.CodeNotFound, dErrors.CodeOf(err))
	})

	s.Run("honors an overridden common set", func() {
		svc := New(s.store, WithCommonCategories(map[string]bool{"pan_card": true}))
		subset, err := svc.CommonSubset(s.ctx, "ayurveda", "clinic")
		s.Require().NoError(err)
		s.Require().Len(subset.Requirements, 1)
		s.Equal("pan_card", subset.Requirements[0].DocCategory)
	})
}

func (s *CatalogServiceSuite) TestResolvedEntriesAreIsolated() {
	entry, err := s.service.Resolve(s.ctx, "ayurveda", "clinic")
	s.Require().NoError(err)
	entry.Requirements[0].DocCategory = "mutated"

	again, err := s.service.Resolve(s.ctx, "ayurveda", "clinic")
	s.Require().NoError(err)
	s.NotEqual("mutated", again.Requirements[0].DocCategory)
}
