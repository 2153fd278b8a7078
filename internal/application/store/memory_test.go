package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"udyam/internal/application/models"
	"udyam/pkg/domain"
	"udyam/pkg/platform/sentinel"
)

type ApplicationStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
	now   time.Time
}

func (s *ApplicationStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
	s.now = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
}

func TestApplicationStoreSuite(t *testing.T) {
	suite.Run(t, new(ApplicationStoreSuite))
}

func (s *ApplicationStoreSuite) newApplication(sector, applicationType string, createdAt time.Time) *models.Application {
	return models.NewApplication(domain.NewApplicationID(), domain.NewStartupID(), sector, applicationType, nil, createdAt)
}

func (s *ApplicationStoreSuite) TestCreationAndLookup() {
	s.Run("creates and finds application by ID", func() {
		app := s.newApplication("ayurveda", "startup_registration", s.now)
		s.Require().NoError(s.store.Create(s.ctx, app))

		found, err := s.store.FindByID(s.ctx, app.ID)
		s.Require().NoError(err)
		s.Equal(models.StatusDraft, found.Status)
		s.Equal(app.StartupID, found.StartupID)
	})

	s.Run("returns ErrNotFound for unknown ID", func() {
		_, err := s.store.FindByID(s.ctx, domain.NewApplicationID())
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("rejects duplicate ID", func() {
		app := s.newApplication("yoga", "startup_registration", s.now)
		s.Require().NoError(s.store.Create(s.ctx, app))
		s.Require().ErrorIs(s.store.Create(s.ctx, app), sentinel.ErrConflict)
	})
}

func (s *ApplicationStoreSuite) TestStatusGuardedUpdate() {
	actor := domain.Actor{UserID: domain.NewUserID(), Role: domain.RoleApplicant}

	s.Run("applies update when status matches", func() {
		app := s.newApplication("ayurveda", "clinic", s.now)
		s.Require().NoError(s.store.Create(s.ctx, app))

		app.ApplySubmission(actor, "", s.now.Add(time.Minute))
		s.Require().NoError(s.store.UpdateFromStatus(s.ctx, app, models.StatusDraft))

		found, err := s.store.FindByID(s.ctx, app.ID)
		s.Require().NoError(err)
		s.Equal(models.StatusSubmitted, found.Status)
		s.Require().NotNil(found.SubmittedAt)
		s.Len(found.ReviewHistory, 1)
	})

	s.Run("rejects update when another writer got there first", func() {
		app := s.newApplication("ayurveda", "clinic", s.now)
		s.Require().NoError(s.store.Create(s.ctx, app))

		first := *app
		first.ApplySubmission(actor, "", s.now.Add(time.Minute))
		s.Require().NoError(s.store.UpdateFromStatus(s.ctx, &first, models.StatusDraft))

		second := *app
		second.ApplySubmission(actor, "", s.now.Add(2*time.Minute))
		err := s.store.UpdateFromStatus(s.ctx, &second, models.StatusDraft)
		s.Require().ErrorIs(err, sentinel.ErrInvalidState)

		// The loser must not have appended a second history entry.
		found, err := s.store.FindByID(s.ctx, app.ID)
		s.Require().NoError(err)
		s.Len(found.ReviewHistory, 1)
	})

	s.Run("returns ErrNotFound for unknown application", func() {
		app := s.newApplication("yoga", "clinic", s.now)
		err := s.store.UpdateFromStatus(s.ctx, app, models.StatusDraft)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *ApplicationStoreSuite) TestStoredStateIsIsolated() {
	app := s.newApplication("ayurveda", "startup_registration", s.now)
	app.ApplicationData = map[string]any{"name": "Herbal Labs"}
	s.Require().NoError(s.store.Create(s.ctx, app))

	found, err := s.store.FindByID(s.ctx, app.ID)
	s.Require().NoError(err)
	found.ApplicationData["name"] = "mutated"
	found.ReviewHistory = append(found.ReviewHistory, models.ReviewEntry{Action: "bogus"})

	again, err := s.store.FindByID(s.ctx, app.ID)
	s.Require().NoError(err)
	s.Equal("Herbal Labs", again.ApplicationData["name"])
	s.Empty(again.ReviewHistory)
}

func (s *ApplicationStoreSuite) TestListing() {
	older := s.newApplication("ayurveda", "clinic", s.now)
	older.ApplicationData = map[string]any{"name": "Herbal Clinic"}
	newer := s.newApplication("yoga", "startup_registration", s.now.Add(time.Hour))
	newer.ApplicationData = map[string]any{"startup_name": "Asana Studio"}
	reviewed := s.newApplication("homoeopathy", "loan_license", s.now.Add(2*time.Hour))
	reviewed.Status = models.StatusApproved
	reviewed.ReviewerComment = "all documents in order"

	for _, app := range []*models.Application{older, newer, reviewed} {
		s.Require().NoError(s.store.Create(s.ctx, app))
	}

	s.Run("returns newest-created first without filters", func() {
		apps, err := s.store.List(s.ctx, Filter{})
		s.Require().NoError(err)
		s.Require().Len(apps, 3)
		s.Equal(reviewed.ID, apps[0].ID)
		s.Equal(newer.ID, apps[1].ID)
		s.Equal(older.ID, apps[2].ID)
	})

	s.Run("filters by status and sector", func() {
		apps, err := s.store.List(s.ctx, Filter{Status: models.StatusDraft, Sector: "ayurveda"})
		s.Require().NoError(err)
		s.Require().Len(apps, 1)
		s.Equal(older.ID, apps[0].ID)
	})

	s.Run("searches name fields case-insensitively", func() {
		apps, err := s.store.List(s.ctx, Filter{Q: "asana"})
		s.Require().NoError(err)
		s.Require().Len(apps, 1)
		s.Equal(newer.ID, apps[0].ID)
	})

	s.Run("searches reviewer comment", func() {
		apps, err := s.store.List(s.ctx, Filter{Q: "IN ORDER"})
		s.Require().NoError(err)
		s.Require().Len(apps, 1)
		s.Equal(reviewed.ID, apps[0].ID)
	})

	s.Run("returns empty for non-matching search", func() {
		apps, err := s.store.List(s.ctx, Filter{Q: "no such thing"})
		s.Require().NoError(err)
		s.Empty(apps)
	})
}
