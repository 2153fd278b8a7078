// Package service implements the application submission workflow: create,
// submit with completeness gating, official review, and the review queue.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"udyam/internal/application/completeness"
	"udyam/internal/application/metrics"
	"udyam/internal/application/models"
	"udyam/internal/application/store"
	"udyam/internal/audit"
	"udyam/internal/authz"
	catalogmodels "udyam/internal/catalog/models"
	documentmodels "udyam/internal/document/models"
	startupmodels "udyam/internal/startup/models"
	"udyam/pkg/domain"
	dErrors "udyam/pkg/domain-errors"
	"udyam/pkg/platform/sentinel"
	"udyam/pkg/requestcontext"
)

// CatalogResolver resolves the requirement checklist for a sector and
// application type. Implemented by the catalog service.
type CatalogResolver interface {
	Resolve(ctx context.Context, sector, applicationType string) (*catalogmodels.CatalogEntry, error)
}

// StartupStore reads startup records for ownership checks.
type StartupStore interface {
	FindByID(ctx context.Context, id domain.StartupID) (*startupmodels.Startup, error)
}

// DocumentStore reads the documents uploaded against an application.
type DocumentStore interface {
	ListByApplication(ctx context.Context, id domain.ApplicationID) ([]documentmodels.Document, error)
}

// ApplicationStore persists applications. UpdateFromStatus must only apply
// the write when the stored status still equals from, returning
// sentinel.ErrInvalidState when another writer got there first.
type ApplicationStore interface {
	Create(ctx context.Context, app *models.Application) error
	FindByID(ctx context.Context, id domain.ApplicationID) (*models.Application, error)
	UpdateFromStatus(ctx context.Context, app *models.Application, from models.Status) error
	List(ctx context.Context, filter store.Filter) ([]models.Application, error)
}

// AuditPublisher records workflow events. Failures are logged, never
// surfaced: audit must not block the workflow.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service orchestrates the application workflow.
type Service struct {
	applications ApplicationStore
	startups     StartupStore
	documents    DocumentStore
	catalog      CatalogResolver
	auditor      AuditPublisher
	logger       *slog.Logger
	metrics      *metrics.Metrics
	hydrateLimit int
}

// Option configures the Service.
type Option func(*Service)

// WithLogger sets a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithAudit sets the audit publisher.
func WithAudit(p AuditPublisher) Option {
	return func(s *Service) { s.auditor = p }
}

// WithHydrateLimit caps the concurrent per-application lookups during
// listing hydration.
func WithHydrateLimit(n int) Option {
	return func(s *Service) { s.hydrateLimit = n }
}

// New constructs the workflow service.
func New(applications ApplicationStore, startups StartupStore, documents DocumentStore, catalog CatalogResolver, opts ...Option) *Service {
	s := &Service{
		applications: applications,
		startups:     startups,
		documents:    documents,
		catalog:      catalog,
		logger:       slog.Default(),
		hydrateLimit: 8,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create opens a draft application for a startup. The requirement catalog is
// not consulted here: a draft may be opened for any pair, and missing
// configuration only blocks at submission time.
func (s *Service) Create(ctx context.Context, actor domain.Actor, startupID domain.StartupID, sector, applicationType string, data map[string]any) (*models.Application, error) {
	startup, err := s.startups.FindByID(ctx, startupID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "startup not found")
		}
		return nil, dErrors.Wrap(dErrors.CodeInternal, "failed to load startup", err)
	}
	if !authz.CanSubmit(actor, startup.OwnerID) {
		return nil, dErrors.New(dErrors.CodeForbidden, "not allowed to apply for this startup")
	}

	app := models.NewApplication(domain.NewApplicationID(), startupID, sector, applicationType, data, requestcontext.Now(ctx))
	if err := s.applications.Create(ctx, app); err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "failed to create application", err)
	}

	s.emitAudit(ctx, actor, "application_created", app.ID, app.StartupID, app.ApplicationType)
	return app, nil
}

// Submit moves a draft application to submitted after the completeness gate.
// Authorization is checked before completeness so a caller probing someone
// else's application learns nothing about its document state. Regulated
// types demand verified documents; the base registration type accepts any
// upload status.
func (s *Service) Submit(ctx context.Context, actor domain.Actor, id domain.ApplicationID, comment string) (*models.Application, error) {
	started := time.Now()
	app, err := s.submit(ctx, actor, id, comment)
	s.metrics.RecordSubmit(submitOutcome(err), time.Since(started))
	return app, err
}

func (s *Service) submit(ctx context.Context, actor domain.Actor, id domain.ApplicationID, comment string) (*models.Application, error) {
	app, err := s.applications.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "application not found")
		}
		return nil, dErrors.Wrap(dErrors.CodeInternal, "failed to load application", err)
	}

	startup, err := s.startups.FindByID(ctx, app.StartupID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "startup not found")
		}
		return nil, dErrors.Wrap(dErrors.CodeInternal, "failed to load startup", err)
	}
	if !authz.CanSubmit(actor, startup.OwnerID) {
		return nil, dErrors.New(dErrors.CodeForbidden, "not allowed to submit this application")
	}

	if err := app.CanSubmit(); err != nil {
		return nil, err
	}

	entry, err := s.catalog.Resolve(ctx, app.Sector, app.ApplicationType)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) || errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeConfigurationMissing,
				"no document requirements configured for "+app.Sector+" ("+app.ApplicationType+")")
		}
		return nil, dErrors.Wrap(dErrors.CodeInternal, "failed to resolve requirements", err)
	}

	docs, err := s.documents.ListByApplication(ctx, app.ID)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "failed to load documents", err)
	}

	result := completeness.Evaluate(entry, docs, app.RequiresVerifiedDocuments())
	if !result.Complete {
		return nil, dErrors.New(dErrors.CodeIncompleteSubmission, "application documents are incomplete").
			WithDetails(map[string]any{
				"require_verified": result.RequireVerified,
				"missing":          result.Missing,
				"details":          result.Details,
			})
	}

	from := app.Status
	app.ApplySubmission(actor, comment, requestcontext.Now(ctx))
	if err := s.applications.UpdateFromStatus(ctx, app, from); err != nil {
		return nil, mapUpdateErr(err, "failed to submit application")
	}

	s.emitAudit(ctx, actor, "application_submitted", app.ID, app.StartupID, app.ApplicationType)
	return app, nil
}

// reviewTargets maps the review action names accepted on the wire onto
// lifecycle statuses.
var reviewTargets = map[string]models.Status{
	"start_review": models.StatusUnderReview,
	"approve":      models.StatusApproved,
	"reject":       models.StatusRejected,
}

// Review applies an official's transition: start_review, approve or reject.
func (s *Service) Review(ctx context.Context, actor domain.Actor, id domain.ApplicationID, action, comment string) (*models.Application, error) {
	if !authz.CanListForOfficials(actor) {
		return nil, dErrors.New(dErrors.CodeForbidden, "review requires a verified official")
	}
	target, ok := reviewTargets[action]
	if !ok {
		return nil, dErrors.New(dErrors.CodeValidation, "unsupported review action: "+action)
	}

	app, err := s.applications.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "application not found")
		}
		return nil, dErrors.Wrap(dErrors.CodeInternal, "failed to load application", err)
	}

	if err := app.CanApplyReview(target); err != nil {
		return nil, err
	}

	from := app.Status
	app.ApplyReview(target, action, actor, comment, requestcontext.Now(ctx))
	if err := s.applications.UpdateFromStatus(ctx, app, from); err != nil {
		return nil, mapUpdateErr(err, "failed to record review")
	}

	s.metrics.RecordReview(action)
	s.emitAudit(ctx, actor, "application_"+string(target), app.ID, app.StartupID, app.ApplicationType)
	return app, nil
}

// Get returns one application with its uploaded documents, for the owner or
// a verified official.
func (s *Service) Get(ctx context.Context, actor domain.Actor, id domain.ApplicationID) (*models.Application, []documentmodels.Document, error) {
	app, err := s.applications.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, nil, dErrors.New(dErrors.CodeNotFound, "application not found")
		}
		return nil, nil, dErrors.Wrap(dErrors.CodeInternal, "failed to load application", err)
	}

	startup, err := s.startups.FindByID(ctx, app.StartupID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, nil, dErrors.New(dErrors.CodeNotFound, "startup not found")
		}
		return nil, nil, dErrors.Wrap(dErrors.CodeInternal, "failed to load startup", err)
	}
	if !authz.CanView(actor, startup.OwnerID) {
		return nil, nil, dErrors.New(dErrors.CodeForbidden, "not allowed to view this application")
	}

	docs, err := s.documents.ListByApplication(ctx, app.ID)
	if err != nil {
		return nil, nil, dErrors.Wrap(dErrors.CodeInternal, "failed to load documents", err)
	}
	return app, docs, nil
}

// StartupSummary is the bounded startup projection of a queue row.
type StartupSummary struct {
	Name        string `json:"name"`
	FounderName string `json:"founder_name,omitempty"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

// DocumentSummary is the bounded document projection of a queue row: enough
// for an official to gauge the upload state without the file references.
type DocumentSummary struct {
	DocCategoryDeclared string                        `json:"doc_category_declared"`
	DocCategoryDetected string                        `json:"doc_category_detected,omitempty"`
	VerifiedStatus      documentmodels.VerifiedStatus `json:"verified_status"`
	PageCount           int                           `json:"page_count"`
}

// Summary is one row of the official review queue: the application hydrated
// with its startup and document projections.
type Summary struct {
	Application   models.Application `json:"application"`
	Startup       StartupSummary     `json:"startup"`
	Documents     []DocumentSummary  `json:"documents"`
	DocumentCount int                `json:"document_count"`
}

// ListForOfficials returns the filtered review queue, newest-created first,
// hydrating each row concurrently.
func (s *Service) ListForOfficials(ctx context.Context, actor domain.Actor, filter store.Filter) ([]Summary, error) {
	if !authz.CanListForOfficials(actor) {
		return nil, dErrors.New(dErrors.CodeForbidden, "listing requires a verified official")
	}

	started := time.Now()
	apps, err := s.applications.List(ctx, filter)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "failed to list applications", err)
	}

	summaries := make([]Summary, len(apps))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.hydrateLimit)
	for i, app := range apps {
		g.Go(func() error {
			summaries[i] = Summary{Application: app, Documents: []DocumentSummary{}}

			startup, err := s.startups.FindByID(gctx, app.StartupID)
			if err != nil {
				return err
			}
			summaries[i].Startup = StartupSummary{
				Name:        startup.Name,
				FounderName: startup.FounderName,
				Email:       startup.Email,
				PhoneNumber: startup.PhoneNumber,
			}

			docs, err := s.documents.ListByApplication(gctx, app.ID)
			if err != nil {
				return err
			}
			for _, doc := range docs {
				summaries[i].Documents = append(summaries[i].Documents, DocumentSummary{
					DocCategoryDeclared: doc.DocCategoryDeclared,
					DocCategoryDetected: doc.DocCategoryDetected,
					VerifiedStatus:      doc.VerifiedStatus,
					PageCount:           doc.PageCount,
				})
			}
			summaries[i].DocumentCount = len(docs)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "failed to hydrate listing", err)
	}

	s.metrics.ObserveList(time.Since(started))
	return summaries, nil
}

func (s *Service) emitAudit(ctx context.Context, actor domain.Actor, action string, appID domain.ApplicationID, startupID domain.StartupID, detail string) {
	if s.auditor == nil {
		return
	}
	err := s.auditor.Emit(ctx, audit.Event{
		Timestamp:     requestcontext.Now(ctx),
		ActorID:       actor.UserID,
		ActorRole:     actor.Role,
		Action:        action,
		ApplicationID: appID,
		StartupID:     startupID,
		Detail:        detail,
	})
	if err != nil {
		s.logger.Error("emit audit event", "error", err, "action", action)
	}
}

func mapUpdateErr(err error, msg string) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "application not found")
	case errors.Is(err, sentinel.ErrInvalidState):
		return dErrors.New(dErrors.CodeInvalidState, "application status changed concurrently")
	default:
		return dErrors.Wrap(dErrors.CodeInternal, msg, err)
	}
}

func submitOutcome(err error) string {
	if err == nil {
		return "submitted"
	}
	switch dErrors.CodeOf(err) {
	case dErrors.CodeIncompleteSubmission:
		return "incomplete"
	case dErrors.CodeForbidden:
		return "forbidden"
	case dErrors.CodeInvalidState:
		return "invalid_state"
	default:
		return "error"
	}
}
