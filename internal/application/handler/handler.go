// Package handler exposes the application workflow over HTTP. All routes
// here sit behind the authentication middleware; authorization decisions
// stay in the service.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"udyam/internal/application/models"
	"udyam/internal/application/service"
	"udyam/internal/application/store"
	documentmodels "udyam/internal/document/models"
	"udyam/pkg/domain"
	dErrors "udyam/pkg/domain-errors"
	"udyam/pkg/platform/httputil"
	"udyam/pkg/requestcontext"
)

// Service defines the interface for application workflow operations.
type Service interface {
	Create(ctx context.Context, actor domain.Actor, startupID domain.StartupID, sector, applicationType string, data map[string]any) (*models.Application, error)
	Submit(ctx context.Context, actor domain.Actor, id domain.ApplicationID, comment string) (*models.Application, error)
	Review(ctx context.Context, actor domain.Actor, id domain.ApplicationID, action, comment string) (*models.Application, error)
	Get(ctx context.Context, actor domain.Actor, id domain.ApplicationID) (*models.Application, []documentmodels.Document, error)
	ListForOfficials(ctx context.Context, actor domain.Actor, filter store.Filter) ([]service.Summary, error)
}

// Handler wires application workflow endpoints to the workflow service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs an application handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts workflow endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/applications", h.HandleCreate)
	r.Get("/applications", h.HandleList)
	r.Get("/applications/{id}", h.HandleGet)
	r.Get("/applications/{id}/documents", h.HandleDocuments)
	r.Post("/applications/{id}/submit", h.HandleSubmit)
	r.Post("/applications/{id}/review", h.HandleReview)
}

// HandleCreate handles POST /applications.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[CreateRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	app, err := h.service.Create(ctx, requestcontext.Actor(ctx), req.startupID, req.Sector, req.ApplicationType, req.ApplicationData)
	if err != nil {
		h.logWorkflowError(ctx, "application creation failed", err)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, FromApplication(app))
}

// HandleSubmit handles POST /applications/{id}/submit. The body is optional;
// an empty body submits without a comment.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := h.applicationID(w, r)
	if !ok {
		return
	}

	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "request body must be valid JSON"))
		return
	}

	app, err := h.service.Submit(ctx, requestcontext.Actor(ctx), id, req.Comment)
	if err != nil {
		h.logWorkflowError(ctx, "application submission failed", err)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromApplication(app))
}

// HandleReview handles POST /applications/{id}/review.
func (h *Handler) HandleReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := h.applicationID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[ReviewRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	app, err := h.service.Review(ctx, requestcontext.Actor(ctx), id, req.Action, req.Comment)
	if err != nil {
		h.logWorkflowError(ctx, "application review failed", err)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromApplication(app))
}

// HandleGet handles GET /applications/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := h.applicationID(w, r)
	if !ok {
		return
	}

	app, docs, err := h.service.Get(ctx, requestcontext.Actor(ctx), id)
	if err != nil {
		h.logWorkflowError(ctx, "application fetch failed", err)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromGet(app, docs))
}

// HandleDocuments handles GET /applications/{id}/documents.
func (h *Handler) HandleDocuments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := h.applicationID(w, r)
	if !ok {
		return
	}

	_, docs, err := h.service.Get(ctx, requestcontext.Actor(ctx), id)
	if err != nil {
		h.logWorkflowError(ctx, "application documents fetch failed", err)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, &DocumentsResponse{Documents: normalizeDocs(docs)})
}

// HandleList handles GET /applications with status, sector, application_type
// and q query parameters.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	filter, err := parseListFilter(
		query.Get("status"),
		query.Get("sector"),
		query.Get("application_type"),
		query.Get("q"),
	)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	summaries, err := h.service.ListForOfficials(ctx, requestcontext.Actor(ctx), filter)
	if err != nil {
		h.logWorkflowError(ctx, "application listing failed", err)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromList(summaries))
}

func (h *Handler) applicationID(w http.ResponseWriter, r *http.Request) (domain.ApplicationID, bool) {
	id, err := domain.ParseApplicationID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "application id must be a valid UUID"))
		return domain.ApplicationID{}, false
	}
	return id, true
}

func (h *Handler) logWorkflowError(ctx context.Context, msg string, err error) {
	level := slog.LevelWarn
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		level = slog.LevelError
	}
	h.logger.Log(ctx, level, msg,
		"request_id", requestcontext.RequestID(ctx),
		"error", err,
	)
}
